// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/costsplits/internal/models"
	"github.com/mmynk/costsplits/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps the foreign_keys pragma in effect for every query.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SavePool persists a pool, replacing the content of any pool with the same name.
func (s *SQLiteStore) SavePool(ctx context.Context, pool *models.Pool) error {
	if pool.Name == "" {
		return fmt.Errorf("pool name is required")
	}
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	var createdAt int64
	err = tx.QueryRowContext(ctx,
		"SELECT id, created_at FROM pools WHERE name = ?",
		pool.Name,
	).Scan(&id, &createdAt)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.New().String()
		createdAt = now
		_, err = tx.ExecContext(ctx,
			"INSERT INTO pools (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
			id, pool.Name, createdAt, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pool: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up pool: %w", err)
	default:
		if err := deleteContent(ctx, tx, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "UPDATE pools SET updated_at = ? WHERE id = ?", now, id)
		if err != nil {
			return fmt.Errorf("failed to update pool: %w", err)
		}
	}

	// Insert people in order
	for i, name := range pool.People {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO pool_people (pool_id, position, name) VALUES (?, ?, ?)",
			id, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	// Insert transactions and their items
	for ti, t := range pool.Transactions {
		txID := uuid.New().String()
		splits, err := encodeSplits(t.Splits)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO transactions (id, pool_id, position, name, cost, payer, splits) VALUES (?, ?, ?, ?, ?, ?, ?)",
			txID, id, ti, t.Name, t.Cost, t.Payer, splits,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		for ii, item := range t.Items {
			splits, err := encodeSplits(item.Splits)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				"INSERT INTO items (id, transaction_id, position, label, cost, splits) VALUES (?, ?, ?, ?, ?, ?)",
				uuid.New().String(), txID, ii, item.Label, item.Cost, splits,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	pool.ID = id
	pool.CreatedAt = createdAt
	pool.UpdatedAt = now
	return nil
}

// GetPool retrieves a pool by name, including people, transactions and items.
func (s *SQLiteStore) GetPool(ctx context.Context, name string) (*models.Pool, error) {
	pool := &models.Pool{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM pools WHERE name = ?",
		name,
	).Scan(&pool.ID, &pool.Name, &pool.CreatedAt, &pool.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrPoolNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}

	// Get people
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM pool_people WHERE pool_id = ? ORDER BY position",
		pool.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	pool.People = []string{}
	for rows.Next() {
		var person string
		if err := rows.Scan(&person); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		pool.People = append(pool.People, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	rows.Close()

	// Get transactions
	txRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, cost, payer, splits FROM transactions WHERE pool_id = ? ORDER BY position",
		pool.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer txRows.Close()

	pool.Transactions = []models.Transaction{}
	positions := make(map[string]int)
	for txRows.Next() {
		var t models.Transaction
		var id, splits string
		if err := txRows.Scan(&id, &t.Name, &t.Cost, &t.Payer, &splits); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if t.Splits, err = decodeSplits(splits); err != nil {
			return nil, err
		}
		positions[id] = len(pool.Transactions)
		pool.Transactions = append(pool.Transactions, t)
	}
	if err := txRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	txRows.Close()

	// Get items of all transactions at once
	itemRows, err := s.db.QueryContext(ctx,
		`SELECT i.transaction_id, i.label, i.cost, i.splits
		 FROM items i JOIN transactions t ON t.id = i.transaction_id
		 WHERE t.pool_id = ? ORDER BY t.position, i.position`,
		pool.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.Item
		var txID, splits string
		if err := itemRows.Scan(&txID, &item.Label, &item.Cost, &splits); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if item.Splits, err = decodeSplits(splits); err != nil {
			return nil, err
		}
		ti := positions[txID]
		pool.Transactions[ti].Items = append(pool.Transactions[ti].Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return pool, nil
}

// ListPools returns a summary of every saved pool, ordered by name.
func (s *SQLiteStore) ListPools(ctx context.Context) ([]storage.PoolInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.name, p.updated_at,
		        (SELECT COUNT(*) FROM pool_people pp WHERE pp.pool_id = p.id),
		        (SELECT COUNT(*) FROM transactions t WHERE t.pool_id = p.id)
		 FROM pools p ORDER BY p.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	defer rows.Close()

	var pools []storage.PoolInfo
	for rows.Next() {
		var info storage.PoolInfo
		if err := rows.Scan(&info.Name, &info.UpdatedAt, &info.People, &info.Transactions); err != nil {
			return nil, fmt.Errorf("failed to scan pool: %w", err)
		}
		pools = append(pools, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pools: %w", err)
	}

	return pools, nil
}

// DeletePool removes a pool and everything saved in it.
func (s *SQLiteStore) DeletePool(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Check if pool exists
	var id string
	err = tx.QueryRowContext(ctx, "SELECT id FROM pools WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", storage.ErrPoolNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to check pool existence: %w", err)
	}

	if err := deleteContent(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pools WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete pool: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// deleteContent removes the people, transactions and items of a pool.
func deleteContent(ctx context.Context, tx *sql.Tx, poolID string) error {
	_, err := tx.ExecContext(ctx,
		"DELETE FROM items WHERE transaction_id IN (SELECT id FROM transactions WHERE pool_id = ?)",
		poolID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE pool_id = ?", poolID); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pool_people WHERE pool_id = ?", poolID); err != nil {
		return fmt.Errorf("failed to delete people: %w", err)
	}
	return nil
}

func encodeSplits(splits []float64) (string, error) {
	if splits == nil {
		splits = []float64{}
	}
	b, err := json.Marshal(splits)
	if err != nil {
		return "", fmt.Errorf("failed to encode splits: %w", err)
	}
	return string(b), nil
}

func decodeSplits(s string) ([]float64, error) {
	var splits []float64
	if err := json.Unmarshal([]byte(s), &splits); err != nil {
		return nil, fmt.Errorf("failed to decode splits: %w", err)
	}
	return splits, nil
}
