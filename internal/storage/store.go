// Package storage provides abstractions for persistent pool storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/costsplits/internal/models"
)

// ErrPoolNotFound is returned when no pool has the requested name.
var ErrPoolNotFound = errors.New("pool not found")

// PoolInfo is the listing entry for a saved pool.
type PoolInfo struct {
	Name         string
	People       int
	Transactions int
	UpdatedAt    int64
}

// Store defines the interface for named pool storage.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// SavePool persists a pool under pool.Name, replacing any pool saved
	// under the same name. The ID, CreatedAt and UpdatedAt fields are
	// populated by the store.
	SavePool(ctx context.Context, pool *models.Pool) error

	// GetPool retrieves a pool by name.
	// Returns ErrPoolNotFound if no pool has that name.
	GetPool(ctx context.Context, name string) (*models.Pool, error)

	// ListPools returns every saved pool, ordered by name.
	ListPools(ctx context.Context) ([]PoolInfo, error)

	// DeletePool removes a pool by name.
	// Returns ErrPoolNotFound if no pool has that name.
	DeletePool(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close() error
}
