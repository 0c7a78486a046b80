// Package service orchestrates validation, computation and storage of pools.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/costsplits/internal/calculator"
	"github.com/mmynk/costsplits/internal/metrics"
	"github.com/mmynk/costsplits/internal/models"
	"github.com/mmynk/costsplits/internal/storage"
	"github.com/mmynk/costsplits/internal/validate"
)

// ErrPersonNotFound is returned when a person name is not in the pool.
var ErrPersonNotFound = errors.New("person not found")

// PoolService computes reports for pools and manages saved pools.
type PoolService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewPoolService creates a new PoolService. store may be nil when only
// reports are needed; m may be nil to disable metrics.
func NewPoolService(store storage.Store, m *metrics.Metrics) *PoolService {
	return &PoolService{store: store, metrics: m}
}

// Report is everything the summary view shows for a pool.
type Report struct {
	Pool        models.Pool
	Summary     calculator.Summary
	Settlements []calculator.Settlement
	Details     calculator.Details
}

// SharedTransaction is a transaction together with one person's share of it.
type SharedTransaction struct {
	models.Transaction
	Share float64
}

// PersonReport is the view of a pool from one person's perspective.
type PersonReport struct {
	Pool        models.Pool
	Person      int
	Name        string
	Paid        []models.Transaction
	Shared      []SharedTransaction
	Settlements []calculator.Settlement
}

// Report validates the pool and computes its summary, settlements and split details.
func (s *PoolService) Report(ctx context.Context, p models.Pool) (*Report, error) {
	if err := validate.Pool(p); err != nil {
		slog.Error("Report failed", "pool", p.Name, "error", err)
		return nil, err
	}

	summary := calculator.ComputeSummary(p.People, p.Transactions)
	r := &Report{
		Pool:        p,
		Summary:     summary,
		Settlements: calculator.Settle(summary.Net),
		Details:     calculator.SplitDetails(p.People, p.Transactions),
	}
	s.metrics.ObserveReport("summary", len(r.Settlements))

	slog.Info("Report computed",
		"pool", p.Name,
		"people", len(p.People),
		"transactions", len(p.Transactions),
		"settlements", len(r.Settlements),
	)
	return r, nil
}

// Person validates the pool and builds the view for the named person.
func (s *PoolService) Person(ctx context.Context, p models.Pool, name string) (*PersonReport, error) {
	if err := validate.Pool(p); err != nil {
		slog.Error("Person report failed", "pool", p.Name, "error", err)
		return nil, err
	}
	name = strings.TrimSpace(name)
	idx := p.IndexOf(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrPersonNotFound, name)
	}

	r := &PersonReport{
		Pool:        p,
		Person:      idx,
		Name:        name,
		Paid:        calculator.TransactionsPaidBy(p.Transactions, idx),
		Settlements: calculator.SettlementsFor(p.People, p.Transactions, idx),
	}
	for _, t := range calculator.TransactionsInvolving(p.Transactions, idx) {
		r.Shared = append(r.Shared, SharedTransaction{
			Transaction: t,
			Share:       calculator.ShareFor(t, idx),
		})
	}
	s.metrics.ObserveReport("person", len(r.Settlements))

	slog.Info("Person report computed",
		"pool", p.Name,
		"person", name,
		"paid", len(r.Paid),
		"shared", len(r.Shared),
	)
	return r, nil
}

// Save validates the pool and stores it under name, replacing any pool
// already saved with that name.
func (s *PoolService) Save(ctx context.Context, name string, p models.Pool) (*models.Pool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("pool name is required")
	}
	if err := validate.Pool(p); err != nil {
		return nil, err
	}

	pool := p.Clone()
	pool.Name = name
	err := s.store.SavePool(ctx, &pool)
	s.metrics.ObserveStore("save", err)
	if err != nil {
		slog.Error("Save failed", "pool", name, "error", err)
		return nil, fmt.Errorf("failed to save pool: %w", err)
	}

	slog.Info("Pool saved", "pool", name, "pool_id", pool.ID)
	return &pool, nil
}

// Open loads a saved pool by name.
func (s *PoolService) Open(ctx context.Context, name string) (*models.Pool, error) {
	pool, err := s.store.GetPool(ctx, strings.TrimSpace(name))
	s.metrics.ObserveStore("open", err)
	if err != nil {
		slog.Error("Open failed", "pool", name, "error", err)
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	slog.Info("Pool opened", "pool", pool.Name, "pool_id", pool.ID)
	return pool, nil
}

// List returns the saved pools ordered by name.
func (s *PoolService) List(ctx context.Context) ([]storage.PoolInfo, error) {
	pools, err := s.store.ListPools(ctx)
	s.metrics.ObserveStore("list", err)
	if err != nil {
		slog.Error("List failed", "error", err)
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}

	slog.Info("Pools listed", "count", len(pools))
	return pools, nil
}

// Delete removes a saved pool by name.
func (s *PoolService) Delete(ctx context.Context, name string) error {
	err := s.store.DeletePool(ctx, strings.TrimSpace(name))
	s.metrics.ObserveStore("delete", err)
	if err != nil {
		slog.Error("Delete failed", "pool", name, "error", err)
		return fmt.Errorf("failed to delete pool: %w", err)
	}

	slog.Info("Pool deleted", "pool", name)
	return nil
}
