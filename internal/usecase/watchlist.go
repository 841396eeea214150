package usecase

import (
	"context"
	"fmt"

	"Lohas/internal/domain/models"
	domain "Lohas/internal/domain/repository"
)

// WatchlistManager is the CRUD surface over a user's watchlist. Tickers are
// normalized before storage so "tsmc " and "TSMC" land on the same entry.
type WatchlistManager struct {
	store     domain.WatchlistStore
	normalize func(string) string
}

// NewWatchlistManager creates the manager. normalize may be nil.
func NewWatchlistManager(store domain.WatchlistStore, normalize func(string) string) *WatchlistManager {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	return &WatchlistManager{store: store, normalize: normalize}
}

// List returns a user's watchlist entries.
func (m *WatchlistManager) List(ctx context.Context, user string) (map[string]string, error) {
	return m.store.Load(ctx, user)
}

// Add inserts or updates one entry and returns the updated list. An empty
// display name falls back to the ticker itself.
func (m *WatchlistManager) Add(ctx context.Context, user, ticker, name string) (map[string]string, error) {
	t := m.normalize(ticker)
	if t == "" {
		return nil, fmt.Errorf("%w: empty ticker", models.ErrStore)
	}
	if name == "" {
		name = t
	}

	entries, err := m.store.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	entries[t] = name
	if err := m.store.Save(ctx, user, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Remove drops one entry and returns the updated list. Removing an absent
// ticker is a no-op.
func (m *WatchlistManager) Remove(ctx context.Context, user, ticker string) (map[string]string, error) {
	t := m.normalize(ticker)
	entries, err := m.store.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	if _, ok := entries[t]; ok {
		delete(entries, t)
		if err := m.store.Save(ctx, user, entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
