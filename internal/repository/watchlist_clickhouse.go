package repository

import (
	"context"
	"fmt"

	"Lohas/internal/domain/models"
	domain "Lohas/internal/domain/repository"
	pkgch "Lohas/pkg/clickhouse"
)

// Schema statements for the watchlist table (idempotent).
var watchlistSchema = []string{
	`CREATE TABLE IF NOT EXISTS watchlists (
		user   String,
		ticker String,
		name   String
	) ENGINE = ReplacingMergeTree
	ORDER BY (user, ticker)`,
}

// CHWatchlistStore persists watchlists in ClickHouse so several dashboard
// replicas share one list per user.
type CHWatchlistStore struct {
	client   *pkgch.Client
	defaults map[string]string
}

// NewCHWatchlistStore creates the store and ensures the table exists.
func NewCHWatchlistStore(ctx context.Context, client *pkgch.Client, defaults map[string]string) (*CHWatchlistStore, error) {
	if err := client.InitSchema(ctx, watchlistSchema); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}
	return &CHWatchlistStore{client: client, defaults: defaults}, nil
}

// Load reads a user's watchlist, seeding defaults on first access.
func (s *CHWatchlistStore) Load(ctx context.Context, user string) (map[string]string, error) {
	rows, err := s.client.DB().QueryContext(ctx,
		`SELECT ticker, name FROM watchlists FINAL WHERE user = ?`, user)
	if err != nil {
		return nil, fmt.Errorf("%w: select watchlist: %v", models.ErrStore, err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var ticker, name string
		if err := rows.Scan(&ticker, &name); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", models.ErrStore, err)
		}
		entries[ticker] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", models.ErrStore, err)
	}

	if len(entries) == 0 && len(s.defaults) > 0 {
		seeded := make(map[string]string, len(s.defaults))
		for k, v := range s.defaults {
			seeded[k] = v
		}
		if err := s.Save(ctx, user, seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}
	return entries, nil
}

// Save replaces a user's watchlist rows.
func (s *CHWatchlistStore) Save(ctx context.Context, user string, entries map[string]string) error {
	if _, err := s.client.DB().ExecContext(ctx,
		`ALTER TABLE watchlists DELETE WHERE user = ?`, user); err != nil {
		return fmt.Errorf("%w: delete watchlist: %v", models.ErrStore, err)
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin batch: %v", models.ErrStore, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO watchlists (user, ticker, name)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: prepare insert: %v", models.ErrStore, err)
	}
	for ticker, name := range entries {
		if _, err := stmt.ExecContext(ctx, user, ticker, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: insert row: %v", models.ErrStore, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit batch: %v", models.ErrStore, err)
	}
	return nil
}

// Close is a no-op; the shared client is closed by the app.
func (s *CHWatchlistStore) Close() error {
	return nil
}

var _ domain.WatchlistStore = (*CHWatchlistStore)(nil)
