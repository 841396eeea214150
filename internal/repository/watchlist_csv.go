package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"Lohas/internal/domain/models"
	domain "Lohas/internal/domain/repository"
)

// CSVWatchlistStore keeps one watchlist file per user under a data
// directory. Each file is a two-column CSV with a "ticker,name" header.
type CSVWatchlistStore struct {
	mu       sync.Mutex
	dir      string
	defaults map[string]string
}

// NewCSVWatchlistStore creates the store and ensures the directory exists.
// A user whose file is missing gets seeded with the default entries.
func NewCSVWatchlistStore(dir string, defaults map[string]string) (*CSVWatchlistStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create dir %s: %v", models.ErrStore, dir, err)
	}
	return &CSVWatchlistStore{dir: dir, defaults: defaults}, nil
}

func (s *CSVWatchlistStore) path(user string) string {
	return filepath.Join(s.dir, user+".csv")
}

// Load reads a user's watchlist, seeding defaults on first access.
func (s *CSVWatchlistStore) Load(ctx context.Context, user string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(user)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		seeded := make(map[string]string, len(s.defaults))
		for k, v := range s.defaults {
			seeded[k] = v
		}
		if err := s.write(user, seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrStore, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", models.ErrStore, path, err)
	}

	entries := make(map[string]string)
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "ticker") {
			continue
		}
		ticker := strings.TrimSpace(rec[0])
		if ticker == "" {
			continue
		}
		entries[ticker] = strings.TrimSpace(rec[1])
	}
	return entries, nil
}

// Save replaces a user's watchlist file.
func (s *CSVWatchlistStore) Save(ctx context.Context, user string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(user, entries)
}

// write rewrites the file atomically via a temp file in the same directory.
func (s *CSVWatchlistStore) write(user string, entries map[string]string) error {
	path := s.path(user)
	tmp, err := os.CreateTemp(s.dir, user+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", models.ErrStore, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"ticker", "name"}); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write header: %v", models.ErrStore, err)
	}

	tickers := make([]string, 0, len(entries))
	for t := range entries {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, t := range tickers {
		if err := w.Write([]string{t, entries[t]}); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write row: %v", models.ErrStore, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush %s: %v", models.ErrStore, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %v", models.ErrStore, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", models.ErrStore, path, err)
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *CSVWatchlistStore) Close() error {
	return nil
}

var _ domain.WatchlistStore = (*CSVWatchlistStore)(nil)
