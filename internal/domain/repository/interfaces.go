package repository

import (
	"context"

	"Lohas/internal/domain/models"
)

// MarketData fetches historical daily bars and spot quotes for a ticker.
// Implementations own retries; callers only see models.ErrDataUnavailable.
type MarketData interface {
	DailyBars(ctx context.Context, symbol string, years float64) ([]models.Bar, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// WatchlistStore persists the per-user (ticker -> display name) mapping.
type WatchlistStore interface {
	Load(ctx context.Context, user string) (map[string]string, error)
	Save(ctx context.Context, user string, entries map[string]string) error
	Close() error
}

// ScanPublisher pushes completed scan summaries to downstream consumers.
type ScanPublisher interface {
	PublishScan(ctx context.Context, user string, rows []models.ScanRow) error
	Close() error
}

type Metrics interface {
	RecordFetch(symbol, result string)
	RecordCache(outcome string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordScanRows(n int)
	RecordError(kind string)
}
