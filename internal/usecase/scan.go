package usecase

import (
	"context"
	"sort"
	"time"

	"Lohas/internal/domain/models"
	domain "Lohas/internal/domain/repository"
	applogger "Lohas/pkg/logger"
)

// WatchlistScanner runs the batch valuation over a user's watchlist. Tickers
// whose fetch or fit fails are skipped with a warning; a scan succeeds as
// long as the watchlist itself loads.
type WatchlistScanner struct {
	analyzer  *ChannelAnalyzer
	store     domain.WatchlistStore
	publisher domain.ScanPublisher
	metrics   domain.Metrics
	logger    *applogger.Logger
}

// NewWatchlistScanner creates the scanner. publisher may be nil when no
// downstream consumer is configured.
func NewWatchlistScanner(
	analyzer *ChannelAnalyzer,
	store domain.WatchlistStore,
	publisher domain.ScanPublisher,
	metrics domain.Metrics,
	l *applogger.Logger,
) *WatchlistScanner {
	return &WatchlistScanner{
		analyzer:  analyzer,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    l,
	}
}

// Scan evaluates every watchlist entry sequentially and returns one summary
// row per ticker that produced a result, in ticker order.
func (s *WatchlistScanner) Scan(ctx context.Context, user string, years float64) ([]models.ScanRow, error) {
	entries, err := s.store.Load(ctx, user)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(entries))
	for t := range entries {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	start := time.Now()
	rows := make([]models.ScanRow, 0, len(tickers))
	for _, ticker := range tickers {
		res, err := s.analyzer.Analyze(ctx, ticker, years, 0, 0)
		if err != nil {
			s.logger.Warn("scan: skipping ticker",
				applogger.String("user", user),
				applogger.String("ticker", ticker),
				applogger.Float64("years", years),
				applogger.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordError("scan_ticker")
			}
			continue
		}
		rows = append(rows, models.ScanRow{
			Ticker:      ticker,
			Name:        entries[ticker],
			Price:       res.Valuation.Price,
			DistancePct: res.Valuation.DistancePct,
			Band:        res.Valuation.Band,
			Signals:     res.Indicators.Signals,
		})
	}

	if s.metrics != nil {
		s.metrics.RecordScanRows(len(rows))
		s.metrics.RecordLatency("watchlist_scan", time.Since(start).Seconds())
	}

	if s.publisher != nil && len(rows) > 0 {
		if err := s.publisher.PublishScan(ctx, user, rows); err != nil {
			s.logger.Warn("scan: publish failed",
				applogger.String("user", user),
				applogger.Error(err),
			)
		}
	}
	return rows, nil
}
