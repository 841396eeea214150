package usecase

import (
	"context"
	"errors"
	"time"

	"Lohas/internal/domain/models"
	domain "Lohas/internal/domain/repository"
	"Lohas/internal/service/channel"
	"Lohas/pkg/cache"
	applogger "Lohas/pkg/logger"
)

// ChannelAnalyzer produces the full per-ticker valuation view: trend channel,
// classification, and secondary indicators. Results are cached for the
// configured TTL keyed by (symbol, window, multipliers).
type ChannelAnalyzer struct {
	gateway   domain.MarketData
	cache     cache.Service
	metrics   domain.Metrics
	logger    *applogger.Logger
	ttl       time.Duration
	sd1       float64
	sd2       float64
	vixSymbol string
}

// AnalyzerConfig bundles the analyzer's tunables.
type AnalyzerConfig struct {
	TTL       time.Duration
	SD1       float64
	SD2       float64
	VIXSymbol string
}

// NewChannelAnalyzer creates the analyzer.
func NewChannelAnalyzer(
	gateway domain.MarketData,
	cacheSvc cache.Service,
	metrics domain.Metrics,
	l *applogger.Logger,
	cfg AnalyzerConfig,
) *ChannelAnalyzer {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.SD1 <= 0 {
		cfg.SD1 = 1
	}
	if cfg.SD2 <= 0 {
		cfg.SD2 = 2
	}
	if cfg.VIXSymbol == "" {
		cfg.VIXSymbol = "^VIX"
	}
	return &ChannelAnalyzer{
		gateway:   gateway,
		cache:     cacheSvc,
		metrics:   metrics,
		logger:    l,
		ttl:       cfg.TTL,
		sd1:       cfg.SD1,
		sd2:       cfg.SD2,
		vixSymbol: cfg.VIXSymbol,
	}
}

// Analyze computes or serves from cache the channel view for one ticker.
// Zero or negative multipliers fall back to the configured defaults.
func (a *ChannelAnalyzer) Analyze(ctx context.Context, symbol string, years, sd1, sd2 float64) (*models.ChannelResult, error) {
	years = domain.ClampYears(years)
	if sd1 <= 0 {
		sd1 = a.sd1
	}
	if sd2 <= 0 {
		sd2 = a.sd2
	}

	key := domain.ChannelCacheKey(symbol, years, sd1, sd2)
	var cached models.ChannelResult
	if err := a.cache.Get(ctx, key, &cached); err == nil {
		a.recordCache("hit")
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		a.logger.Warn("cache get failed", applogger.String("key", key), applogger.Error(err))
	}
	a.recordCache("miss")

	start := time.Now()
	bars, err := a.gateway.DailyBars(ctx, symbol, years)
	a.recordLatency("fetch_daily_bars", time.Since(start))
	if err != nil {
		a.recordFetch(symbol, "error")
		return nil, err
	}
	a.recordFetch(symbol, "ok")

	ch, err := channel.Compute(symbol, bars, sd1, sd2)
	if err != nil {
		return nil, err
	}

	result := &models.ChannelResult{
		Symbol:     symbol,
		Years:      years,
		Channel:    ch,
		Valuation:  channel.Classify(ch.LastClose(), ch.Latest(), ch.LastTrend()),
		Indicators: channel.Indicators(bars),
		FetchedAt:  time.Now().UTC(),
	}
	if a.metrics != nil {
		a.metrics.RecordLastPrice(symbol, result.Valuation.Price)
	}

	if err := a.cache.Set(ctx, key, result, a.ttl); err != nil {
		a.logger.Warn("cache set failed", applogger.String("key", key), applogger.Error(err))
	}
	return result, nil
}

// VIXReading is the market sentiment block of the dashboard.
type VIXReading struct {
	Symbol    string    `json:"symbol"`
	Value     float64   `json:"value"`
	Label     string    `json:"label"`
	FetchedAt time.Time `json:"fetched_at"`
}

// VIX fetches the volatility index and maps it to a sentiment label.
func (a *ChannelAnalyzer) VIX(ctx context.Context) (*VIXReading, error) {
	const key = "vix:latest"
	var cached VIXReading
	if err := a.cache.Get(ctx, key, &cached); err == nil {
		a.recordCache("hit")
		return &cached, nil
	}
	a.recordCache("miss")

	value, err := a.gateway.CurrentPrice(ctx, a.vixSymbol)
	if err != nil {
		a.recordFetch(a.vixSymbol, "error")
		return nil, err
	}
	a.recordFetch(a.vixSymbol, "ok")

	reading := &VIXReading{
		Symbol:    a.vixSymbol,
		Value:     value,
		Label:     channel.VIXLabel(value),
		FetchedAt: time.Now().UTC(),
	}
	if err := a.cache.Set(ctx, key, reading, a.ttl); err != nil {
		a.logger.Warn("cache set failed", applogger.String("key", key), applogger.Error(err))
	}
	return reading, nil
}

func (a *ChannelAnalyzer) recordCache(outcome string) {
	if a.metrics != nil {
		a.metrics.RecordCache(outcome)
	}
}

func (a *ChannelAnalyzer) recordFetch(symbol, result string) {
	if a.metrics != nil {
		a.metrics.RecordFetch(symbol, result)
	}
}

func (a *ChannelAnalyzer) recordLatency(op string, d time.Duration) {
	if a.metrics != nil {
		a.metrics.RecordLatency(op, d.Seconds())
	}
}
