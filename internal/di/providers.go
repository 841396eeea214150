package di

import (
	"context"
	"fmt"
	"time"

	"Lohas/internal/domain/repository"
	"Lohas/internal/handler/api"
	internalrepo "Lohas/internal/repository"
	"Lohas/internal/service/stream"
	"Lohas/internal/service/yahoo"
	"Lohas/internal/usecase"
	"Lohas/pkg/cache"
	pkgch "Lohas/pkg/clickhouse"
	"Lohas/pkg/config"
	xhttp "Lohas/pkg/http"
	pkgkafka "Lohas/pkg/kafka"
	applogger "Lohas/pkg/logger"
	"Lohas/pkg/metrics"
	"Lohas/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the result cache: in-process memory, layered over
// Redis when an address is configured.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	memOpts := []cache.MemoryOption{
		cache.WithMemoryDefaultTTL(cfg.Channel.CacheTTL),
	}
	if cfg.Cache.MemoryMaxSize > 0 {
		memOpts = append(memOpts, cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
	}

	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(memOpts...), nil
	}

	redisOpts := []cache.RedisOption{
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	}
	if cfg.Cache.Redis.Prefix != "" {
		redisOpts = append(redisOpts, cache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
	}
	rc, err := cache.NewRedisCache(redisOpts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc, memOpts...), nil
}

// ProvideClickHouseClient creates a ClickHouse client when the watchlist
// backend needs one; otherwise returns nil.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Watchlist.Backend != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideWatchlistStore creates the configured watchlist backend.
func ProvideWatchlistStore(cfg *config.Config, chClient *pkgch.Client) (repository.WatchlistStore, error) {
	switch cfg.Watchlist.Backend {
	case "clickhouse":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := internalrepo.NewCHWatchlistStore(ctx, chClient, cfg.Watchlist.Defaults)
		if err != nil {
			return nil, fmt.Errorf("clickhouse watchlist: %w", err)
		}
		return store, nil
	default:
		store, err := internalrepo.NewCSVWatchlistStore(cfg.Watchlist.Dir, cfg.Watchlist.Defaults)
		if err != nil {
			return nil, fmt.Errorf("csv watchlist: %w", err)
		}
		return store, nil
	}
}

// ProvideKafkaProducer creates a Kafka producer when enabled; nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideScanPublisher wraps the producer; nil when Kafka is disabled.
func ProvideScanPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.ScanPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaScanPublisher(producer, cfg.Kafka.Topic)
}

// ProvideMarketData creates the Yahoo Finance gateway.
func ProvideMarketData(cfg *config.Config) *yahoo.Client {
	opts := []yahoo.Option{
		yahoo.WithTimeout(cfg.MarketData.Timeout),
	}
	if cfg.MarketData.BaseURL != "" {
		opts = append(opts, yahoo.WithBaseURL(cfg.MarketData.BaseURL))
	}
	if len(cfg.MarketData.SymbolMap) > 0 {
		opts = append(opts, yahoo.WithSymbolMap(cfg.MarketData.SymbolMap))
	}
	return yahoo.New(opts...)
}

// ProvideAnalyzer creates the channel analyzer use case.
func ProvideAnalyzer(
	gateway *yahoo.Client,
	cacheSvc cache.Service,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.ChannelAnalyzer {
	return usecase.NewChannelAnalyzer(gateway, cacheSvc, m, l, usecase.AnalyzerConfig{
		TTL:       cfg.Channel.CacheTTL,
		SD1:       cfg.Channel.SD1,
		SD2:       cfg.Channel.SD2,
		VIXSymbol: cfg.MarketData.VIXSymbol,
	})
}

// ProvideScanner creates the watchlist scanner use case.
func ProvideScanner(
	analyzer *usecase.ChannelAnalyzer,
	store repository.WatchlistStore,
	publisher repository.ScanPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.WatchlistScanner {
	return usecase.NewWatchlistScanner(analyzer, store, publisher, m, l)
}

// ProvideManager creates the watchlist CRUD use case.
func ProvideManager(store repository.WatchlistStore, gateway *yahoo.Client) *usecase.WatchlistManager {
	return usecase.NewWatchlistManager(store, gateway.Normalize)
}

// ProvideQuotePusher creates the websocket quote pusher.
func ProvideQuotePusher(
	gateway *yahoo.Client,
	analyzer *usecase.ChannelAnalyzer,
	store repository.WatchlistStore,
	l *applogger.Logger,
	cfg *config.Config,
) *stream.QuotePusher {
	return stream.NewQuotePusher(gateway, analyzer, store, l, cfg.Stream.PushInterval)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	l *applogger.Logger,
	analyzer *usecase.ChannelAnalyzer,
	scanner *usecase.WatchlistScanner,
	manager *usecase.WatchlistManager,
	pusher *stream.QuotePusher,
) xhttp.Handler {
	return api.NewDashboardHandler(l, analyzer, scanner, manager, pusher)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	cacheSvc cache.Service,
	store repository.WatchlistStore,
	publisher repository.ScanPublisher,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, l, handler, cacheSvc, store, publisher, chClient)
}
