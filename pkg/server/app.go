package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domain "Lohas/internal/domain/repository"
	"Lohas/pkg/cache"
	pkgch "Lohas/pkg/clickhouse"
	"Lohas/pkg/config"
	xhttp "Lohas/pkg/http"
	applogger "Lohas/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	cacheSvc   cache.Service
	store      domain.WatchlistStore
	publisher  domain.ScanPublisher
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. chClient and
// publisher may be nil depending on configuration.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	cacheSvc cache.Service,
	store domain.WatchlistStore,
	publisher domain.ScanPublisher,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		logger:    l,
		handler:   handler,
		cacheSvc:  cacheSvc,
		store:     store,
		publisher: publisher,
		chClient:  chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := a.cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	if !a.cfg.Metrics.Enabled {
		metricsPath = ""
	}

	a.httpServer = xhttp.NewServer(a.handler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithServerTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithHealthCheck(a.healthCheck),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("dashboard started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("watchlist_backend", a.cfg.Watchlist.Backend),
		applogger.Bool("kafka", a.cfg.Kafka.Enabled),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// healthCheck probes the optional backing stores.
func (a *App) healthCheck(ctx context.Context) error {
	if a.chClient != nil {
		return a.chClient.Health(ctx)
	}
	return nil
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("watchlist store close error", applogger.Error(err))
		}
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
