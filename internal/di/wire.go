//go:build wireinject
// +build wireinject

package di

import (
	"Lohas/pkg/config"
	"Lohas/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideWatchlistStore,
		ProvideScanPublisher,
		ProvideMarketData,

		// Use cases
		ProvideAnalyzer,
		ProvideScanner,
		ProvideManager,
		ProvideQuotePusher,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
