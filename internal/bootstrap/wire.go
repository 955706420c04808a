//go:build wireinject

package bootstrap

import (
	"context"

	"cryptomarkets-service/internal/infrastructure/worker"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideMarketQuery,
	ProvideRetryPolicy,
	ProvideHTTPClient,
	ProvideMarketProvider,
	ProvideCache,
	ProvideMarketService,
	ProvideRefresher,
)

// API injector: builds the HTTP handler and the optional refresher + Cleanup
func InitAPI(ctx context.Context) (*API, func(), error) {
	wire.Build(
		infraSet,
		ProvideServer,
		ProvideAPI,
	)
	return nil, nil, nil
}

// Worker injector: builds the cache refresher + Cleanup
func InitWorker(ctx context.Context) (*worker.Refresher, func(), error) {
	wire.Build(infraSet)
	return nil, nil, nil
}
