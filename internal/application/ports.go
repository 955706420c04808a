package application

import (
	"context"

	"cryptomarkets-service/internal/domain"
)

// MarketProvider fetches one page of upstream market data. A nil or empty
// slice with a nil error is an empty page.
type MarketProvider interface {
	FetchPage(ctx context.Context, q domain.MarketQuery, page int) ([]domain.RawMarket, error)
}

// DatasetCache stores aggregated datasets by query key. Freshness is decided
// by the caller from Dataset.FetchedAt.
type DatasetCache interface {
	Get(ctx context.Context, key string) (domain.Dataset, bool, error)
	Put(ctx context.Context, key string, ds domain.Dataset) error
}

// MarketSource is what presentation code needs from the service.
type MarketSource interface {
	GetOrFetch(ctx context.Context, q domain.MarketQuery) (domain.Dataset, error)
}
