package application

import (
	"context"
	"fmt"

	"cryptomarkets-service/internal/domain"

	"go.uber.org/zap"
)

// Aggregate fetches pages 1..q.Pages in order and concatenates them, keeping
// upstream order within each page. Empty pages add nothing. A page that fails
// aborts the cycle.
func Aggregate(ctx context.Context, p MarketProvider, q domain.MarketQuery, log *zap.Logger) ([]domain.RawMarket, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	out := make([]domain.RawMarket, 0, q.Pages*q.PerPage)
	for page := 1; page <= q.Pages; page++ {
		coins, err := p.FetchPage(ctx, q, page)
		if err != nil {
			return nil, fmt.Errorf("aggregate page %d: %w", page, err)
		}
		if len(coins) == 0 {
			log.Warn("aggregate.empty_page", zap.Int("page", page))
			continue
		}
		out = append(out, coins...)
	}
	return out, nil
}
