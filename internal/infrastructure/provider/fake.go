package provider

import (
	"context"
	"fmt"
	"time"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/domain"
)

// Ensure Fake implements application.MarketProvider.
var _ application.MarketProvider = (*Fake)(nil)

// Fake serves deterministic pages with strictly descending volume.
type Fake struct {
	price float64
}

func NewFake(price float64) *Fake { return &Fake{price: price} }

func (f *Fake) FetchPage(_ context.Context, q domain.MarketQuery, page int) ([]domain.RawMarket, error) {
	athDate := time.Date(2021, 11, 10, 14, 24, 11, 0, time.UTC).Format(time.RFC3339)
	out := make([]domain.RawMarket, 0, q.PerPage)
	for i := 0; i < q.PerPage; i++ {
		n := (page-1)*q.PerPage + i
		price := f.price / float64(n+1)
		volume := float64(q.PerPage*q.Pages - n)
		rank := n + 1
		out = append(out, domain.RawMarket{
			ID:            fmt.Sprintf("coin-%d", n),
			Symbol:        fmt.Sprintf("c%d", n),
			CurrentPrice:  &price,
			MarketCapRank: &rank,
			TotalVolume:   &volume,
			ATHDate:       &athDate,
		})
	}
	return out, nil
}
