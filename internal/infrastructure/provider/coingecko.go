package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/domain"
	"cryptomarkets-service/internal/infrastructure/httpx"
)

const (
	coinGeckoMarketsPath = "/api/v3/coins/markets"
)

// CoinGeckoProvider reads pages of the public /coins/markets endpoint.
type CoinGeckoProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.MarketProvider = (*CoinGeckoProvider)(nil)

func (p *CoinGeckoProvider) FetchPage(ctx context.Context, q domain.MarketQuery, page int) ([]domain.RawMarket, error) {
	if p.BaseURL == "" {
		return nil, errors.New("coingecko: missing configuration")
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, fmt.Errorf("coingecko: invalid page %d", page)
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("coingecko: invalid base url: %w", err)
	}
	u.Path = coinGeckoMarketsPath
	qs := u.Query()
	qs.Set("vs_currency", q.VsCurrency)
	qs.Set("order", q.Order)
	qs.Set("per_page", strconv.Itoa(q.PerPage))
	qs.Set("page", strconv.Itoa(page))
	u.RawQuery = qs.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	// A JSON null body leaves coins nil, which the aggregator treats as an empty page.
	var coins []domain.RawMarket
	if err := client.DoJSON(ctx, req, &coins); err != nil {
		return nil, fmt.Errorf("coingecko: page %d: %w", page, err)
	}
	return coins, nil
}
