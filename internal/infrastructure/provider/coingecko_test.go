package provider_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"cryptomarkets-service/internal/domain"
	"cryptomarkets-service/internal/infrastructure/httpx"
	"cryptomarkets-service/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

type rtFunc func(*http.Request) *http.Response

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func httpClient(fn func(r *http.Request) (string, int)) *httpx.Client {
	return &httpx.Client{
		HTTP: &http.Client{
			Timeout: 2 * time.Second,
			Transport: rtFunc(func(r *http.Request) *http.Response {
				body, code := fn(r)
				return &http.Response{
					StatusCode: code,
					Body:       io.NopCloser(strings.NewReader(body)),
					Header:     make(http.Header),
					Request:    r,
				}
			}),
		},
		Retry: httpx.RetryPolicy{MaxAttempts: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
	}
}

const samplePage = `[
  {
    "id": "bitcoin",
    "symbol": "btc",
    "name": "Bitcoin",
    "current_price": 67000.12,
    "market_cap": 1320000000000,
    "market_cap_rank": 1,
    "fully_diluted_valuation": null,
    "total_volume": 35000000000,
    "high_24h": 68000,
    "low_24h": 66000.5,
    "price_change_percentage_24h": 1.234,
    "max_supply": null,
    "ath": 73738,
    "ath_date": "2024-03-14T07:10:36.635Z",
    "atl": 67.81,
    "atl_date": "2013-07-06T00:00:00.000Z"
  }
]`

func TestFetchPage_Query(t *testing.T) {
	var got *http.Request
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client: httpClient(func(r *http.Request) (string, int) {
			got = r
			return samplePage, 200
		}),
	}
	coins, err := p.FetchPage(context.Background(), domain.DefaultMarketQuery(), 3)
	require.NoError(t, err)
	require.Len(t, coins, 1)

	require.Equal(t, "/api/v3/coins/markets", got.URL.Path)
	qs := got.URL.Query()
	require.Equal(t, "usd", qs.Get("vs_currency"))
	require.Equal(t, "volume_desc", qs.Get("order"))
	require.Equal(t, "100", qs.Get("per_page"))
	require.Equal(t, "3", qs.Get("page"))
}

func TestFetchPage_Decode(t *testing.T) {
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client:  httpClient(func(*http.Request) (string, int) { return samplePage, 200 }),
	}
	coins, err := p.FetchPage(context.Background(), domain.DefaultMarketQuery(), 1)
	require.NoError(t, err)
	c := coins[0]
	require.Equal(t, "btc", c.Symbol)
	require.InDelta(t, 67000.12, *c.CurrentPrice, 1e-9)
	require.Equal(t, 1, *c.MarketCapRank)
	require.Nil(t, c.FullyDilutedValuation)
	require.Nil(t, c.MaxSupply)
	require.Nil(t, c.PriceChange24h)
	require.Equal(t, "2024-03-14T07:10:36.635Z", *c.ATHDate)
}

func TestFetchPage_NullBody(t *testing.T) {
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client:  httpClient(func(*http.Request) (string, int) { return "null", 200 }),
	}
	coins, err := p.FetchPage(context.Background(), domain.DefaultMarketQuery(), 1)
	require.NoError(t, err)
	require.Empty(t, coins)
}

func TestFetchPage_RetriesThenFails(t *testing.T) {
	calls := 0
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client: httpClient(func(*http.Request) (string, int) {
			calls++
			return `{"status":{"error_code":429}}`, 429
		}),
	}
	_, err := p.FetchPage(context.Background(), domain.DefaultMarketQuery(), 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, httpx.ErrRetriesExhausted))
	require.Equal(t, 2, calls)
}

func TestFetchPage_InvalidQuery(t *testing.T) {
	p := &provider.CoinGeckoProvider{BaseURL: "https://api.coingecko.com"}
	_, err := p.FetchPage(context.Background(), domain.MarketQuery{}, 1)
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestFake_Pages(t *testing.T) {
	q := domain.MarketQuery{VsCurrency: "usd", Order: "volume_desc", PerPage: 3, Pages: 2}
	f := provider.NewFake(10)
	p1, err := f.FetchPage(context.Background(), q, 1)
	require.NoError(t, err)
	p2, err := f.FetchPage(context.Background(), q, 2)
	require.NoError(t, err)
	require.Len(t, p1, 3)
	require.Equal(t, "c3", p2[0].Symbol)
	require.Greater(t, *p1[2].TotalVolume, *p2[0].TotalVolume)
}
