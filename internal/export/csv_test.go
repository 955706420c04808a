package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"cryptomarkets-service/internal/domain"
	"cryptomarkets-service/internal/export"

	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestWriteCSV_RawValues(t *testing.T) {
	records := []domain.MarketRecord{
		{
			Symbol:                   "BTC",
			CurrentPrice:             f(1234.5),
			PriceChangePercentage24h: f(12.345),
			TotalVolumeUSD:           f(35000000000),
			ATHDate:                  domain.NewDate(time.Date(2024, 3, 14, 7, 10, 36, 635000000, time.UTC)),
		},
		{Symbol: "XYZ"},
	}
	cols := domain.SelectColumns([]string{
		domain.ColSymbol, domain.ColCurrentPrice, domain.ColTotalVolume,
		domain.ColPriceChangePct24h, domain.ColATHDate,
	})

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, cols, records))
	out := buf.String()

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"symbol", "current_price", "Total Volume in USD", "price_change_percentage_24h", "ath_date"},
		{"BTC", "1234.5", "35000000000", "12.345", "2024-03-14T07:10:36.635Z"},
		{"XYZ", "", "", "", ""},
	}, rows)
	require.NotContains(t, out, "1,234.50")
	require.NotContains(t, out, "12.35%")
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, domain.DefaultColumns(), nil))
	require.Equal(t, "symbol,current_price,market_cap\n", buf.String())
}

func TestRawValue_Rank(t *testing.T) {
	rank := 3
	col, ok := domain.LookupColumn(domain.ColMarketCapRank)
	require.True(t, ok)
	require.Equal(t, "3", export.RawValue(col, domain.MarketRecord{MarketCapRank: &rank}))
	require.Equal(t, "", export.RawValue(col, domain.MarketRecord{}))
}
