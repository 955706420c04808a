package format

import (
	"math"
	"strings"
	"testing"
	"time"

	"cryptomarkets-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func decimals(s string) int {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}

func TestPlaces_Boundaries(t *testing.T) {
	cases := []struct {
		threshold float64
		at        int // at the threshold and just below it
		above     int // just above it
	}{
		{0.1, 4, 2},
		{0.01, 6, 4},
		{0.0001, 8, 6},
		{0.000001, 10, 8},
		{0.00000001, 12, 10},
		{0.0000000001, 15, 12},
	}
	for _, c := range cases {
		require.Equal(t, c.at, Places(c.threshold), "at %g", c.threshold)
		require.Equal(t, c.at, Places(math.Nextafter(c.threshold, 0)), "below %g", c.threshold)
		require.Equal(t, c.above, Places(math.Nextafter(c.threshold, 1)), "above %g", c.threshold)
	}
}

func TestPlaces_InsideBands(t *testing.T) {
	cases := map[float64]int{
		67000:   2,
		1:       2,
		0.5:     2,
		0.05:    4,
		0.005:   6,
		0.001:   6,
		0.0005:  6,
		0.00005: 8,
		3e-7:    10,
		2e-9:    12,
		5e-11:   15,
		0:       15,
		-1:      15,
	}
	for v, want := range cases {
		require.Equal(t, want, Places(v), "value %g", v)
	}
	require.Equal(t, 15, Places(math.NaN()))
}

func TestPrice_DecimalCount(t *testing.T) {
	for _, v := range []float64{0.11, 1, 999.999, 1234.5, 1e9} {
		require.Equal(t, 2, decimals(Price(v)), "value %g", v)
	}
	for _, v := range []float64{1e-10, 5e-11, 1e-15, math.SmallestNonzeroFloat64} {
		require.Equal(t, 15, decimals(Price(v)), "value %g", v)
	}
}

func TestPrice_Strings(t *testing.T) {
	require.Equal(t, "1,234.50", Price(1234.5))
	require.Equal(t, "67,000.12", Price(67000.12))
	require.Equal(t, "0.1000", Price(0.1))
	require.Equal(t, "0.0500", Price(0.05))
	require.Equal(t, "0.000123", Price(0.000123))
	require.Equal(t, "0.00001234", Price(0.00001234))
	require.Equal(t, "0.000000001000", Price(1e-9))
	require.Equal(t, "0.000000000050000", Price(5e-11))
	require.Equal(t, "0.000000000000000", Price(0))
}

func TestAmountAndPercent(t *testing.T) {
	require.Equal(t, "1,320,000,000,000.00", Amount(1.32e12))
	require.Equal(t, "-1,234,567.89", Amount(-1234567.891))
	require.Equal(t, "0.00", Amount(0.000001))
	require.Equal(t, "999.00", Amount(999))
	require.Equal(t, "12.35%", Percent(12.345))
	require.Equal(t, "-3.10%", Percent(-3.1))
	require.Equal(t, "1,000.00%", Percent(1000))
}

func TestRounding_HalfEvenOnBinaryValue(t *testing.T) {
	// 2.675 and 1.005 are stored slightly below the half, 0.125 is an exact tie.
	require.Equal(t, "2.67", Amount(2.675))
	require.Equal(t, "1.00", Amount(1.005))
	require.Equal(t, "0.12", Amount(0.125))
	require.Equal(t, "0.38", Amount(0.375))
	require.Equal(t, "12.35", Amount(12.345))
	require.Equal(t, "0.00001250", Price(0.0000125))
}

func TestRounding_NegativeZero(t *testing.T) {
	require.Equal(t, "-0.00", Amount(-0.001))
	require.Equal(t, "-0.00%", Percent(-0.004))
	require.Equal(t, "-0.00", Amount(math.Copysign(0, -1)))
}

func TestNonFinite(t *testing.T) {
	require.Equal(t, Placeholder, Amount(math.Inf(1)))
	require.Equal(t, Placeholder, Price(math.NaN()))
}

func TestDate(t *testing.T) {
	d := domain.NewDate(time.Date(2024, 3, 14, 7, 10, 36, 0, time.UTC))
	require.Equal(t, "2024-03-14", Date(d))
	require.Equal(t, "-", Date(domain.MissingDate))
}

func TestCell(t *testing.T) {
	price, mcap, pct := 0.05, 1234567.0, 12.345
	rank := 7
	r := domain.MarketRecord{
		Symbol:                   "BTC",
		CurrentPrice:             &price,
		MarketCap:                &mcap,
		MarketCapRank:            &rank,
		PriceChangePercentage24h: &pct,
		ATHDate:                  domain.MissingDate,
	}
	cols := domain.SelectColumns([]string{
		domain.ColSymbol, domain.ColCurrentPrice, domain.ColMarketCap, domain.ColMarketCapRank,
		domain.ColPriceChangePct24h, domain.ColATHDate, domain.ColMaxSupply,
	})
	got := Row(cols, r)
	require.Equal(t, []string{"BTC", "0.0500", "1,234,567.00", "7", "12.35%", "-", "-"}, got)

	// Formatting leaves the record untouched.
	require.Equal(t, 0.05, *r.CurrentPrice)
}
