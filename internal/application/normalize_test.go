package application

import (
	"testing"
	"time"

	"cryptomarkets-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestNormalize_UppercaseSymbol(t *testing.T) {
	t.Parallel()
	out := Normalize([]domain.RawMarket{{Symbol: "btc"}})
	require.Equal(t, "BTC", out[0].Symbol)
}

func TestNormalize_VolumeRenamed(t *testing.T) {
	t.Parallel()
	vol := 35e9
	out := Normalize([]domain.RawMarket{{Symbol: "eth", TotalVolume: &vol}})
	require.Equal(t, &vol, out[0].Number(domain.ColTotalVolume))
}

func TestNormalize_MissingStaysMissing(t *testing.T) {
	t.Parallel()
	out := Normalize([]domain.RawMarket{{Symbol: "x"}})
	r := out[0]
	require.Nil(t, r.CurrentPrice)
	require.Nil(t, r.MarketCapRank)
	require.Nil(t, r.MaxSupply)
	require.False(t, r.ATHDate.Valid)
	require.False(t, r.ATLDate.Valid)
}

func TestNormalize_Dates(t *testing.T) {
	t.Parallel()
	out := Normalize([]domain.RawMarket{{
		Symbol:  "btc",
		ATHDate: strPtr("2024-03-14T07:10:36.635Z"),
		ATLDate: strPtr("not a date"),
	}})
	r := out[0]
	require.True(t, r.ATHDate.Valid)
	require.Equal(t, time.Date(2024, 3, 14, 7, 10, 36, 635000000, time.UTC), r.ATHDate.Time)
	require.Equal(t, domain.MissingDate, r.ATLDate)
}

func TestParseDate_Layouts(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in    string
		valid bool
		day   int
	}{
		{"2013-07-06T00:00:00.000Z", true, 6},
		{"2013-07-06T00:00:00Z", true, 6},
		{"2013-07-06", true, 6},
		{"2013-07-06 10:00:00", true, 6},
		{"", false, 0},
		{"06/07/2013", false, 0},
		{"2013-13-40", false, 0},
	}
	for _, c := range cases {
		d := ParseDate(strPtr(c.in))
		require.Equal(t, c.valid, d.Valid, c.in)
		if c.valid {
			require.Equal(t, c.day, d.Time.Day(), c.in)
		}
	}
	require.False(t, ParseDate(nil).Valid)
}
