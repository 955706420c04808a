package application

import (
	"strings"
	"time"

	"cryptomarkets-service/internal/domain"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an upstream date string. Anything it cannot read becomes
// domain.MissingDate.
func ParseDate(s *string) domain.Date {
	if s == nil {
		return domain.MissingDate
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return domain.MissingDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return domain.NewDate(t)
		}
	}
	return domain.MissingDate
}

// Normalize upper-cases symbols, moves total_volume under the
// "Total Volume in USD" column and parses the ATH/ATL dates.
func Normalize(raw []domain.RawMarket) []domain.MarketRecord {
	out := make([]domain.MarketRecord, 0, len(raw))
	for _, m := range raw {
		out = append(out, domain.MarketRecord{
			Symbol:                       strings.ToUpper(m.Symbol),
			CurrentPrice:                 m.CurrentPrice,
			MarketCap:                    m.MarketCap,
			MarketCapRank:                m.MarketCapRank,
			FullyDilutedValuation:        m.FullyDilutedValuation,
			TotalVolumeUSD:               m.TotalVolume,
			High24h:                      m.High24h,
			Low24h:                       m.Low24h,
			PriceChange24h:               m.PriceChange24h,
			PriceChangePercentage24h:     m.PriceChangePercentage24h,
			MarketCapChange24h:           m.MarketCapChange24h,
			MarketCapChangePercentage24h: m.MarketCapChangePercentage24h,
			CirculatingSupply:            m.CirculatingSupply,
			TotalSupply:                  m.TotalSupply,
			MaxSupply:                    m.MaxSupply,
			ATH:                          m.ATH,
			ATHChangePercentage:          m.ATHChangePercentage,
			ATHDate:                      ParseDate(m.ATHDate),
			ATL:                          m.ATL,
			ATLChangePercentage:          m.ATLChangePercentage,
			ATLDate:                      ParseDate(m.ATLDate),
		})
	}
	return out
}
