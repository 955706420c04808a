package domain

import "time"

// RawMarket is one element of the upstream /coins/markets array.
// Nullable numbers stay pointers so missing values never turn into zeros.
type RawMarket struct {
	ID                           string   `json:"id"`
	Symbol                       string   `json:"symbol"`
	Name                         string   `json:"name"`
	CurrentPrice                 *float64 `json:"current_price"`
	MarketCap                    *float64 `json:"market_cap"`
	MarketCapRank                *int     `json:"market_cap_rank"`
	FullyDilutedValuation        *float64 `json:"fully_diluted_valuation"`
	TotalVolume                  *float64 `json:"total_volume"`
	High24h                      *float64 `json:"high_24h"`
	Low24h                       *float64 `json:"low_24h"`
	PriceChange24h               *float64 `json:"price_change_24h"`
	PriceChangePercentage24h     *float64 `json:"price_change_percentage_24h"`
	MarketCapChange24h           *float64 `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h *float64 `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            *float64 `json:"circulating_supply"`
	TotalSupply                  *float64 `json:"total_supply"`
	MaxSupply                    *float64 `json:"max_supply"`
	ATH                          *float64 `json:"ath"`
	ATHChangePercentage          *float64 `json:"ath_change_percentage"`
	ATHDate                      *string  `json:"ath_date"`
	ATL                          *float64 `json:"atl"`
	ATLChangePercentage          *float64 `json:"atl_change_percentage"`
	ATLDate                      *string  `json:"atl_date"`
	LastUpdated                  *string  `json:"last_updated"`
}

// MarketRecord is one normalized row. JSON names match the column names,
// so a stored snapshot and the rendered table agree on "Total Volume in USD".
type MarketRecord struct {
	Symbol                       string   `json:"symbol"`
	CurrentPrice                 *float64 `json:"current_price"`
	MarketCap                    *float64 `json:"market_cap"`
	MarketCapRank                *int     `json:"market_cap_rank"`
	FullyDilutedValuation        *float64 `json:"fully_diluted_valuation"`
	TotalVolumeUSD               *float64 `json:"Total Volume in USD"`
	High24h                      *float64 `json:"high_24h"`
	Low24h                       *float64 `json:"low_24h"`
	PriceChange24h               *float64 `json:"price_change_24h"`
	PriceChangePercentage24h     *float64 `json:"price_change_percentage_24h"`
	MarketCapChange24h           *float64 `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h *float64 `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            *float64 `json:"circulating_supply"`
	TotalSupply                  *float64 `json:"total_supply"`
	MaxSupply                    *float64 `json:"max_supply"`
	ATH                          *float64 `json:"ath"`
	ATHChangePercentage          *float64 `json:"ath_change_percentage"`
	ATHDate                      Date     `json:"ath_date"`
	ATL                          *float64 `json:"atl"`
	ATLChangePercentage          *float64 `json:"atl_change_percentage"`
	ATLDate                      Date     `json:"atl_date"`
}

// Number returns the numeric field behind a column name, nil when missing or
// when the column is not numeric.
func (r MarketRecord) Number(column string) *float64 {
	switch column {
	case ColCurrentPrice:
		return r.CurrentPrice
	case ColMarketCap:
		return r.MarketCap
	case ColFullyDilutedValuation:
		return r.FullyDilutedValuation
	case ColTotalVolume:
		return r.TotalVolumeUSD
	case ColHigh24h:
		return r.High24h
	case ColLow24h:
		return r.Low24h
	case ColPriceChange24h:
		return r.PriceChange24h
	case ColPriceChangePct24h:
		return r.PriceChangePercentage24h
	case ColMarketCapChange24h:
		return r.MarketCapChange24h
	case ColMarketCapChangePct24h:
		return r.MarketCapChangePercentage24h
	case ColCirculatingSupply:
		return r.CirculatingSupply
	case ColTotalSupply:
		return r.TotalSupply
	case ColMaxSupply:
		return r.MaxSupply
	case ColATH:
		return r.ATH
	case ColATHChangePct:
		return r.ATHChangePercentage
	case ColATL:
		return r.ATL
	case ColATLChangePct:
		return r.ATLChangePercentage
	}
	return nil
}

// DateOf returns the date field behind a column name.
func (r MarketRecord) DateOf(column string) Date {
	switch column {
	case ColATHDate:
		return r.ATHDate
	case ColATLDate:
		return r.ATLDate
	}
	return MissingDate
}

// Dataset is the result of one aggregation cycle. It is not modified after
// it has been built.
type Dataset struct {
	Records   []MarketRecord `json:"records"`
	FetchedAt time.Time      `json:"fetched_at"`
}

func (d Dataset) Len() int    { return len(d.Records) }
func (d Dataset) Empty() bool { return len(d.Records) == 0 }
