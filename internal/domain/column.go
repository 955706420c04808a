package domain

import "strings"

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindRank
	KindPrice
	KindAmount
	KindPercent
	KindDate
)

const (
	ColSymbol                = "symbol"
	ColCurrentPrice          = "current_price"
	ColMarketCap             = "market_cap"
	ColMarketCapRank         = "market_cap_rank"
	ColFullyDilutedValuation = "fully_diluted_valuation"
	ColTotalVolume           = "Total Volume in USD"
	ColHigh24h               = "high_24h"
	ColLow24h                = "low_24h"
	ColPriceChange24h        = "price_change_24h"
	ColPriceChangePct24h     = "price_change_percentage_24h"
	ColMarketCapChange24h    = "market_cap_change_24h"
	ColMarketCapChangePct24h = "market_cap_change_percentage_24h"
	ColCirculatingSupply     = "circulating_supply"
	ColTotalSupply           = "total_supply"
	ColMaxSupply             = "max_supply"
	ColATH                   = "ath"
	ColATHChangePct          = "ath_change_percentage"
	ColATHDate               = "ath_date"
	ColATL                   = "atl"
	ColATLChangePct          = "atl_change_percentage"
	ColATLDate               = "atl_date"
)

type Column struct {
	Name string
	Kind ColumnKind
}

// Columns lists every column in display order.
var Columns = []Column{
	{ColSymbol, KindText},
	{ColCurrentPrice, KindPrice},
	{ColMarketCap, KindAmount},
	{ColMarketCapRank, KindRank},
	{ColFullyDilutedValuation, KindAmount},
	{ColTotalVolume, KindAmount},
	{ColHigh24h, KindPrice},
	{ColLow24h, KindPrice},
	{ColPriceChange24h, KindAmount},
	{ColPriceChangePct24h, KindPercent},
	{ColMarketCapChange24h, KindAmount},
	{ColMarketCapChangePct24h, KindPercent},
	{ColCirculatingSupply, KindAmount},
	{ColTotalSupply, KindAmount},
	{ColMaxSupply, KindAmount},
	{ColATH, KindPrice},
	{ColATHChangePct, KindPercent},
	{ColATHDate, KindDate},
	{ColATL, KindPrice},
	{ColATLChangePct, KindPercent},
	{ColATLDate, KindDate},
}

var DefaultColumnNames = []string{ColSymbol, ColCurrentPrice, ColMarketCap}

func LookupColumn(name string) (Column, bool) {
	for _, c := range Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

// SelectColumns keeps the known names, in registry order. Entries may hold
// comma separated lists. An empty result selects every column.
func SelectColumns(names []string) []Column {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if p := strings.TrimSpace(part); p != "" {
				want[p] = true
			}
		}
	}
	var out []Column
	for _, c := range Columns {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append([]Column(nil), Columns...)
	}
	return out
}

func DefaultColumns() []Column { return SelectColumns(DefaultColumnNames) }
