package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultVsCurrency = "usd"
	DefaultOrder      = "volume_desc"
	DefaultPerPage    = 100
	DefaultPages      = 5
)

// MarketQuery describes one aggregation cycle against the upstream markets endpoint.
type MarketQuery struct {
	VsCurrency string
	Order      string
	PerPage    int
	Pages      int
}

func DefaultMarketQuery() MarketQuery {
	return MarketQuery{
		VsCurrency: DefaultVsCurrency,
		Order:      DefaultOrder,
		PerPage:    DefaultPerPage,
		Pages:      DefaultPages,
	}
}

func (q MarketQuery) Validate() error {
	switch {
	case strings.TrimSpace(q.VsCurrency) == "":
		return fmt.Errorf("%w: vs_currency is required", ErrInvalidQuery)
	case strings.TrimSpace(q.Order) == "":
		return fmt.Errorf("%w: order is required", ErrInvalidQuery)
	case q.PerPage <= 0:
		return fmt.Errorf("%w: per_page must be positive", ErrInvalidQuery)
	case q.Pages <= 0:
		return fmt.Errorf("%w: pages must be positive", ErrInvalidQuery)
	}
	return nil
}

// Key identifies the query in a cache.
func (q MarketQuery) Key() string {
	return fmt.Sprintf("%s:%s:%d:%d", strings.ToLower(q.VsCurrency), q.Order, q.PerPage, q.Pages)
}
