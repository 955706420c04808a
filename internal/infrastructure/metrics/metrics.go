package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cryptomarkets"

var (
	// FetchAttempts counts upstream HTTP attempts by outcome (ok, error).
	FetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_attempts_total",
		Help:      "Upstream HTTP attempts by outcome.",
	}, []string{"outcome"})

	// CacheRequests counts dataset lookups by result (hit, miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Dataset cache lookups by result.",
	}, []string{"result"})

	AggregationCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregation_cycles_total",
		Help:      "Completed fetch, aggregate and normalize cycles.",
	})
)
