package application

import (
	"context"
	"time"

	"cryptomarkets-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 24 * time.Hour

// MarketService serves aggregated market datasets, refetching a query's
// dataset once its cached copy is older than the TTL.
type MarketService struct {
	provider MarketProvider
	cache    DatasetCache
	clock    Clock
	ttl      time.Duration
	log      *zap.Logger
	group    singleflight.Group

	cacheRequests *prometheus.CounterVec
	cycles        prometheus.Counter
}

var _ MarketSource = (*MarketService)(nil)

type Option func(*MarketService)

func WithClock(c Clock) Option        { return func(s *MarketService) { s.clock = c } }
func WithTTL(d time.Duration) Option  { return func(s *MarketService) { s.ttl = d } }
func WithLogger(l *zap.Logger) Option { return func(s *MarketService) { s.log = l } }
func WithMetrics(cache *prometheus.CounterVec, cycles prometheus.Counter) Option {
	return func(s *MarketService) {
		s.cacheRequests = cache
		s.cycles = cycles
	}
}

func NewMarketService(provider MarketProvider, cache DatasetCache, opts ...Option) *MarketService {
	s := &MarketService{
		provider: provider,
		cache:    cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// GetOrFetch returns the cached dataset for q while it is fresh, otherwise
// runs one fetch, aggregate and normalize cycle and stores the result.
// Concurrent misses on the same query share one cycle.
func (s *MarketService) GetOrFetch(ctx context.Context, q domain.MarketQuery) (domain.Dataset, error) {
	key := q.Key()
	log := s.log.With(zap.String("key", key))

	ds, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache.get_failed", zap.Error(err))
	}
	if ok && !s.expired(ds) {
		s.observe("hit")
		return ds, nil
	}
	s.observe("miss")

	v, err, shared := s.group.Do(key, func() (any, error) {
		// Another flight may have stored a fresh copy since the lookup above.
		if ds, ok, err := s.cache.Get(ctx, key); err == nil && ok && !s.expired(ds) {
			return ds, nil
		}
		return s.refresh(ctx, q)
	})
	if shared {
		log.Debug("cache.shared_refresh")
	}
	if err != nil {
		return domain.Dataset{}, err
	}
	return v.(domain.Dataset), nil
}

// Refresh runs a cycle for q regardless of what is cached.
func (s *MarketService) Refresh(ctx context.Context, q domain.MarketQuery) (domain.Dataset, error) {
	return s.refresh(ctx, q)
}

func (s *MarketService) refresh(ctx context.Context, q domain.MarketQuery) (domain.Dataset, error) {
	log := s.log.With(zap.String("key", q.Key()))
	start := s.clock.Now()
	raw, err := Aggregate(ctx, s.provider, q, log)
	if err != nil {
		log.Error("refresh.failed", zap.Error(err))
		return domain.Dataset{}, err
	}
	ds := domain.Dataset{
		Records:   Normalize(raw),
		FetchedAt: s.clock.Now(),
	}
	if s.cycles != nil {
		s.cycles.Inc()
	}
	if ds.Empty() {
		log.Warn("refresh.empty_dataset")
		return ds, ErrEmptyDataset
	}
	if err := s.cache.Put(ctx, q.Key(), ds); err != nil {
		log.Warn("cache.put_failed", zap.Error(err))
	}
	log.Info("refresh.done",
		zap.Int("records", ds.Len()),
		zap.Duration("took", ds.FetchedAt.Sub(start)),
	)
	return ds, nil
}

func (s *MarketService) expired(ds domain.Dataset) bool {
	return s.clock.Now().Sub(ds.FetchedAt) > s.ttl
}

func (s *MarketService) observe(result string) {
	if s.cacheRequests != nil {
		s.cacheRequests.WithLabelValues(result).Inc()
	}
}
