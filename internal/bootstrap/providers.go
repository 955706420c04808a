package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/config"
	"cryptomarkets-service/internal/domain"
	infraconfig "cryptomarkets-service/internal/infrastructure/config"
	httpserver "cryptomarkets-service/internal/infrastructure/http"
	"cryptomarkets-service/internal/infrastructure/httpx"
	"cryptomarkets-service/internal/infrastructure/logx"
	"cryptomarkets-service/internal/infrastructure/memcache"
	"cryptomarkets-service/internal/infrastructure/metrics"
	"cryptomarkets-service/internal/infrastructure/provider"
	redisstore "cryptomarkets-service/internal/infrastructure/redis"
	"cryptomarkets-service/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrUnknownProvider     = errors.New("bootstrap: unknown PROVIDER")
	ErrUnknownCacheBackend = errors.New("bootstrap: unknown CACHE_BACKEND")
	ErrWorkerNeedsRedis    = errors.New("bootstrap: worker requires CACHE_BACKEND=redis")
)

// Cache is a dataset store that can report whether it is reachable.
type Cache interface {
	application.DatasetCache
	Ping(ctx context.Context) error
}

// API bundles what cmd/api needs to serve.
type API struct {
	Addr    string
	Handler http.Handler
	// Refresher is nil unless REFRESH_EVERY_MS is set.
	Refresher *worker.Refresher
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideMarketQuery(cfg config.Config) (domain.MarketQuery, error) {
	q := domain.MarketQuery{
		VsCurrency: cfg.VsCurrency,
		Order:      cfg.MarketOrder,
		PerPage:    cfg.PerPage,
		Pages:      cfg.Pages,
	}
	if err := q.Validate(); err != nil {
		return domain.MarketQuery{}, err
	}
	return q, nil
}

// ProvideRetryPolicy starts from the httpx defaults and applies the
// configured values that are set.
func ProvideRetryPolicy(cfg config.Config) httpx.RetryPolicy {
	p := httpx.DefaultRetryPolicy()
	p.Forever = cfg.RetryForever
	if cfg.RetryMaxAttempts > 0 {
		p.MaxAttempts = cfg.RetryMaxAttempts
	}
	if cfg.RetryDelay > 0 {
		p.Delay = cfg.RetryDelay
	}
	if cfg.RetryInitial > 0 {
		p.InitialInterval = cfg.RetryInitial
	}
	if cfg.RetryMax > 0 {
		p.MaxInterval = cfg.RetryMax
	}
	return p
}

func ProvideHTTPClient(cfg config.Config, retry httpx.RetryPolicy, log *zap.Logger) *httpx.Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = infraconfig.DefaultAttemptTimeout
	}
	return &httpx.Client{
		HTTP:           &http.Client{},
		Retry:          retry,
		AttemptTimeout: timeout,
		Log:            log,
	}
}

func ProvideMarketProvider(cfg config.Config, client *httpx.Client) (application.MarketProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "coingecko":
		return &provider.CoinGeckoProvider{BaseURL: cfg.CoinGeckoBase, Client: client}, nil
	case "fake":
		return provider.NewFake(1.2345), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, cfg.Provider)
	}
}

// ProvideCache returns the configured dataset store. The redis backend is
// pinged once so a bad address fails at startup.
func ProvideCache(ctx context.Context, cfg config.Config, log *zap.Logger) (Cache, func(), error) {
	switch strings.ToLower(cfg.CacheBackend) {
	case "", "memory":
		return memcache.New(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		// Redis expiry is a backstop; freshness is checked against FetchedAt.
		store := redisstore.New(client, cfg.CacheTTL)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, func() {}, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		return store, cleanup, nil
	default:
		return nil, func() {}, fmt.Errorf("%w %q", ErrUnknownCacheBackend, cfg.CacheBackend)
	}
}

// RequireSharedCache rejects backends other processes cannot read. A
// standalone worker warming an in-process cache would serve nobody.
func RequireSharedCache(cfg config.Config) error {
	if strings.ToLower(cfg.CacheBackend) != "redis" {
		return fmt.Errorf("%w, got %q", ErrWorkerNeedsRedis, cfg.CacheBackend)
	}
	return nil
}

func ProvideMarketService(cfg config.Config, p application.MarketProvider, cache Cache, log *zap.Logger) *application.MarketService {
	return application.NewMarketService(p, cache,
		application.WithTTL(cfg.CacheTTL),
		application.WithLogger(log),
		application.WithMetrics(metrics.CacheRequests, metrics.AggregationCycles),
	)
}

func ProvideServer(svc *application.MarketService, q domain.MarketQuery, cache Cache) *httpserver.Server {
	srv := httpserver.NewServer(svc, q)
	srv.SetReadyCheck(cache.Ping)
	return srv
}

func ProvideRefresher(cfg config.Config, svc *application.MarketService, q domain.MarketQuery, log *zap.Logger) *worker.Refresher {
	return &worker.Refresher{
		Source: svc,
		Query:  q,
		Every:  cfg.RefreshEvery,
		Log:    log,
	}
}

func ProvideAPI(cfg config.Config, srv *httpserver.Server, r *worker.Refresher) *API {
	port := cfg.Port
	if port == "" {
		port = infraconfig.DefaultHTTPPort
	}
	api := &API{Addr: ":" + port, Handler: httpserver.NewRouter(srv)}
	if cfg.RefreshEvery > 0 {
		api.Refresher = r
	}
	return api
}
