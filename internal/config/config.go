package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port string
	// Provider
	Provider       string
	CoinGeckoBase  string
	VsCurrency     string
	MarketOrder    string
	PerPage        int
	Pages          int
	RequestTimeout time.Duration
	// Retry
	RetryForever     bool
	RetryMaxAttempts int
	RetryDelay       time.Duration
	RetryInitial     time.Duration
	RetryMax         time.Duration
	// Cache
	CacheBackend string
	CacheTTL     time.Duration
	// Redis (cache backend)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Worker
	RefreshEvery time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

func msDef(key string, defMS int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, strconv.Itoa(defMS)), defMS)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:              getEnv("ENV", "local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnv("PORT", "8080"),
		Provider:         getEnv("PROVIDER", "coingecko"),
		CoinGeckoBase:    getEnv("COINGECKO_API_BASE", "https://api.coingecko.com"),
		VsCurrency:       getEnv("VS_CURRENCY", "usd"),
		MarketOrder:      getEnv("MARKET_ORDER", "volume_desc"),
		PerPage:          atoiDef(getEnv("PER_PAGE", "100"), 100),
		Pages:            atoiDef(getEnv("PAGES", "5"), 5),
		RequestTimeout:   msDef("REQUEST_TIMEOUT_MS", 10000),
		RetryForever:     boolDef(getEnv("RETRY_FOREVER", "false"), false),
		RetryMaxAttempts: atoiDef(getEnv("RETRY_MAX_ATTEMPTS", "5"), 5),
		RetryDelay:       msDef("RETRY_DELAY_MS", 10000),
		RetryInitial:     msDef("RETRY_INITIAL_MS", 1000),
		RetryMax:         msDef("RETRY_MAX_MS", 10000),
		CacheBackend:     getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:         msDef("CACHE_TTL_MS", 86400000),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          atoiDef(getEnv("REDIS_DB", "0"), 0),
		RefreshEvery:     msDef("REFRESH_EVERY_MS", 0),
	}
}
