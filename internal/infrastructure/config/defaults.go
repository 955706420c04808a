package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultAttemptTimeout  = 10 * time.Second
	DefaultRetryDelay      = 10 * time.Second
	DefaultMaxAttempts     = 5
	DefaultRedisKeyPrefix  = "cryptomarkets:dataset:"
)
