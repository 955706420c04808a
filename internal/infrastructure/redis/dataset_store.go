package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/domain"
	infraconfig "cryptomarkets-service/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

var _ application.DatasetCache = (*DatasetStore)(nil)

// DatasetStore keeps JSON snapshots of datasets in Redis. Keys expire after
// TTL so stale snapshots do not outlive the freshness window.
type DatasetStore struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func New(client *redis.Client, ttl time.Duration) *DatasetStore {
	return &DatasetStore{Client: client, TTL: ttl, Prefix: infraconfig.DefaultRedisKeyPrefix}
}

func (s *DatasetStore) key(k string) string { return s.Prefix + k }

func (s *DatasetStore) Get(ctx context.Context, key string) (domain.Dataset, bool, error) {
	b, err := s.Client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Dataset{}, false, nil
	}
	if err != nil {
		return domain.Dataset{}, false, err
	}
	var ds domain.Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return domain.Dataset{}, false, fmt.Errorf("decode dataset %q: %w", key, err)
	}
	return ds, true, nil
}

func (s *DatasetStore) Put(ctx context.Context, key string, ds domain.Dataset) error {
	b, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset %q: %w", key, err)
	}
	return s.Client.Set(ctx, s.key(key), b, s.TTL).Err()
}

func (s *DatasetStore) Delete(ctx context.Context, key string) error {
	return s.Client.Del(ctx, s.key(key)).Err()
}

func (s *DatasetStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
