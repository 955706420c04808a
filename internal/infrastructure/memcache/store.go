package memcache

import (
	"context"
	"sync"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/domain"
)

var _ application.DatasetCache = (*Store)(nil)

// Store keeps datasets in process memory, one entry per query key.
type Store struct {
	mu      sync.RWMutex
	entries map[string]domain.Dataset
}

func New() *Store {
	return &Store{entries: make(map[string]domain.Dataset)}
}

func (s *Store) Get(_ context.Context, key string) (domain.Dataset, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.entries[key]
	return ds, ok, nil
}

func (s *Store) Put(_ context.Context, key string, ds domain.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = ds
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }
