package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cryptomarkets-service/internal/domain"
)

var ErrUpstream = errors.New("upstream error")

// fakeProvider serves perPage records for every page except those listed in empty.
type fakeProvider struct {
	mu      sync.Mutex
	perPage int
	empty   map[int]bool
	failOn  map[int]bool
	calls   []int
	delay   time.Duration
}

func (f *fakeProvider) FetchPage(_ context.Context, _ domain.MarketQuery, page int) ([]domain.RawMarket, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.calls = append(f.calls, page)
	f.mu.Unlock()
	if f.failOn[page] {
		return nil, ErrUpstream
	}
	if f.empty[page] {
		return nil, nil
	}
	out := make([]domain.RawMarket, 0, f.perPage)
	for i := 0; i < f.perPage; i++ {
		out = append(out, domain.RawMarket{Symbol: fmt.Sprintf("p%d-%d", page, i)})
	}
	return out, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeCache struct {
	mu      sync.Mutex
	store   map[string]domain.Dataset
	getErr  error
	putErr  error
	putKeys []string
}

func (f *fakeCache) Get(_ context.Context, key string) (domain.Dataset, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return domain.Dataset{}, false, f.getErr
	}
	ds, ok := f.store[key]
	return ds, ok, nil
}

func (f *fakeCache) Put(_ context.Context, key string, ds domain.Dataset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	if f.store == nil {
		f.store = map[string]domain.Dataset{}
	}
	f.store[key] = ds
	f.putKeys = append(f.putKeys, key)
	return nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func strPtr(s string) *string { return &s }
