package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/domain"

	"github.com/stretchr/testify/require"
)

type countingSource struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingSource) GetOrFetch(context.Context, domain.MarketQuery) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return domain.Dataset{}, s.err
	}
	return domain.Dataset{Records: []domain.MarketRecord{{Symbol: "BTC"}}, FetchedAt: time.Now()}, nil
}

func (s *countingSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRefresher_TicksUntilCancel(t *testing.T) {
	src := &countingSource{}
	var _ application.MarketSource = src

	w := &Refresher{Source: src, Query: domain.DefaultMarketQuery(), Every: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancel")
	}
	require.GreaterOrEqual(t, src.count(), 2)
}

func TestRefresher_KeepsGoingOnError(t *testing.T) {
	src := &countingSource{err: errors.New("upstream down")}
	w := &Refresher{Source: src, Query: domain.DefaultMarketQuery(), Every: 5 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	w.Start(ctx)
	require.GreaterOrEqual(t, src.count(), 2)
}
