package worker

import (
	"context"
	"time"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/domain"

	"go.uber.org/zap"
)

var _ application.Worker = (*Refresher)(nil)

// Refresher keeps the dataset cache warm by asking for the dataset on a
// fixed interval. Fresh entries are served from the cache, so upstream is
// only contacted once an entry has expired.
type Refresher struct {
	Source application.MarketSource
	Query  domain.MarketQuery

	Every time.Duration
	Log   *zap.Logger
}

func (w *Refresher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.Every <= 0 {
		w.Every = time.Hour
	}
	log = log.With(zap.String("worker", "refresher"), zap.String("key", w.Query.Key()))

	t := time.NewTicker(w.Every)
	defer t.Stop()

	log.Info("refresher_started", zap.Duration("every", w.Every))
	w.tick(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("refresher_stopped")
			return
		case <-t.C:
			w.tick(ctx, log)
		}
	}
}

func (w *Refresher) tick(ctx context.Context, log *zap.Logger) {
	ds, err := w.Source.GetOrFetch(ctx, w.Query)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn("refresh_failed", zap.Error(err))
		}
		return
	}
	log.Debug("refresh_ok", zap.Int("records", ds.Len()), zap.Time("fetched_at", ds.FetchedAt))
}
