// Package learning runs the periodic coefficient refresh. Predictions stay
// request-scoped and read coefficients lock-free; this loop is the only
// writer.
package learning

import (
	"context"
	"log/slog"
	"time"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
	"github.com/ARUNKUMAR069/RescueX/internal/observability"
)

// HistorySource provides recent predictions with feedback.
type HistorySource interface {
	RecentPredictions(ctx context.Context, limit int) ([]domain.FeedbackRecord, error)
}

// Learner consumes prediction history and reports whether coefficients changed.
type Learner interface {
	Learn(history []domain.FeedbackRecord) bool
}

// Refresher periodically reloads feedback history and recomputes the
// learning coefficients.
type Refresher struct {
	source   HistorySource
	learner  Learner
	interval time.Duration
	limit    int
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewRefresher(source HistorySource, learner Learner, interval time.Duration, limit int, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		source:   source,
		learner:  learner,
		interval: interval,
		limit:    limit,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run refreshes once immediately, then on every tick until the context is
// canceled. It always returns nil on shutdown; refresh failures are logged
// and retried on the next tick rather than stopping the loop.
func (r *Refresher) Run(ctx context.Context) error {
	r.metrics.RefresherRunning.Set(1)
	defer r.metrics.RefresherRunning.Set(0)

	r.refresh(ctx)

	ticker := domain.Clock().NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("learning refresher stopped")
			return nil
		case <-ticker.Chan():
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	history, err := r.source.RecentPredictions(ctx, r.limit)
	if err != nil {
		r.logger.Error("loading prediction history failed", "error", err)
		return
	}
	r.learner.Learn(history)
}
