package learning

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
	"github.com/ARUNKUMAR069/RescueX/internal/observability"
)

type stubSource struct {
	mu      sync.Mutex
	history []domain.FeedbackRecord
	err     error
	calls   int
}

func (s *stubSource) RecentPredictions(_ context.Context, _ int) ([]domain.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.history, s.err
}

type recordingLearner struct {
	learned chan []domain.FeedbackRecord
}

func (l *recordingLearner) Learn(history []domain.FeedbackRecord) bool {
	l.learned <- history
	return true
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefresher_RefreshesImmediatelyAndOnTicks(t *testing.T) {
	fc := clockwork.NewFakeClock()
	domain.SetClock(fc)
	defer domain.SetClock(nil)

	source := &stubSource{history: []domain.FeedbackRecord{{}}}
	learner := &recordingLearner{learned: make(chan []domain.FeedbackRecord, 4)}
	r := NewRefresher(source, learner, time.Minute, 100, testLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Initial refresh before the first tick.
	select {
	case history := <-learner.learned:
		assert.Len(t, history, 1)
	case <-time.After(time.Second):
		t.Fatal("no initial refresh")
	}

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Minute)

	select {
	case <-learner.learned:
	case <-time.After(time.Second):
		t.Fatal("no refresh after tick")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRefresher_SourceErrorsDoNotStopLoop(t *testing.T) {
	fc := clockwork.NewFakeClock()
	domain.SetClock(fc)
	defer domain.SetClock(nil)

	source := &stubSource{err: errors.New("database locked")}
	learner := &recordingLearner{learned: make(chan []domain.FeedbackRecord, 4)}
	r := NewRefresher(source, learner, time.Minute, 100, testLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	// The failing initial refresh never reached the learner.
	assert.Empty(t, learner.learned)

	// Recover the source and tick: the loop is still alive.
	source.mu.Lock()
	source.err = nil
	source.mu.Unlock()
	fc.Advance(time.Minute)

	select {
	case <-learner.learned:
	case <-time.After(time.Second):
		t.Fatal("refresher stopped after source error")
	}

	cancel()
	require.NoError(t, <-done)
}
