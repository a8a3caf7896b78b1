package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleFindings() []domain.HazardFinding {
	return []domain.HazardFinding{
		{HazardType: "Severe Flood", Probability: 0.85, Severity: domain.SeveritySevere, Description: "test"},
	}
}

func TestSaveAndHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	obs := domain.DefaultObservation()

	id1, err := store.SavePrediction(ctx, "mumbai", obs, sampleFindings())
	require.NoError(t, err)
	id2, err := store.SavePrediction(ctx, "tokyo", obs, []domain.HazardFinding{domain.NoHazardFinding()})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	history, err := store.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first.
	assert.Equal(t, id2, history[0].ID)
	assert.Equal(t, "tokyo", history[0].Location)
	assert.Nil(t, history[0].Accuracy)
	assert.Equal(t, "Severe Flood", history[1].Findings[0].HazardType)
}

func TestHistory_RespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.SavePrediction(ctx, "paris", domain.DefaultObservation(), sampleFindings())
		require.NoError(t, err)
	}

	history, err := store.History(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestSaveFeedback_UpdatesPredictionAccuracy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SavePrediction(ctx, "mumbai", domain.DefaultObservation(), sampleFindings())
	require.NoError(t, err)

	accuracy := 0.9
	err = store.SaveFeedback(ctx, Feedback{
		PredictionID: id,
		Type:         "accuracy",
		Comments:     "flood happened as predicted",
		Accuracy:     &accuracy,
	})
	require.NoError(t, err)

	records, err := store.RecentPredictions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Accuracy)
	assert.Equal(t, 0.9, *records[0].Accuracy)
}

func TestSaveFeedback_WithoutAccuracyLeavesPredictionUntouched(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SavePrediction(ctx, "mumbai", domain.DefaultObservation(), sampleFindings())
	require.NoError(t, err)

	err = store.SaveFeedback(ctx, Feedback{PredictionID: id, Type: "comment", Comments: "looks right"})
	require.NoError(t, err)

	records, err := store.RecentPredictions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Accuracy)
}

func TestSaveFeedback_UnknownPrediction(t *testing.T) {
	store := newTestStore(t)

	accuracy := 0.5
	err := store.SaveFeedback(context.Background(), Feedback{
		PredictionID: 9999,
		Type:         "accuracy",
		Accuracy:     &accuracy,
	})
	assert.ErrorIs(t, err, ErrPredictionNotFound)
}

func TestRecentPredictions_FeedHazardFindingsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SavePrediction(ctx, "delhi", domain.DefaultObservation(), sampleFindings())
	require.NoError(t, err)

	records, err := store.RecentPredictions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].Predictions, 1)
	assert.Equal(t, "Severe Flood", records[0].Predictions[0].HazardType)
	assert.Equal(t, 0.85, records[0].Predictions[0].Probability)
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
