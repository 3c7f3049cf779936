//go:build integration
// +build integration

package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/daily-reading/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRunLifecycle_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	runID, err := db.CreateRun(ctx, 20260214, t.TempDir())
	require.NoError(t, err)
	defer func() { _ = db.DeleteRun(ctx, runID) }()

	step, err := db.StartLevel(ctx, runID, "frege1")
	require.NoError(t, err)
	assert.Equal(t, LevelStatusInProgress, step.Status)
	assert.NotNil(t, step.StartedAt)

	require.NoError(t, db.FinishLevel(ctx, runID, "frege1", 360, 5, nil))
	require.NoError(t, db.CompleteRun(ctx, runID, RunStatusCompleted))

	run, err := db.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, RunStatusCompleted, run.Status)
	assert.NotNil(t, run.CompletedAt)

	steps, err := db.ListLevelSteps(ctx, runID)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, LevelStatusCompleted, steps[0].Status)
	assert.Equal(t, 360, steps[0].Written)
	assert.Equal(t, 5, steps[0].Skipped)
	assert.NotNil(t, steps[0].DurationMs)
}

func TestFinishLevel_Failed_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	runID, err := db.CreateRun(ctx, 1, "out")
	require.NoError(t, err)
	defer func() { _ = db.DeleteRun(ctx, runID) }()

	_, err = db.StartLevel(ctx, runID, "russell2")
	require.NoError(t, err)
	require.NoError(t, db.FinishLevel(ctx, runID, "russell2", 0, 0, strPtr("boom")))

	step, err := db.GetLevelStep(ctx, runID, "russell2")
	require.NoError(t, err)
	assert.Equal(t, LevelStatusFailed, step.Status)
	assert.Equal(t, "boom", *step.ErrorMessage)

	assert.Error(t, db.FinishLevel(ctx, runID, "missing", 0, 0, nil))
}

func TestGetRun_NotFound_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run, err := db.GetRun(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestSaveExercise_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id := "dr-test-" + uuid.New().String()[:8]
	ex := &types.Exercise{ContentID: id, ContentType: types.ContentTypeDailyReading, SubArea: "LITERATURE"}

	require.NoError(t, db.SaveExercise(ctx, uuid.Nil, "saussure1", 3, ex))
	ex.SubArea = "NONFICTION"
	require.NoError(t, db.SaveExercise(ctx, uuid.Nil, "saussure1", 3, ex))

	rec, err := db.GetExercise(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "NONFICTION", rec.SubArea)
	assert.Equal(t, 3, rec.Day)
	assert.Nil(t, rec.RunID)
	assert.Contains(t, string(rec.Content), id)

	missing, err := db.GetExercise(ctx, "dr-none")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReplaceSourceIndex_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	entries := []types.SourceIndexEntry{
		{Level: "frege1", Day: 1, ContentID: strPtr("dr-f1-001"), Type: strPtr("LIFE"), SourceType: types.SourceGenerated, SourcePath: "generated://life", SourceTitle: "frege1 day1"},
		{Level: "frege1", Day: 2, SourceType: types.SourceUnknown},
	}
	require.NoError(t, db.ReplaceSourceIndex(ctx, entries))

	got, err := db.ListSourceIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
