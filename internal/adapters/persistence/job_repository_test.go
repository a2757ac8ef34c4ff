package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
	"github.com/railops/rakeplanner/test/helpers"
)

func TestJobRepository_CreateAndFindRoundTrip(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	repo := persistence.NewJobRepository(db, clock)

	cfg := planning.DefaultConfig()
	cfg.Mode = planning.ModeHybrid
	job := planning.NewJob("job-1", "Weekly dispatch", "west corridor", cfg, clock)
	job.AppendLog("queued for planning")

	require.NoError(t, repo.Create(context.Background(), job))

	found, err := repo.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Weekly dispatch", found.ScenarioName())
	assert.Equal(t, "west corridor", found.Notes())
	assert.Equal(t, planning.ModeHybrid, found.Config().Mode)
	assert.Equal(t, planning.JobStatusQueued, found.Status())
	assert.Contains(t, found.Logs(), "queued for planning")
}

func TestJobRepository_FindByIDReturnsNilWhenMissing(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewJobRepository(db, nil)

	found, err := repo.FindByID(context.Background(), "no-such-job")

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestJobRepository_UpdatePersistsTransitions(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	repo := persistence.NewJobRepository(db, clock)

	job := planning.NewJob("job-1", "Weekly dispatch", "", planning.DefaultConfig(), clock)
	require.NoError(t, repo.Create(context.Background(), job))

	require.NoError(t, job.Start())
	require.NoError(t, job.SetProgress(40))
	require.NoError(t, repo.Update(context.Background(), job))

	found, err := repo.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusRunning, found.Status())
	assert.Equal(t, 40, found.Progress())
	require.NotNil(t, found.StartedAt())
}

func TestJobRepository_NextQueuedReturnsOldest(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	repo := persistence.NewJobRepository(db, clock)

	first := planning.NewJob("job-1", "first", "", planning.DefaultConfig(), clock)
	require.NoError(t, repo.Create(context.Background(), first))

	clock.Advance(time.Minute)
	second := planning.NewJob("job-2", "second", "", planning.DefaultConfig(), clock)
	require.NoError(t, repo.Create(context.Background(), second))

	next, err := repo.NextQueued(context.Background())
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "job-1", next.ID())

	// Completed jobs leave the queue
	require.NoError(t, next.Start())
	require.NoError(t, next.Complete())
	require.NoError(t, repo.Update(context.Background(), next))

	next, err = repo.NextQueued(context.Background())
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "job-2", next.ID())
}

func TestJobRepository_NextQueuedReturnsNilWhenEmpty(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewJobRepository(db, nil)

	next, err := repo.NextQueued(context.Background())

	require.NoError(t, err)
	assert.Nil(t, next)
}
