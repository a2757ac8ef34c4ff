package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/internal/application/planning/commands"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
	"github.com/railops/rakeplanner/test/helpers"
)

func TestGeneratePlanHandler_EnqueuesQueuedJob(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	jobs := persistence.NewJobRepository(db, clock)
	handler := commands.NewGeneratePlanHandler(jobs, clock)

	job, err := handler.Handle(context.Background(), commands.GeneratePlanCommand{
		ScenarioName: "Weekly dispatch",
		Notes:        "west corridor",
		Config:       json.RawMessage(`{"mode":"hybrid","min_rake_size":2000}`),
	})

	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusQueued, job.Status())
	assert.Equal(t, planning.ModeHybrid, job.Config().Mode)
	assert.Equal(t, 2000.0, job.Config().MinRakeSize)

	stored, err := jobs.FindByID(context.Background(), job.ID())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Weekly dispatch", stored.ScenarioName())
}

func TestGeneratePlanHandler_RejectsBlankScenarioName(t *testing.T) {
	db := helpers.NewTestDB(t)
	jobs := persistence.NewJobRepository(db, nil)
	handler := commands.NewGeneratePlanHandler(jobs, nil)

	_, err := handler.Handle(context.Background(), commands.GeneratePlanCommand{ScenarioName: "   "})

	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "scenario_name", validation.Field)
}

func TestGeneratePlanHandler_RejectsBadConfigWithoutCreatingJob(t *testing.T) {
	db := helpers.NewTestDB(t)
	jobs := persistence.NewJobRepository(db, nil)
	handler := commands.NewGeneratePlanHandler(jobs, nil)

	_, err := handler.Handle(context.Background(), commands.GeneratePlanCommand{
		ScenarioName: "Weekly dispatch",
		Config:       json.RawMessage(`{"mode":"simulated-annealing"}`),
	})

	var config *shared.ConfigError
	require.ErrorAs(t, err, &config)

	next, err := jobs.NextQueued(context.Background())
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestCancelJobHandler_CancelsQueuedJob(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	jobs := persistence.NewJobRepository(db, clock)
	handler := commands.NewCancelJobHandler(jobs)

	job := planning.NewJob("job-1", "Weekly dispatch", "", planning.DefaultConfig(), clock)
	require.NoError(t, jobs.Create(context.Background(), job))

	cancelled, err := handler.Handle(context.Background(), "job-1")

	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusCancelled, cancelled.Status())

	stored, err := jobs.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusCancelled, stored.Status())
}

func TestCancelJobHandler_UnknownJobNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	handler := commands.NewCancelJobHandler(persistence.NewJobRepository(db, nil))

	_, err := handler.Handle(context.Background(), "no-such-job")

	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCancelJobHandler_TerminalJobRejected(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	jobs := persistence.NewJobRepository(db, clock)
	handler := commands.NewCancelJobHandler(jobs)

	job := planning.NewJob("job-1", "Weekly dispatch", "", planning.DefaultConfig(), clock)
	require.NoError(t, job.Start())
	require.NoError(t, job.Complete())
	require.NoError(t, jobs.Create(context.Background(), job))

	_, err := handler.Handle(context.Background(), "job-1")

	var precondition *shared.PreconditionError
	assert.ErrorAs(t, err, &precondition)
}
