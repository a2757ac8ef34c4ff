package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/internal/application/common"
	"github.com/railops/rakeplanner/internal/application/planning/services"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
	"github.com/railops/rakeplanner/test/helpers"
)

type testLogger struct{}

func (testLogger) Log(level, message string) {}

type runnerEnv struct {
	db         *gorm.DB
	clock      *shared.MockClock
	jobs       *persistence.JobRepositoryGORM
	plans      *persistence.PlanRepositoryGORM
	orders     *persistence.OrderRepositoryGORM
	stockyards *persistence.StockyardRepositoryGORM
	rakes      *persistence.RakeRepositoryGORM
}

func newRunnerEnv(t *testing.T) *runnerEnv {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	return &runnerEnv{
		db:         db,
		clock:      clock,
		jobs:       persistence.NewJobRepository(db, clock),
		plans:      persistence.NewPlanRepository(db),
		orders:     persistence.NewOrderRepository(db),
		stockyards: persistence.NewStockyardRepository(db),
		rakes:      persistence.NewRakeRepository(db),
	}
}

func (e *runnerEnv) runner(t *testing.T, orders common.OrderSource) *services.JobRunner {
	t.Helper()
	if orders == nil {
		orders = e.orders
	}
	return services.NewJobRunner(
		e.jobs, e.plans, orders, e.stockyards, e.rakes,
		e.clock, testLogger{}, services.JobRunnerOptions{PollInterval: time.Millisecond},
	)
}

func (e *runnerEnv) seedScenario(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	encoded, err := persistence.EncodeInventory(map[string]float64{"COAL": 30000})
	require.NoError(t, err)
	require.NoError(t, e.stockyards.Save(ctx, &persistence.StockyardModel{
		ID: "sy-1", Code: "SY001", Name: "SY001 Yard", Location: "SY001",
		CapacityTonnes: 100000, CurrentInventory: encoded,
	}))

	require.NoError(t, e.orders.Save(ctx, &persistence.OrderModel{
		ID: "o-1", OrderNumber: "ORD001", ProductCode: "COAL", QuantityTonnes: 2500,
		Destination: "Dest 1", Priority: 1,
		DueDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), SLAHours: 72, Status: "pending",
	}))

	require.NoError(t, e.rakes.Save(ctx, &persistence.RakeModel{
		ID: "r-1", RakeNumber: "RK001", WagonTypeCode: "BOXN", NumWagons: 58,
		TotalCapacityTonnes: 3480, Status: "available",
	}))
}

func (e *runnerEnv) queueJob(t *testing.T, id string) *planning.Job {
	t.Helper()
	job := planning.NewJob(id, "Weekly dispatch", "", planning.DefaultConfig(), e.clock)
	require.NoError(t, e.jobs.Create(context.Background(), job))
	return job
}

func TestJobRunner_ExecuteCompletesJobAndPersistsPlan(t *testing.T) {
	env := newRunnerEnv(t)
	env.seedScenario(t)
	job := env.queueJob(t, "job-1")

	env.runner(t, nil).Execute(context.Background(), job)

	stored, err := env.jobs.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusCompleted, stored.Status())
	assert.Equal(t, 100, stored.Progress())

	logs := stored.Logs()
	assert.Contains(t, logs, "Starting planning job")
	assert.Contains(t, logs, "Loaded 1 orders, 1 stockyards, 1 rakes")
	assert.Contains(t, logs, "Running greedy planner")
	assert.Contains(t, logs, "Planning completed. Generated 1 rake assignments")
	assert.Contains(t, logs, "Job completed successfully. Plan ID:")

	plan, err := env.plans.FindByJobID(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, 1, plan.OrdersFulfilled)

	rakes, err := env.plans.ListRakes(context.Background(), plan.ID)
	require.NoError(t, err)
	require.Len(t, rakes, 1)
	assert.Equal(t, "RK001", rakes[0].RakeNumber)
}

// erroringOrderSource fails the snapshot load
type erroringOrderSource struct{}

func (erroringOrderSource) ListPending(ctx context.Context) ([]*planning.Order, error) {
	return nil, errors.New("orders table unavailable")
}

func TestJobRunner_ExecuteConvertsErrorsIntoFailedStatus(t *testing.T) {
	env := newRunnerEnv(t)
	job := env.queueJob(t, "job-1")

	env.runner(t, erroringOrderSource{}).Execute(context.Background(), job)

	stored, err := env.jobs.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusFailed, stored.Status())
	assert.Equal(t, 100, stored.Progress())
	assert.Contains(t, stored.Logs(), "ERROR: orders table unavailable")
}

// panickingOrderSource simulates a programming error inside the run
type panickingOrderSource struct{}

func (panickingOrderSource) ListPending(ctx context.Context) ([]*planning.Order, error) {
	panic("nil snapshot")
}

func TestJobRunner_ExecuteRecoversFromPanic(t *testing.T) {
	env := newRunnerEnv(t)
	job := env.queueJob(t, "job-1")

	env.runner(t, panickingOrderSource{}).Execute(context.Background(), job)

	stored, err := env.jobs.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusFailed, stored.Status())
	assert.Contains(t, stored.Logs(), "panic: nil snapshot")
}

// cancellingOrderSource cancels the stored job mid-run, after the runner has
// already started it
type cancellingOrderSource struct {
	env   *runnerEnv
	jobID string
	inner common.OrderSource
}

func (s *cancellingOrderSource) ListPending(ctx context.Context) ([]*planning.Order, error) {
	stored, err := s.env.jobs.FindByID(ctx, s.jobID)
	if err != nil {
		return nil, err
	}
	if err := stored.Cancel(); err != nil {
		return nil, err
	}
	if err := s.env.jobs.Update(ctx, stored); err != nil {
		return nil, err
	}
	return s.inner.ListPending(ctx)
}

func TestJobRunner_ObservesCancellationAtCheckpoint(t *testing.T) {
	env := newRunnerEnv(t)
	env.seedScenario(t)
	job := env.queueJob(t, "job-1")

	source := &cancellingOrderSource{env: env, jobID: "job-1", inner: env.orders}
	env.runner(t, source).Execute(context.Background(), job)

	stored, err := env.jobs.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, planning.JobStatusCancelled, stored.Status())
	assert.Contains(t, stored.Logs(), "Job cancelled by user")

	// The abandoned run produced no plan
	plan, err := env.plans.FindByJobID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestJobRunner_RunStopsOnContextCancel(t *testing.T) {
	env := newRunnerEnv(t)
	runner := env.runner(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after context cancellation")
	}
}

func TestJobRunner_RunExecutesQueuedJob(t *testing.T) {
	env := newRunnerEnv(t)
	env.seedScenario(t)
	env.queueJob(t, "job-1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- env.runner(t, nil).Run(ctx)
	}()

	require.Eventually(t, func() bool {
		stored, err := env.jobs.FindByID(context.Background(), "job-1")
		return err == nil && stored != nil && stored.Status() == planning.JobStatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
