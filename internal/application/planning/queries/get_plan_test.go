package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/internal/application/planning/queries"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
	"github.com/railops/rakeplanner/test/helpers"
)

func savedPlanFixture(t *testing.T, plans *persistence.PlanRepositoryGORM, stockyards *persistence.StockyardRepositoryGORM) *persistence.PlanModel {
	t.Helper()

	encoded, err := persistence.EncodeInventory(map[string]float64{"COAL": 30000})
	require.NoError(t, err)
	require.NoError(t, stockyards.Save(context.Background(), &persistence.StockyardModel{
		ID: "sy-1", Code: "SY001", Name: "Bhilai Steel Yard", Location: "Bhilai",
		CapacityTonnes: 100000, CurrentInventory: encoded,
	}))

	result := &planning.Result{
		Rakes: []planning.RakePlan{
			{
				RakeNumber:          "RK001",
				OriginStockyardCode: "SY001",
				OriginStockyardName: "Bhilai Steel Yard",
				Destinations:        []string{"Mumbai"},
				Orders: []planning.AssignedOrder{
					{OrderID: "o-1", OrderNumber: "ORD001", ProductCode: "COAL",
						Quantity: 2500, Destination: "Mumbai", FreightCost: 3125000},
				},
				TotalWeight:    2500,
				Capacity:       3480,
				UtilizationPct: 71.8,
				FreightCost:    3125000,
				DemurrageCost:  12000,
				IdleCost:       200,
				WagonType:      "BOXN",
				NumWagons:      58,
			},
		},
		TotalCost:       3137200,
		FreightCost:     3125000,
		DemurrageCost:   12000,
		IdleCost:        200,
		UtilizationPct:  71.8,
		OrdersFulfilled: 1,
		TotalOrders:     2,
		Algorithm:       "greedy",
	}

	plan, err := plans.SavePlanWithRakes(context.Background(), "job-1", "Weekly dispatch", result)
	require.NoError(t, err)
	return plan
}

func TestGetPlanHandler_AssemblesView(t *testing.T) {
	db := helpers.NewTestDB(t)
	plans := persistence.NewPlanRepository(db)
	stockyards := persistence.NewStockyardRepository(db)
	plan := savedPlanFixture(t, plans, stockyards)

	handler := queries.NewGetPlanHandler(plans, stockyards)
	view, err := handler.Handle(context.Background(), plan.ID)

	require.NoError(t, err)
	assert.Equal(t, plan.ID, view.PlanID)
	assert.Equal(t, "job-1", view.JobID)
	assert.Equal(t, "Weekly dispatch", view.Name)
	assert.Equal(t, "greedy", view.Algorithm)
	assert.Equal(t, 3137200.0, view.TotalCost)
	assert.Equal(t, 1, view.OrdersFulfilled)
	assert.False(t, view.Committed)

	require.Len(t, view.Rakes, 1)
	rake := view.Rakes[0]
	assert.Equal(t, "RK001", rake.RakeNumber)
	assert.Equal(t, "SY001", rake.OriginStockyardCode)
	assert.Equal(t, "Bhilai Steel Yard", rake.OriginStockyardName)
	assert.Equal(t, []string{"Mumbai"}, rake.Destinations)
	require.Len(t, rake.Orders, 1)
	assert.Equal(t, "ORD001", rake.Orders[0].OrderNumber)
}

func TestGetPlanHandler_UnknownPlanNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	handler := queries.NewGetPlanHandler(persistence.NewPlanRepository(db), persistence.NewStockyardRepository(db))

	_, err := handler.Handle(context.Background(), "no-such-plan")

	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetJobStatusHandler_ReportsProgressAndLogs(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	jobs := persistence.NewJobRepository(db, clock)
	plans := persistence.NewPlanRepository(db)

	job := planning.NewJob("job-1", "Weekly dispatch", "", planning.DefaultConfig(), clock)
	require.NoError(t, job.Start())
	require.NoError(t, job.SetProgress(40))
	job.AppendLog("Running greedy planner")
	require.NoError(t, jobs.Create(context.Background(), job))

	handler := queries.NewGetJobStatusHandler(jobs, plans)
	view, err := handler.Handle(context.Background(), "job-1")

	require.NoError(t, err)
	assert.Equal(t, "job-1", view.JobID)
	assert.Equal(t, "running", view.Status)
	assert.Equal(t, 40, view.Progress)
	assert.Contains(t, view.Logs, "Running greedy planner")
	require.NotNil(t, view.StartedAt)
	assert.Nil(t, view.PlanID)
}

func TestGetJobStatusHandler_IncludesPlanIDWhenCompleted(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	jobs := persistence.NewJobRepository(db, clock)
	plans := persistence.NewPlanRepository(db)
	stockyards := persistence.NewStockyardRepository(db)
	plan := savedPlanFixture(t, plans, stockyards)

	job := planning.NewJob("job-1", "Weekly dispatch", "", planning.DefaultConfig(), clock)
	require.NoError(t, job.Start())
	require.NoError(t, job.Complete())
	require.NoError(t, jobs.Create(context.Background(), job))

	handler := queries.NewGetJobStatusHandler(jobs, plans)
	view, err := handler.Handle(context.Background(), "job-1")

	require.NoError(t, err)
	assert.Equal(t, "completed", view.Status)
	require.NotNil(t, view.PlanID)
	assert.Equal(t, plan.ID, *view.PlanID)
}

func TestGetJobStatusHandler_UnknownJobNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	handler := queries.NewGetJobStatusHandler(persistence.NewJobRepository(db, nil), persistence.NewPlanRepository(db))

	_, err := handler.Handle(context.Background(), "no-such-job")

	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
