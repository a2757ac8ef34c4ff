package planning_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/test/helpers"
)

func TestOptimizingPlanner_SmallInstanceSolved(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &planning.Snapshot{
		Orders: []*planning.Order{
			coalOrder("ORD001", 2500, 1, "Dest 1", due),
			coalOrder("ORD002", 2000, 2, "Dest 1", due),
		},
		Stockyards: []*planning.Stockyard{
			helpers.NewStockyard("SY001", map[string]float64{"COAL": 30000}),
		},
		Rakes: []*planning.Rake{helpers.NewRake("RK001", 3480)},
	}

	result, err := planning.NewOptimizingPlanner(planning.DefaultConfig()).Plan(context.Background(), snapshot)

	require.NoError(t, err)
	assert.Equal(t, "optimal (branch-and-bound)", result.Algorithm)

	// Only one order fits the single rake; the solver picks the heavier one
	require.Len(t, result.Rakes, 1)
	require.Len(t, result.Rakes[0].Orders, 1)
	assert.Equal(t, "ORD001", result.Rakes[0].Orders[0].OrderNumber)
	assert.Equal(t, 2500.0, result.Rakes[0].TotalWeight)
	assert.Equal(t, 1, result.OrdersFulfilled)
	assert.Equal(t, 2, result.TotalOrders)
}

func TestOptimizingPlanner_PacksBothRakes(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &planning.Snapshot{
		Orders: []*planning.Order{
			coalOrder("ORD001", 3000, 1, "Dest 1", due),
			coalOrder("ORD002", 2800, 2, "Dest 1", due),
			coalOrder("ORD003", 1500, 3, "Dest 2", due),
		},
		Stockyards: []*planning.Stockyard{
			helpers.NewStockyard("SY001", map[string]float64{"COAL": 30000}),
		},
		Rakes: []*planning.Rake{
			helpers.NewRake("RK001", 3480),
			helpers.NewRake("RK002", 4500),
		},
	}

	result, err := planning.NewOptimizingPlanner(planning.DefaultConfig()).Plan(context.Background(), snapshot)

	require.NoError(t, err)
	assert.Equal(t, "optimal (branch-and-bound)", result.Algorithm)

	var total float64
	for _, rake := range result.Rakes {
		assert.LessOrEqual(t, rake.TotalWeight, rake.Capacity)
		total += rake.TotalWeight
	}
	// Best packing carries everything: 3000 on one rake, 2800+1500 on the other
	assert.Equal(t, 7300.0, total)
	assert.Equal(t, 3, result.OrdersFulfilled)
}

func TestOptimizingPlanner_ScaleGuardDelegatesToGreedy(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	orders := make([]*planning.Order, 51)
	for i := range orders {
		orders[i] = coalOrder(fmt.Sprintf("ORD%03d", i+1), 1200, 3, "Dest 1", due)
	}
	snapshot := &planning.Snapshot{
		Orders: orders,
		Stockyards: []*planning.Stockyard{
			helpers.NewStockyard("SY001", map[string]float64{"COAL": 100000}),
		},
		Rakes: []*planning.Rake{helpers.NewRake("RK001", 3480)},
	}

	result, err := planning.NewOptimizingPlanner(planning.DefaultConfig()).Plan(context.Background(), snapshot)

	require.NoError(t, err)
	assert.Contains(t, result.Algorithm, "fallback")
}

func TestOptimizingPlanner_DiscardsPacksBelowMinRakeSize(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &planning.Snapshot{
		Orders: []*planning.Order{coalOrder("ORD001", 800, 1, "Dest 1", due)},
		Stockyards: []*planning.Stockyard{
			helpers.NewStockyard("SY001", map[string]float64{"COAL": 30000}),
		},
		Rakes: []*planning.Rake{helpers.NewRake("RK001", 3480)},
	}

	result, err := planning.NewOptimizingPlanner(planning.DefaultConfig()).Plan(context.Background(), snapshot)

	require.NoError(t, err)
	assert.Empty(t, result.Rakes)
	assert.Equal(t, 0, result.OrdersFulfilled)
}
