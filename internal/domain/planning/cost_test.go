package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/railops/rakeplanner/internal/domain/planning"
)

func TestCostModel_OrderFreight(t *testing.T) {
	model := planning.NewCostModel(planning.DefaultConfig())

	// 500 km x 2500 t x 2.5 per tonne-km
	assert.InDelta(t, 3125000, model.OrderFreight(500, 2500), 1e-6)
}

func TestCostModel_DemurrageBelowThreshold(t *testing.T) {
	model := planning.NewCostModel(planning.DefaultConfig())

	// Underloaded rakes pay a full day at the demurrage rate
	assert.InDelta(t, 500*24, model.Demurrage(71.8), 1e-6)
	assert.InDelta(t, 500*24, model.Demurrage(74.999), 1e-6)
}

func TestCostModel_DemurrageAtThreshold(t *testing.T) {
	model := planning.NewCostModel(planning.DefaultConfig())

	assert.Equal(t, 0.0, model.Demurrage(75.0))
	assert.Equal(t, 0.0, model.Demurrage(98.3))
}

func TestCostModel_Idle(t *testing.T) {
	model := planning.NewCostModel(planning.DefaultConfig())

	// idle rate x 2 h per order
	assert.InDelta(t, 100*2*3, model.Idle(3), 1e-6)
	assert.Equal(t, 0.0, model.Idle(0))
}

func TestCostModel_TotalScalarization(t *testing.T) {
	model := planning.NewCostModel(planning.DefaultConfig())

	// Weights 1.0 / 0.5 / 0.3
	total := model.Total(1000, 12000, 600)
	assert.InDelta(t, 1000*1.0+12000*0.5+600*0.3, total, 1e-6)
}
