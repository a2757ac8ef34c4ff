package planning

const (
	// UtilizationThresholdPct is the utilization below which a rake is
	// considered underloaded and incurs one day of demurrage
	UtilizationThresholdPct = 75.0

	// DemurrageHours is the penalty window applied to underloaded rakes
	DemurrageHours = 24.0

	// IdleHoursPerOrder is the per-order handling-time proxy
	IdleHoursPerOrder = 2.0
)

// CostModel computes the freight, demurrage, and idle components for a
// candidate rake pack and scalarizes them with the configured weights
type CostModel struct {
	cfg Config
}

// NewCostModel creates a cost model bound to a planner configuration
func NewCostModel(cfg Config) *CostModel {
	return &CostModel{cfg: cfg}
}

// OrderFreight returns the freight cost for a single order hauled over the
// given distance
func (m *CostModel) OrderFreight(distanceKm, quantityTonnes float64) float64 {
	return distanceKm * quantityTonnes * m.cfg.FreightRate
}

// Demurrage returns the demurrage cost for a rake at the given utilization.
// Underloaded rakes pay for a full day; at or above the threshold the cost is zero.
func (m *CostModel) Demurrage(utilizationPct float64) float64 {
	if utilizationPct < UtilizationThresholdPct {
		return m.cfg.DemurrageRate * DemurrageHours
	}
	return 0
}

// Idle returns the handling-idle cost for a rake carrying orderCount orders
func (m *CostModel) Idle(orderCount int) float64 {
	return m.cfg.IdleCost * (float64(orderCount) * IdleHoursPerOrder)
}

// Total scalarizes the three components with the configured weights
func (m *CostModel) Total(freight, demurrage, idle float64) float64 {
	return m.cfg.CostWeights.Freight*freight +
		m.cfg.CostWeights.Demurrage*demurrage +
		m.cfg.CostWeights.Idle*idle
}
