package planning

import (
	"context"
	"fmt"
	"time"
)

const (
	// SurrogateCostPerTonne is the fixed per-tonne proxy used by the
	// optimizing objective and its freight extraction
	SurrogateCostPerTonne = 500.0

	// SolverTimeLimit bounds the branch-and-bound search wall clock
	SolverTimeLimit = 30 * time.Second

	// Scale guard: larger instances delegate to the greedy planner
	maxSolverOrders = 50
	maxSolverRakes  = 20
)

// OptimizingPlanner solves the order-to-rake assignment as an integer program
// over boolean variables x[i,j]: each order goes to at most one rake, packed
// tonnage respects rake capacity, and the objective minimizes the surrogate
// cost of unserved tonnage (quantity x K per order left behind). Destination
// and origin constraints are not encoded, so this path may produce
// multi-destination packs regardless of the config flag.
type OptimizingPlanner struct {
	cfg       Config
	cost      *CostModel
	fallback  *GreedyPlanner
	timeLimit time.Duration
}

// NewOptimizingPlanner creates an optimizing planner bound to a configuration
func NewOptimizingPlanner(cfg Config) *OptimizingPlanner {
	return &OptimizingPlanner{
		cfg:       cfg,
		cost:      NewCostModel(cfg),
		fallback:  NewGreedyPlanner(cfg),
		timeLimit: SolverTimeLimit,
	}
}

// Name returns the algorithm tag for optimally planned runs
func (p *OptimizingPlanner) Name() string {
	return "optimal"
}

// Plan runs the bounded assignment search, delegating to the greedy planner
// for oversized instances or when the search yields no solution in time
func (p *OptimizingPlanner) Plan(ctx context.Context, snapshot *Snapshot) (*Result, error) {
	availableRakes := snapshot.AvailableRakes()

	if len(snapshot.Orders) > maxSolverOrders || len(availableRakes) > maxSolverRakes {
		result, err := p.fallback.Plan(ctx, snapshot)
		if err != nil {
			return nil, err
		}
		result.Algorithm = fmt.Sprintf("%s (greedy fallback for large instance)", p.Name())
		return result, nil
	}

	solver := newAssignmentSolver(snapshot.Orders, availableRakes, p.timeLimit)
	assignment, solved := solver.solve(ctx)
	if !solved {
		result, err := p.fallback.Plan(ctx, snapshot)
		if err != nil {
			return nil, err
		}
		result.Algorithm = fmt.Sprintf("%s (no solution, greedy fallback)", p.Name())
		return result, nil
	}

	return p.extract(snapshot, availableRakes, assignment), nil
}

// extract converts a solved assignment into a Result. Packs below the minimum
// rake size are discarded. Origin stockyards are not modeled on this path and
// demurrage/idle are zeroed, a known gap relative to the greedy planner.
func (p *OptimizingPlanner) extract(snapshot *Snapshot, rakes []*Rake, assignment []int) *Result {
	planRakes := []RakePlan{}
	fulfilled := 0
	var totalFreight float64

	for j, rake := range rakes {
		var (
			packed       []AssignedOrder
			totalWeight  float64
			destinations []string
			destSeen     = make(map[string]bool)
		)

		for i, order := range snapshot.Orders {
			if assignment[i] != j {
				continue
			}
			totalWeight += order.QuantityTonnes
			if !destSeen[order.Destination] {
				destSeen[order.Destination] = true
				destinations = append(destinations, order.Destination)
			}
			packed = append(packed, AssignedOrder{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				ProductCode: order.ProductCode,
				Quantity:    order.QuantityTonnes,
				Destination: order.Destination,
				FreightCost: 0,
			})
		}

		if len(packed) == 0 || totalWeight < p.cfg.MinRakeSize {
			continue
		}

		freight := totalWeight * SurrogateCostPerTonne * p.cfg.FreightRate
		totalFreight += freight
		fulfilled += len(packed)

		planRakes = append(planRakes, RakePlan{
			RakeNumber:     rake.RakeNumber,
			Destinations:   destinations,
			Orders:         packed,
			TotalWeight:    totalWeight,
			Capacity:       rake.TotalCapacityTonnes,
			UtilizationPct: (totalWeight / rake.TotalCapacityTonnes) * 100,
			FreightCost:    freight,
			DemurrageCost:  0,
			IdleCost:       0,
			WagonType:      rake.WagonTypeCode,
			NumWagons:      rake.NumWagons,
		})
	}

	return &Result{
		Rakes:           planRakes,
		TotalCost:       totalFreight,
		FreightCost:     totalFreight,
		DemurrageCost:   0,
		IdleCost:        0,
		UtilizationPct:  meanUtilization(planRakes),
		OrdersFulfilled: fulfilled,
		TotalOrders:     len(snapshot.Orders),
		Algorithm:       fmt.Sprintf("%s (branch-and-bound)", p.Name()),
	}
}

// assignmentSolver is a depth-first branch-and-bound over the order x rake
// boolean assignment. The search maximizes assigned tonnage value, which is
// the complement of the surrogate objective: minimizing quantity x K over
// unassigned orders.
type assignmentSolver struct {
	orders     []*Order
	capacities []float64
	suffix     []float64 // suffix[i] = total quantity of orders[i:]
	deadline   time.Time

	current   []int
	best      []int
	bestValue float64
	haveBest  bool
	nodesSeen int
	timedOut  bool
}

func newAssignmentSolver(orders []*Order, rakes []*Rake, timeLimit time.Duration) *assignmentSolver {
	capacities := make([]float64, len(rakes))
	for j, r := range rakes {
		capacities[j] = r.TotalCapacityTonnes
	}

	suffix := make([]float64, len(orders)+1)
	for i := len(orders) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + orders[i].QuantityTonnes
	}

	current := make([]int, len(orders))
	for i := range current {
		current[i] = -1
	}

	return &assignmentSolver{
		orders:     orders,
		capacities: capacities,
		suffix:     suffix,
		deadline:   time.Now().Add(timeLimit),
		current:    current,
		bestValue:  -1,
	}
}

// solve returns the best assignment found (order index -> rake index, -1 for
// unassigned) and whether any complete solution was reached before the
// deadline expired
func (s *assignmentSolver) solve(ctx context.Context) ([]int, bool) {
	s.search(ctx, 0, 0)
	return s.best, s.haveBest
}

func (s *assignmentSolver) search(ctx context.Context, i int, value float64) {
	if s.stopped(ctx) {
		return
	}

	if i == len(s.orders) {
		if value > s.bestValue {
			s.bestValue = value
			s.best = append([]int(nil), s.current...)
			s.haveBest = true
		}
		return
	}

	// Bound: even assigning every remaining order cannot beat the incumbent
	if s.haveBest && value+s.suffix[i] <= s.bestValue {
		return
	}

	qty := s.orders[i].QuantityTonnes
	for j := range s.capacities {
		if s.capacities[j] < qty {
			continue
		}
		s.capacities[j] -= qty
		s.current[i] = j
		s.search(ctx, i+1, value+qty)
		s.current[i] = -1
		s.capacities[j] += qty
	}

	// Leave the order unassigned
	s.search(ctx, i+1, value)
}

// stopped reports whether the search hit its wall-clock limit or the context
// was cancelled. The clock is consulted on the first node and every 1024
// nodes after that; once tripped, the whole search unwinds.
func (s *assignmentSolver) stopped(ctx context.Context) bool {
	if s.timedOut {
		return true
	}
	s.nodesSeen++
	if s.nodesSeen != 1 && s.nodesSeen&1023 != 0 {
		return false
	}
	if time.Now().After(s.deadline) || ctx.Err() != nil {
		s.timedOut = true
	}
	return s.timedOut
}
