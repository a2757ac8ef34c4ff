package planning

import (
	"context"
	"sort"

	"github.com/railops/rakeplanner/internal/domain/shared"
)

// GreedyPlanner packs priority-sorted orders into available rakes one rake at
// a time. Packing is fully deterministic given the input order of orders and
// rakes: two runs over the same snapshot produce identical results.
type GreedyPlanner struct {
	cfg  Config
	cost *CostModel
}

// NewGreedyPlanner creates a greedy planner bound to a configuration
func NewGreedyPlanner(cfg Config) *GreedyPlanner {
	return &GreedyPlanner{cfg: cfg, cost: NewCostModel(cfg)}
}

// Name returns the algorithm tag for greedy plans
func (p *GreedyPlanner) Name() string {
	return "greedy"
}

// Plan executes the greedy packing sweep over the snapshot
func (p *GreedyPlanner) Plan(ctx context.Context, snapshot *Snapshot) (*Result, error) {
	sorted := sortOrders(snapshot.Orders)
	availableRakes := snapshot.AvailableRakes()
	ledger := NewLedger(snapshot.Stockyards)

	var (
		planRakes      []RakePlan
		totalFreight   float64
		totalDemurrage float64
		totalIdle      float64
	)
	assigned := make(map[string]bool)

	for _, rake := range availableRakes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(assigned) >= len(sorted) {
			break
		}

		pack := p.packRake(rake, sorted, assigned, snapshot.Stockyards, ledger)
		if pack == nil || pack.TotalWeight < p.cfg.MinRakeSize {
			continue
		}

		planRakes = append(planRakes, *pack)
		totalFreight += pack.FreightCost
		totalDemurrage += pack.DemurrageCost
		totalIdle += pack.IdleCost

		for _, id := range pack.OrderIDs() {
			assigned[id] = true
		}
	}

	if planRakes == nil {
		planRakes = []RakePlan{}
	}

	return &Result{
		Rakes:           planRakes,
		TotalCost:       p.cost.Total(totalFreight, totalDemurrage, totalIdle),
		FreightCost:     totalFreight,
		DemurrageCost:   totalDemurrage,
		IdleCost:        totalIdle,
		UtilizationPct:  meanUtilization(planRakes),
		OrdersFulfilled: len(assigned),
		TotalOrders:     len(snapshot.Orders),
		Algorithm:       p.Name(),
	}, nil
}

// packRake fills one rake from the sorted order stream. A rake loads at a
// single origin; the first selectable order fixes it. The ledger is mutated
// as orders are reserved, so packing commits stock in pack order.
func (p *GreedyPlanner) packRake(
	rake *Rake,
	orders []*Order,
	assigned map[string]bool,
	stockyards []*Stockyard,
	ledger *Ledger,
) *RakePlan {
	var (
		currentWeight float64
		packed        []AssignedOrder
		destinations  []string
		destSeen      = make(map[string]bool)
		origin        *Stockyard
		freightCost   float64
	)

	for _, order := range orders {
		if assigned[order.ID] {
			continue
		}

		if currentWeight+order.QuantityTonnes > rake.TotalCapacityTonnes {
			continue
		}

		if !p.cfg.AllowMultiDestination && len(destinations) > 0 && !destSeen[order.Destination] {
			continue
		}

		source := SelectSource(order, stockyards, ledger)
		if source == nil {
			continue
		}

		if origin == nil {
			origin = source
		} else if source.Code != origin.Code {
			continue
		}

		if !ledger.Have(origin.Code, order.ProductCode, order.QuantityTonnes) {
			continue
		}
		ledger.Reserve(origin.Code, order.ProductCode, order.QuantityTonnes)

		currentWeight += order.QuantityTonnes
		if !destSeen[order.Destination] {
			destSeen[order.Destination] = true
			destinations = append(destinations, order.Destination)
		}

		distance := originToDestinationKm(origin, order)
		orderFreight := p.cost.OrderFreight(distance, order.QuantityTonnes)
		freightCost += orderFreight

		packed = append(packed, AssignedOrder{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			ProductCode: order.ProductCode,
			Quantity:    order.QuantityTonnes,
			Destination: order.Destination,
			FreightCost: orderFreight,
		})
	}

	if len(packed) == 0 {
		return nil
	}

	utilization := (currentWeight / rake.TotalCapacityTonnes) * 100

	return &RakePlan{
		RakeNumber:          rake.RakeNumber,
		OriginStockyardCode: origin.Code,
		OriginStockyardName: origin.Name,
		Destinations:        destinations,
		Orders:              packed,
		TotalWeight:         currentWeight,
		Capacity:            rake.TotalCapacityTonnes,
		UtilizationPct:      utilization,
		FreightCost:         freightCost,
		DemurrageCost:       p.cost.Demurrage(utilization),
		IdleCost:            p.cost.Idle(len(packed)),
		WagonType:           rake.WagonTypeCode,
		NumWagons:           rake.NumWagons,
	}
}

// sortOrders returns orders sorted by ascending priority (1 first), then by
// ascending due date. The sort is stable so input order breaks remaining ties.
func sortOrders(orders []*Order) []*Order {
	sorted := make([]*Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})
	return sorted
}

func originToDestinationKm(origin *Stockyard, order *Order) float64 {
	return shared.DistanceKm(origin.Point(), order.DestinationPoint())
}
