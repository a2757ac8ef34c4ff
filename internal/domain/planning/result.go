package planning

// AssignedOrder is the denormalized record of one order packed into a rake.
// Plans stay meaningful even after the referenced order mutates or disappears.
type AssignedOrder struct {
	OrderID     string  `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	ProductCode string  `json:"product_code"`
	Quantity    float64 `json:"quantity"`
	Destination string  `json:"destination"`
	FreightCost float64 `json:"freight_cost"`
}

// RakePlan is one rake's share of a plan: its origin, destinations, assigned
// orders, and cost components
type RakePlan struct {
	RakeNumber          string          `json:"rake_number"`
	OriginStockyardCode string          `json:"origin_stockyard_code,omitempty"`
	OriginStockyardName string          `json:"origin_stockyard_name,omitempty"`
	Destinations        []string        `json:"destinations"`
	Orders              []AssignedOrder `json:"orders"`
	TotalWeight         float64         `json:"total_weight"`
	Capacity            float64         `json:"capacity"`
	UtilizationPct      float64         `json:"utilization_pct"`
	FreightCost         float64         `json:"freight_cost"`
	DemurrageCost       float64         `json:"demurrage_cost"`
	IdleCost            float64         `json:"idle_cost"`
	WagonType           string          `json:"wagon_type"`
	NumWagons           int             `json:"num_wagons"`
}

// OrderIDs returns the ids of all orders assigned to this rake
func (rp *RakePlan) OrderIDs() []string {
	ids := make([]string, len(rp.Orders))
	for i, o := range rp.Orders {
		ids[i] = o.OrderID
	}
	return ids
}

// Result is the outcome of one planning run
type Result struct {
	Rakes           []RakePlan `json:"rakes"`
	TotalCost       float64    `json:"total_cost"`
	FreightCost     float64    `json:"freight_cost"`
	DemurrageCost   float64    `json:"demurrage_cost"`
	IdleCost        float64    `json:"idle_cost"`
	UtilizationPct  float64    `json:"utilization_pct"`
	OrdersFulfilled int        `json:"orders_fulfilled"`
	TotalOrders     int        `json:"total_orders"`
	Algorithm       string     `json:"algorithm"`
}

// meanUtilization averages per-rake utilization across the plan
func meanUtilization(rakes []RakePlan) float64 {
	if len(rakes) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rakes {
		sum += r.UtilizationPct
	}
	return sum / float64(len(rakes))
}
