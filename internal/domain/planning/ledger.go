package planning

// Ledger tracks remaining tonnage per stockyard and product for one planning
// run. It is initialized from the snapshot, mutated as packs reserve stock,
// and discarded with the run. Never shared across concurrent runs.
type Ledger struct {
	remaining map[string]map[string]float64
}

// NewLedger builds a ledger from the snapshot's stockyard inventories
func NewLedger(stockyards []*Stockyard) *Ledger {
	remaining := make(map[string]map[string]float64, len(stockyards))
	for _, sy := range stockyards {
		stock := make(map[string]float64, len(sy.Inventory))
		for product, tonnes := range sy.Inventory {
			stock[product] = tonnes
		}
		remaining[sy.Code] = stock
	}
	return &Ledger{remaining: remaining}
}

// Have reports whether the stockyard holds at least qty tonnes of the product
func (l *Ledger) Have(stockyardCode, productCode string, qty float64) bool {
	stock, ok := l.remaining[stockyardCode]
	if !ok {
		return false
	}
	return stock[productCode] >= qty
}

// Reserve decrements remaining tonnage. Callers must check Have first; a
// reservation below zero is clamped rather than allowed to go negative.
func (l *Ledger) Reserve(stockyardCode, productCode string, qty float64) {
	stock, ok := l.remaining[stockyardCode]
	if !ok {
		return
	}
	stock[productCode] -= qty
	if stock[productCode] < 0 {
		stock[productCode] = 0
	}
}

// Remaining returns the tonnage still on hand for a stockyard and product
func (l *Ledger) Remaining(stockyardCode, productCode string) float64 {
	stock, ok := l.remaining[stockyardCode]
	if !ok {
		return 0
	}
	return stock[productCode]
}
