package planning

import (
	"sort"

	"github.com/railops/rakeplanner/internal/domain/shared"
)

// SelectSource picks the stockyard an order should load from, or nil when no
// stockyard can serve it.
//
// A pinned source_stockyard_id is authoritative and returned without an
// inventory check; an insufficient pin surfaces later as a skipped order in
// the pack loop. Otherwise candidates with sufficient remaining stock are
// ranked by distance to the destination when the order is geocoded, and by
// remaining stock abundance when it is not.
func SelectSource(order *Order, stockyards []*Stockyard, ledger *Ledger) *Stockyard {
	if order.SourceStockyardID != "" {
		for _, sy := range stockyards {
			if sy.ID == order.SourceStockyardID {
				return sy
			}
		}
		return nil
	}

	candidates := make([]*Stockyard, 0, len(stockyards))
	for _, sy := range stockyards {
		if ledger.Have(sy.Code, order.ProductCode, order.QuantityTonnes) {
			candidates = append(candidates, sy)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	if order.DestinationPoint().HasCoordinates() {
		dest := order.DestinationPoint()
		sort.SliceStable(candidates, func(i, j int) bool {
			return shared.DistanceKm(candidates[i].Point(), dest) <
				shared.DistanceKm(candidates[j].Point(), dest)
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return ledger.Remaining(candidates[i].Code, order.ProductCode) >
				ledger.Remaining(candidates[j].Code, order.ProductCode)
		})
	}

	return candidates[0]
}
