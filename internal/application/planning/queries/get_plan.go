package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/railops/rakeplanner/internal/application/common"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// PlanRakeView is one rake of a plan with its origin denormalized
type PlanRakeView struct {
	RakeNumber          string                   `json:"rake_number"`
	OriginStockyardCode string                   `json:"origin_stockyard_code,omitempty"`
	OriginStockyardName string                   `json:"origin_stockyard_name,omitempty"`
	Destinations        []string                 `json:"destinations"`
	Orders              []planning.AssignedOrder `json:"orders"`
	TotalWeight         float64                  `json:"total_weight"`
	UtilizationPct      float64                  `json:"utilization_pct"`
	FreightCost         float64                  `json:"freight_cost"`
}

// PlanView is the external view of a stored plan: the cost breakdown plus the
// per-rake assignments
type PlanView struct {
	PlanID          string         `json:"plan_id"`
	JobID           string         `json:"job_id"`
	Name            string         `json:"name"`
	Algorithm       string         `json:"algorithm"`
	TotalCost       float64        `json:"total_cost"`
	FreightCost     float64        `json:"freight_cost"`
	DemurrageCost   float64        `json:"demurrage_cost"`
	IdleCost        float64        `json:"idle_cost"`
	UtilizationPct  float64        `json:"utilization_pct"`
	OrdersFulfilled int            `json:"orders_fulfilled"`
	TotalOrders     int            `json:"total_orders"`
	Committed       bool           `json:"committed"`
	CommittedAt     *time.Time     `json:"committed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Rakes           []PlanRakeView `json:"rakes"`
}

// GetPlanHandler assembles the plan view from the plan row, its rake rows,
// and the origin stockyards they reference
type GetPlanHandler struct {
	plans      common.PlanRepository
	stockyards common.StockyardSource
}

// NewGetPlanHandler creates a plan query handler
func NewGetPlanHandler(plans common.PlanRepository, stockyards common.StockyardSource) *GetPlanHandler {
	return &GetPlanHandler{plans: plans, stockyards: stockyards}
}

// Handle returns the plan view, or NotFoundError for unknown ids
func (h *GetPlanHandler) Handle(ctx context.Context, planID string) (*PlanView, error) {
	plan, err := h.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, shared.NewNotFoundError("plan", planID)
	}

	var stored planning.Result
	if plan.PlanData != "" {
		if err := json.Unmarshal([]byte(plan.PlanData), &stored); err != nil {
			return nil, fmt.Errorf("failed to decode plan data for %s: %w", planID, err)
		}
	}

	rakeRows, err := h.plans.ListRakes(ctx, planID)
	if err != nil {
		return nil, err
	}

	rakes := make([]PlanRakeView, 0, len(rakeRows))
	for _, row := range rakeRows {
		view := PlanRakeView{
			RakeNumber:     row.RakeNumber,
			TotalWeight:    row.TotalWeight,
			UtilizationPct: row.UtilizationPct,
			FreightCost:    row.FreightCost,
			Destinations:   []string{},
			Orders:         []planning.AssignedOrder{},
		}
		if row.Destinations != "" {
			if err := json.Unmarshal([]byte(row.Destinations), &view.Destinations); err != nil {
				return nil, fmt.Errorf("failed to decode destinations for plan rake %s: %w", row.ID, err)
			}
		}
		if row.OrdersAssigned != "" {
			if err := json.Unmarshal([]byte(row.OrdersAssigned), &view.Orders); err != nil {
				return nil, fmt.Errorf("failed to decode assigned orders for plan rake %s: %w", row.ID, err)
			}
		}
		if row.OriginStockyardID != nil {
			origin, err := h.stockyards.FindByID(ctx, *row.OriginStockyardID)
			if err != nil {
				return nil, err
			}
			if origin != nil {
				view.OriginStockyardCode = origin.Code
				view.OriginStockyardName = origin.Name
			}
		}
		rakes = append(rakes, view)
	}

	return &PlanView{
		PlanID:          plan.ID,
		JobID:           plan.JobID,
		Name:            plan.Name,
		Algorithm:       stored.Algorithm,
		TotalCost:       plan.TotalCost,
		FreightCost:     plan.FreightCost,
		DemurrageCost:   plan.DemurrageCost,
		IdleCost:        plan.IdleCost,
		UtilizationPct:  plan.UtilizationPct,
		OrdersFulfilled: plan.OrdersFulfilled,
		TotalOrders:     plan.TotalOrders,
		Committed:       plan.Committed,
		CommittedAt:     plan.CommittedAt,
		CreatedAt:       plan.CreatedAt,
		Rakes:           rakes,
	}, nil
}
