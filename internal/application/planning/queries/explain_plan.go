package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// Explanation is a rendered plan summary
type Explanation struct {
	PlanID      string    `json:"plan_id"`
	Explanation string    `json:"explanation"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ExplainPlanHandler renders a markdown summary of a plan: cost breakdown,
// utilization commentary, per-rake assignments, and recommendations
type ExplainPlanHandler struct {
	plans *GetPlanHandler
	clock shared.Clock
}

// NewExplainPlanHandler creates an explain-plan query handler
func NewExplainPlanHandler(plans *GetPlanHandler, clock shared.Clock) *ExplainPlanHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ExplainPlanHandler{plans: plans, clock: clock}
}

// Handle renders the explanation, or NotFoundError for unknown plan ids
func (h *ExplainPlanHandler) Handle(ctx context.Context, planID string) (*Explanation, error) {
	plan, err := h.plans.Handle(ctx, planID)
	if err != nil {
		return nil, err
	}

	return &Explanation{
		PlanID:      planID,
		Explanation: renderExplanation(plan),
		GeneratedAt: h.clock.Now(),
	}, nil
}

func renderExplanation(plan *PlanView) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "## Plan Summary: %s\n\n", plan.Name)
	fmt.Fprintf(&b,
		"This plan was generated using the %s algorithm and successfully allocated %d out of %d orders across %d rakes.\n\n",
		plan.Algorithm, plan.OrdersFulfilled, plan.TotalOrders, len(plan.Rakes))

	b.WriteString("### Cost Breakdown\n")
	p.Fprintf(&b, "- **Total Cost**: ₹%.2f\n", plan.TotalCost)
	if plan.TotalCost > 0 {
		p.Fprintf(&b, "- **Freight Cost**: ₹%.2f (%.1f%% of total)\n",
			plan.FreightCost, plan.FreightCost/plan.TotalCost*100)
	} else {
		p.Fprintf(&b, "- **Freight Cost**: ₹%.2f\n", plan.FreightCost)
	}
	p.Fprintf(&b, "- **Demurrage Cost**: ₹%.2f\n", plan.DemurrageCost)
	p.Fprintf(&b, "- **Idle Freight Cost**: ₹%.2f\n", plan.IdleCost)

	b.WriteString("\n### Utilization\n")
	fmt.Fprintf(&b, "Average rake utilization is %.1f%%. ", plan.UtilizationPct)
	if plan.UtilizationPct >= planning.UtilizationThresholdPct {
		b.WriteString("This meets the target utilization threshold.\n")
	} else {
		b.WriteString("Consider consolidating orders to improve utilization.\n")
	}

	b.WriteString("\n### Rake Assignments\n")
	for i, rake := range plan.Rakes {
		fmt.Fprintf(&b, "\n**Rake %d: %s**\n", i+1, rake.RakeNumber)
		origin := rake.OriginStockyardName
		if origin == "" {
			origin = "N/A"
		}
		fmt.Fprintf(&b, "- Origin: %s\n", origin)
		fmt.Fprintf(&b, "- Destinations: %s\n", strings.Join(rake.Destinations, ", "))
		fmt.Fprintf(&b, "- Total Weight: %.0f tonnes (%.1f%% utilization)\n",
			rake.TotalWeight, rake.UtilizationPct)
		fmt.Fprintf(&b, "- Orders: %d\n", len(rake.Orders))
	}

	b.WriteString("\n### Recommendations\n")
	if plan.UtilizationPct < planning.UtilizationThresholdPct {
		b.WriteString("- Consider consolidating orders or using smaller rakes to improve cost efficiency.\n")
	}
	if plan.OrdersFulfilled < plan.TotalOrders {
		fmt.Fprintf(&b, "- %d orders remain unfulfilled. Review inventory levels and rake availability.\n",
			plan.TotalOrders-plan.OrdersFulfilled)
	}
	b.WriteString("- Review demurrage costs and optimize loading schedules if high.\n")

	return b.String()
}
