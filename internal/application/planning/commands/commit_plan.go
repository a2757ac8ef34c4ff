package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/railops/rakeplanner/internal/application/common"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// CommitPlanResult reports the outcome of a plan commit. Anomalies list the
// referenced rakes and orders that could not be flipped; they never abort
// the commit.
type CommitPlanResult struct {
	PlanID      string
	CommittedAt time.Time
	Anomalies   []string
}

// CommitPlanHandler executes a plan: marks it committed and moves the
// referenced rakes and orders to assigned in a single transaction.
type CommitPlanHandler struct {
	plans common.PlanRepository
	clock shared.Clock
}

// NewCommitPlanHandler creates a commit-plan command handler
func NewCommitPlanHandler(plans common.PlanRepository, clock shared.Clock) *CommitPlanHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CommitPlanHandler{plans: plans, clock: clock}
}

// Handle commits the plan. A second commit of the same plan fails with a
// precondition error and changes nothing.
func (h *CommitPlanHandler) Handle(ctx context.Context, planID string) (*CommitPlanResult, error) {
	now := h.clock.Now()
	anomalies, err := h.plans.CommitPlan(ctx, planID, now)
	if err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	for _, anomaly := range anomalies {
		logger.Log("WARN", fmt.Sprintf("commit anomaly on plan %s: %s", planID, anomaly))
	}

	return &CommitPlanResult{
		PlanID:      planID,
		CommittedAt: now,
		Anomalies:   anomalies,
	}, nil
}
