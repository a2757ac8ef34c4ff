package planning

import (
	"context"
	"fmt"

	"github.com/railops/rakeplanner/internal/domain/shared"
)

// Dispatcher selects and runs the planning strategy for a configuration.
// Hybrid mode composes the two strategies by scalarized cost comparison.
type Dispatcher struct {
	cfg     Config
	greedy  Strategy
	optimal Strategy
}

// NewDispatcher creates a dispatcher with the standard strategy set
func NewDispatcher(cfg Config) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		greedy:  NewGreedyPlanner(cfg),
		optimal: NewOptimizingPlanner(cfg),
	}
}

// NewDispatcherWithStrategies creates a dispatcher with injected strategies.
// Used by tests to substitute failing or canned planners.
func NewDispatcherWithStrategies(cfg Config, greedy, optimal Strategy) *Dispatcher {
	return &Dispatcher{cfg: cfg, greedy: greedy, optimal: optimal}
}

// Run executes the configured mode against the snapshot
func (d *Dispatcher) Run(ctx context.Context, snapshot *Snapshot) (*Result, error) {
	switch d.cfg.Mode {
	case ModeGreedy:
		return d.greedy.Plan(ctx, snapshot)

	case ModeOptimal:
		return d.optimal.Plan(ctx, snapshot)

	case ModeHybrid:
		return d.runHybrid(ctx, snapshot)

	default:
		return nil, shared.NewConfigError(fmt.Sprintf("unknown planner mode: %s", d.cfg.Mode))
	}
}

// runHybrid runs greedy first, then attempts the optimizer and keeps the
// cheaper result. An optimizer failure degrades to the greedy result rather
// than failing the run.
func (d *Dispatcher) runHybrid(ctx context.Context, snapshot *Snapshot) (*Result, error) {
	greedyResult, err := d.greedy.Plan(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	optimalResult, err := d.optimal.Plan(ctx, snapshot)
	if err != nil {
		greedyResult.Algorithm = "hybrid (greedy only)"
		return greedyResult, nil
	}

	if optimalResult.TotalCost < greedyResult.TotalCost {
		optimalResult.Algorithm = "hybrid (optimal better)"
		return optimalResult, nil
	}

	greedyResult.Algorithm = "hybrid (greedy better)"
	return greedyResult, nil
}
