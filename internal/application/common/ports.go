package common

import (
	"context"
	"time"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/internal/domain/planning"
)

// JobRepository defines planning job persistence operations
type JobRepository interface {
	Create(ctx context.Context, job *planning.Job) error
	Update(ctx context.Context, job *planning.Job) error
	FindByID(ctx context.Context, id string) (*planning.Job, error)
	NextQueued(ctx context.Context) (*planning.Job, error)
}

// PlanRepository defines plan persistence and commit operations
type PlanRepository interface {
	SavePlanWithRakes(ctx context.Context, jobID, name string, result *planning.Result) (*persistence.PlanModel, error)
	FindByID(ctx context.Context, id string) (*persistence.PlanModel, error)
	FindByJobID(ctx context.Context, jobID string) (*persistence.PlanModel, error)
	ListRakes(ctx context.Context, planID string) ([]*persistence.PlanRakeModel, error)
	CommitPlan(ctx context.Context, planID string, now time.Time) ([]string, error)
}

// OrderSource supplies pending orders for a planning snapshot
type OrderSource interface {
	ListPending(ctx context.Context) ([]*planning.Order, error)
}

// StockyardSource supplies stockyards for a planning snapshot
type StockyardSource interface {
	ListAll(ctx context.Context) ([]*planning.Stockyard, error)
	FindByID(ctx context.Context, id string) (*persistence.StockyardModel, error)
}

// RakeSource supplies available rakes for a planning snapshot
type RakeSource interface {
	ListAvailable(ctx context.Context) ([]*planning.Rake, error)
}
