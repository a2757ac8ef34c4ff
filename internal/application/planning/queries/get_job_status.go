package queries

import (
	"context"
	"time"

	"github.com/railops/rakeplanner/internal/application/common"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// JobStatusView is the external view of a planning job
type JobStatusView struct {
	JobID        string     `json:"job_id"`
	ScenarioName string     `json:"scenario_name"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	Logs         string     `json:"logs"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	PlanID       *string    `json:"plan_id,omitempty"`
}

// GetJobStatusHandler reads a job's status, progress, and log buffer. For
// completed jobs the produced plan id is included.
type GetJobStatusHandler struct {
	jobs  common.JobRepository
	plans common.PlanRepository
}

// NewGetJobStatusHandler creates a job status query handler
func NewGetJobStatusHandler(jobs common.JobRepository, plans common.PlanRepository) *GetJobStatusHandler {
	return &GetJobStatusHandler{jobs: jobs, plans: plans}
}

// Handle returns the job status view, or NotFoundError for unknown ids
func (h *GetJobStatusHandler) Handle(ctx context.Context, jobID string) (*JobStatusView, error) {
	job, err := h.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, shared.NewNotFoundError("planning job", jobID)
	}

	view := &JobStatusView{
		JobID:        job.ID(),
		ScenarioName: job.ScenarioName(),
		Status:       string(job.Status()),
		Progress:     job.Progress(),
		Logs:         job.Logs(),
		StartedAt:    job.StartedAt(),
		CompletedAt:  job.CompletedAt(),
	}

	if job.Status() == planning.JobStatusCompleted {
		plan, err := h.plans.FindByJobID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			view.PlanID = &plan.ID
		}
	}

	return view, nil
}
