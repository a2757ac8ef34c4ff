package commands

import (
	"context"

	"github.com/railops/rakeplanner/internal/application/common"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// CancelJobHandler cancels a queued or running planning job. Cancellation is
// cooperative: the runner observes the status flip at its next checkpoint.
type CancelJobHandler struct {
	jobs common.JobRepository
}

// NewCancelJobHandler creates a cancel-job command handler
func NewCancelJobHandler(jobs common.JobRepository) *CancelJobHandler {
	return &CancelJobHandler{jobs: jobs}
}

// Handle cancels the job. Unknown ids return NotFoundError; jobs already in a
// terminal state return PreconditionError.
func (h *CancelJobHandler) Handle(ctx context.Context, jobID string) (*planning.Job, error) {
	job, err := h.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, shared.NewNotFoundError("planning job", jobID)
	}

	if err := job.Cancel(); err != nil {
		return nil, err
	}
	if err := h.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}
