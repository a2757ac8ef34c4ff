package commands

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/railops/rakeplanner/internal/application/common"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// GeneratePlanCommand requests a new planning job. Config is the raw planner
// configuration as submitted; empty means defaults.
type GeneratePlanCommand struct {
	ScenarioName string
	Notes        string
	Config       json.RawMessage
}

// GeneratePlanHandler validates the request and enqueues a planning job. The
// job is picked up asynchronously by the job runner.
type GeneratePlanHandler struct {
	jobs  common.JobRepository
	clock shared.Clock
}

// NewGeneratePlanHandler creates a generate-plan command handler
func NewGeneratePlanHandler(jobs common.JobRepository, clock shared.Clock) *GeneratePlanHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GeneratePlanHandler{jobs: jobs, clock: clock}
}

// Handle validates the configuration and persists a queued job. A bad config
// is rejected up front; no job row is created for it.
func (h *GeneratePlanHandler) Handle(ctx context.Context, cmd GeneratePlanCommand) (*planning.Job, error) {
	if strings.TrimSpace(cmd.ScenarioName) == "" {
		return nil, shared.NewValidationError("scenario_name", "scenario name is required")
	}

	cfg, err := planning.ParseConfig(cmd.Config)
	if err != nil {
		return nil, err
	}

	job := planning.NewJob(uuid.NewString(), cmd.ScenarioName, cmd.Notes, cfg, h.clock)
	if err := h.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}
