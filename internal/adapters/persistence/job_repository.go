package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// JobRepositoryGORM implements planning job persistence using GORM
type JobRepositoryGORM struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewJobRepository creates a new GORM-based job repository. The clock is
// handed to rehydrated job entities so tests can pin time.
func NewJobRepository(db *gorm.DB, clock shared.Clock) *JobRepositoryGORM {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &JobRepositoryGORM{db: db, clock: clock}
}

// Create inserts a new job record
func (r *JobRepositoryGORM) Create(ctx context.Context, job *planning.Job) error {
	model, err := jobDomainToModel(job)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert planning job: %w", err)
	}
	return nil
}

// Update replaces the full job row under its primary key
func (r *JobRepositoryGORM) Update(ctx context.Context, job *planning.Job) error {
	model, err := jobDomainToModel(job)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update planning job: %w", err)
	}
	return nil
}

// FindByID retrieves a job by id. Returns nil when not found.
func (r *JobRepositoryGORM) FindByID(ctx context.Context, id string) (*planning.Job, error) {
	var model PlanningJobModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get planning job: %w", result.Error)
	}
	return r.jobModelToDomain(&model)
}

// NextQueued returns the oldest queued job, or nil when the queue is empty
func (r *JobRepositoryGORM) NextQueued(ctx context.Context) (*planning.Job, error) {
	var model PlanningJobModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(planning.JobStatusQueued)).
		Order("created_at ASC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue planning job: %w", result.Error)
	}
	return r.jobModelToDomain(&model)
}

func jobDomainToModel(job *planning.Job) (*PlanningJobModel, error) {
	configJSON, err := json.Marshal(job.Config())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize job config: %w", err)
	}
	return &PlanningJobModel{
		ID:           job.ID(),
		ScenarioName: job.ScenarioName(),
		Notes:        job.Notes(),
		Config:       string(configJSON),
		Status:       string(job.Status()),
		Progress:     job.Progress(),
		Logs:         job.Logs(),
		StartedAt:    job.StartedAt(),
		CompletedAt:  job.CompletedAt(),
		CreatedAt:    job.CreatedAt(),
		UpdatedAt:    job.UpdatedAt(),
	}, nil
}

func (r *JobRepositoryGORM) jobModelToDomain(m *PlanningJobModel) (*planning.Job, error) {
	var cfg planning.Config
	if m.Config != "" {
		if err := json.Unmarshal([]byte(m.Config), &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config for job %s: %w", m.ID, err)
		}
	}
	cfg.ApplyDefaults()

	return planning.RehydrateJob(
		m.ID,
		m.ScenarioName,
		m.Notes,
		cfg,
		planning.JobStatus(m.Status),
		m.Progress,
		m.Logs,
		m.CreatedAt,
		m.UpdatedAt,
		m.StartedAt,
		m.CompletedAt,
		r.clock,
	), nil
}
