package planning

import (
	"fmt"
	"time"

	"github.com/railops/rakeplanner/internal/domain/shared"
)

// JobStatus represents the lifecycle state of a planning job
type JobStatus string

const (
	// JobStatusQueued indicates the job is waiting for a worker
	JobStatusQueued JobStatus = "queued"

	// JobStatusRunning indicates a worker is executing the job
	JobStatusRunning JobStatus = "running"

	// JobStatusCompleted indicates the job produced a plan
	JobStatusCompleted JobStatus = "completed"

	// JobStatusFailed indicates the planner raised an error
	JobStatusFailed JobStatus = "failed"

	// JobStatusCancelled indicates the job was cancelled by request
	JobStatusCancelled JobStatus = "cancelled"
)

// IsTerminal reports whether the status is absorbing
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// Job is a planning job: a state machine over queued, running, and the three
// terminal states, with monotone progress and an append-only log buffer.
//
// Invariants:
//   - terminal statuses are absorbing
//   - progress never decreases and reaches 100 exactly at termination
//   - each log line carries the timestamp of its append
type Job struct {
	id           string
	scenarioName string
	notes        string
	config       Config
	status       JobStatus
	progress     int
	logs         string
	createdAt    time.Time
	updatedAt    time.Time
	startedAt    *time.Time
	completedAt  *time.Time
	clock        shared.Clock
}

// NewJob creates a queued job. If clock is nil, the system clock is used.
func NewJob(id, scenarioName, notes string, cfg Config, clock shared.Clock) *Job {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	now := clock.Now()
	return &Job{
		id:           id,
		scenarioName: scenarioName,
		notes:        notes,
		config:       cfg,
		status:       JobStatusQueued,
		createdAt:    now,
		updatedAt:    now,
		clock:        clock,
	}
}

// RehydrateJob reconstructs a job from persisted state. Only repositories
// should call this.
func RehydrateJob(
	id, scenarioName, notes string,
	cfg Config,
	status JobStatus,
	progress int,
	logs string,
	createdAt, updatedAt time.Time,
	startedAt, completedAt *time.Time,
	clock shared.Clock,
) *Job {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Job{
		id:           id,
		scenarioName: scenarioName,
		notes:        notes,
		config:       cfg,
		status:       status,
		progress:     progress,
		logs:         logs,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		startedAt:    startedAt,
		completedAt:  completedAt,
		clock:        clock,
	}
}

// Getters

func (j *Job) ID() string              { return j.id }
func (j *Job) ScenarioName() string    { return j.scenarioName }
func (j *Job) Notes() string           { return j.notes }
func (j *Job) Config() Config          { return j.config }
func (j *Job) Status() JobStatus       { return j.status }
func (j *Job) Progress() int           { return j.progress }
func (j *Job) Logs() string            { return j.logs }
func (j *Job) CreatedAt() time.Time    { return j.createdAt }
func (j *Job) UpdatedAt() time.Time    { return j.updatedAt }
func (j *Job) StartedAt() *time.Time   { return j.startedAt }
func (j *Job) CompletedAt() *time.Time { return j.completedAt }

// Start transitions the job from queued to running
func (j *Job) Start() error {
	if j.status != JobStatusQueued {
		return shared.NewPreconditionError(fmt.Sprintf("cannot start job in %s state", j.status))
	}
	now := j.clock.Now()
	j.status = JobStatusRunning
	j.startedAt = &now
	j.updatedAt = now
	return nil
}

// Complete transitions the job from running to completed
func (j *Job) Complete() error {
	if j.status != JobStatusRunning {
		return shared.NewPreconditionError(fmt.Sprintf("cannot complete job in %s state", j.status))
	}
	now := j.clock.Now()
	j.status = JobStatusCompleted
	j.progress = 100
	j.completedAt = &now
	j.updatedAt = now
	return nil
}

// Fail transitions the job to failed, recording the failure in the log.
// Completed and cancelled jobs cannot fail.
func (j *Job) Fail(reason string) error {
	if j.status.IsTerminal() {
		return shared.NewPreconditionError(fmt.Sprintf("cannot fail job in %s state", j.status))
	}
	j.AppendLog(fmt.Sprintf("ERROR: %s", reason))
	now := j.clock.Now()
	j.status = JobStatusFailed
	j.progress = 100
	j.completedAt = &now
	j.updatedAt = now
	return nil
}

// Cancel transitions a queued or running job to cancelled. Cancellation is
// cooperative: a running planner is not interrupted mid-call and observes the
// flip at its next persistence checkpoint.
func (j *Job) Cancel() error {
	if j.status.IsTerminal() {
		return shared.NewPreconditionError(fmt.Sprintf("cannot cancel job in %s state", j.status))
	}
	j.AppendLog("Job cancelled by user")
	now := j.clock.Now()
	j.status = JobStatusCancelled
	j.progress = 100
	j.completedAt = &now
	j.updatedAt = now
	return nil
}

// SetProgress advances the progress indicator. Progress is monotone; moving
// it backwards is a programming error and is rejected.
func (j *Job) SetProgress(progress int) error {
	if progress < j.progress {
		return shared.NewPreconditionError(fmt.Sprintf(
			"progress cannot decrease: %d -> %d", j.progress, progress))
	}
	if progress > 100 {
		progress = 100
	}
	j.progress = progress
	j.updatedAt = j.clock.Now()
	return nil
}

// AppendLog appends a timestamped line to the job's log buffer
func (j *Job) AppendLog(message string) {
	now := j.clock.Now()
	j.logs += fmt.Sprintf("[%s] %s\n", now.Format(time.RFC3339), message)
	j.updatedAt = now
}
