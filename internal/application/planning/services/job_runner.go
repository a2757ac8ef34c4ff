package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/time/rate"

	"github.com/railops/rakeplanner/internal/application/common"
	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// errJobCancelled unwinds execution when a cancellation is observed at a
// checkpoint. It never reaches a caller of Execute.
var errJobCancelled = errors.New("job cancelled")

// JobRunner is the planning worker: it polls the job queue, snapshots the
// planning inputs, runs the dispatcher, and persists the resulting plan.
// Failures of any kind, panics included, land on the job as a failed status
// with the reason in its log.
type JobRunner struct {
	jobs         common.JobRepository
	plans        common.PlanRepository
	orders       common.OrderSource
	stockyards   common.StockyardSource
	rakes        common.RakeSource
	clock        shared.Clock
	limiter      *rate.Limiter
	pollInterval time.Duration
	logger       common.JobLogger
}

// JobRunnerOptions tunes the polling loop
type JobRunnerOptions struct {
	PollInterval time.Duration
	PollRate     rate.Limit
	PollBurst    int
}

// NewJobRunner creates a planning job runner
func NewJobRunner(
	jobs common.JobRepository,
	plans common.PlanRepository,
	orders common.OrderSource,
	stockyards common.StockyardSource,
	rakes common.RakeSource,
	clock shared.Clock,
	logger common.JobLogger,
	opts JobRunnerOptions,
) *JobRunner {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.PollRate <= 0 {
		opts.PollRate = 2
	}
	if opts.PollBurst <= 0 {
		opts.PollBurst = 5
	}
	return &JobRunner{
		jobs:         jobs,
		plans:        plans,
		orders:       orders,
		stockyards:   stockyards,
		rakes:        rakes,
		clock:        clock,
		limiter:      rate.NewLimiter(opts.PollRate, opts.PollBurst),
		pollInterval: opts.PollInterval,
		logger:       logger,
	}
}

// Run polls the queue until the context is cancelled, executing queued jobs
// one at a time in creation order
func (r *JobRunner) Run(ctx context.Context) error {
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return ctx.Err()
		}

		job, err := r.jobs.NextQueued(ctx)
		if err != nil {
			r.logger.Log("ERROR", fmt.Sprintf("failed to poll job queue: %v", err))
			if err := r.idle(ctx); err != nil {
				return err
			}
			continue
		}
		if job == nil {
			if err := r.idle(ctx); err != nil {
				return err
			}
			continue
		}

		r.Execute(ctx, job)
	}
}

func (r *JobRunner) idle(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.pollInterval):
		return nil
	}
}

// Execute runs one planning job to a terminal state. Errors and panics are
// converted into a failed status with the reason appended to the job log; the
// worker itself never dies to a bad job.
func (r *JobRunner) Execute(ctx context.Context, job *planning.Job) {
	defer func() {
		if rec := recover(); rec != nil {
			r.failJob(ctx, job, fmt.Sprintf("panic: %v\n%s", rec, debug.Stack()))
		}
	}()

	r.logger.Log("INFO", fmt.Sprintf("executing planning job %s (%s)", job.ID(), job.ScenarioName()))

	if err := r.execute(ctx, job); err != nil {
		if errors.Is(err, errJobCancelled) {
			r.logger.Log("INFO", fmt.Sprintf("planning job %s cancelled, abandoning", job.ID()))
			return
		}
		r.failJob(ctx, job, err.Error())
	}
}

func (r *JobRunner) execute(ctx context.Context, job *planning.Job) error {
	if err := job.Start(); err != nil {
		return err
	}
	job.AppendLog("Starting planning job")
	if err := r.jobs.Update(ctx, job); err != nil {
		return err
	}

	orders, err := r.orders.ListPending(ctx)
	if err != nil {
		return err
	}
	stockyards, err := r.stockyards.ListAll(ctx)
	if err != nil {
		return err
	}
	rakes, err := r.rakes.ListAvailable(ctx)
	if err != nil {
		return err
	}
	snapshot := &planning.Snapshot{Orders: orders, Stockyards: stockyards, Rakes: rakes}

	job.AppendLog(fmt.Sprintf("Loaded %d orders, %d stockyards, %d rakes",
		len(orders), len(stockyards), len(rakes)))
	if err := job.SetProgress(20); err != nil {
		return err
	}
	if err := r.checkpoint(ctx, job); err != nil {
		return err
	}

	job.AppendLog(fmt.Sprintf("Running %s planner", job.Config().Mode))
	if err := job.SetProgress(40); err != nil {
		return err
	}
	if err := r.checkpoint(ctx, job); err != nil {
		return err
	}

	dispatcher := planning.NewDispatcher(job.Config())
	result, err := dispatcher.Run(ctx, snapshot)
	if err != nil {
		return err
	}

	job.AppendLog(fmt.Sprintf("Planning completed. Generated %d rake assignments", len(result.Rakes)))
	if err := job.SetProgress(80); err != nil {
		return err
	}
	if err := r.checkpoint(ctx, job); err != nil {
		return err
	}

	plan, err := r.plans.SavePlanWithRakes(ctx, job.ID(), job.ScenarioName(), result)
	if err != nil {
		return err
	}

	if err := job.Complete(); err != nil {
		return err
	}
	job.AppendLog(fmt.Sprintf("Job completed successfully. Plan ID: %s", plan.ID))
	return r.jobs.Update(ctx, job)
}

// checkpoint persists the job's progress, first re-reading its stored status:
// a cancel issued since the last checkpoint wins, and the in-memory job is
// abandoned without overwriting the stored record.
func (r *JobRunner) checkpoint(ctx context.Context, job *planning.Job) error {
	stored, err := r.jobs.FindByID(ctx, job.ID())
	if err != nil {
		return err
	}
	if stored != nil && stored.Status() == planning.JobStatusCancelled {
		return errJobCancelled
	}
	return r.jobs.Update(ctx, job)
}

func (r *JobRunner) failJob(ctx context.Context, job *planning.Job, reason string) {
	r.logger.Log("ERROR", fmt.Sprintf("planning job %s failed: %s", job.ID(), reason))
	if err := job.Fail(reason); err != nil {
		// Already terminal, nothing left to record
		return
	}
	if err := r.jobs.Update(ctx, job); err != nil {
		r.logger.Log("ERROR", fmt.Sprintf("failed to persist failure of job %s: %v", job.ID(), err))
	}
}
