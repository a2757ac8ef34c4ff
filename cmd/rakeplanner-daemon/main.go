package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/railops/rakeplanner/internal/adapters/httpapi"
	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/internal/application/planning/commands"
	"github.com/railops/rakeplanner/internal/application/planning/queries"
	"github.com/railops/rakeplanner/internal/application/planning/services"
	"github.com/railops/rakeplanner/internal/domain/shared"
	"github.com/railops/rakeplanner/internal/infrastructure/config"
	"github.com/railops/rakeplanner/internal/infrastructure/database"
	"github.com/railops/rakeplanner/internal/infrastructure/pidfile"
)

func main() {
	fmt.Println("Rake Planner Daemon v0.1.0")
	fmt.Println("==========================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Setup database connection
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 2. Initialize repositories
	clock := shared.NewRealClock()
	jobRepo := persistence.NewJobRepository(db, clock)
	planRepo := persistence.NewPlanRepository(db)
	orderRepo := persistence.NewOrderRepository(db)
	stockyardRepo := persistence.NewStockyardRepository(db)
	rakeRepo := persistence.NewRakeRepository(db)

	// 3. Initialize application handlers
	getPlan := queries.NewGetPlanHandler(planRepo, stockyardRepo)
	handlers := httpapi.Handlers{
		GeneratePlan: commands.NewGeneratePlanHandler(jobRepo, clock),
		CancelJob:    commands.NewCancelJobHandler(jobRepo),
		CommitPlan:   commands.NewCommitPlanHandler(planRepo, clock),
		JobStatus:    queries.NewGetJobStatusHandler(jobRepo, planRepo),
		GetPlan:      getPlan,
		ExplainPlan:  queries.NewExplainPlanHandler(getPlan, clock),
	}

	// 4. Initialize the job runner
	runner := services.NewJobRunner(
		jobRepo, planRepo, orderRepo, stockyardRepo, rakeRepo,
		clock, newProcessLogger(cfg.Logging),
		services.JobRunnerOptions{
			PollInterval: cfg.Worker.PollInterval,
			PollRate:     rate.Limit(cfg.Worker.PollRate),
			PollBurst:    cfg.Worker.PollBurst,
		},
	)

	// 5. Run worker and HTTP API until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := runner.Run(ctx)
		if err == context.Canceled {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return httpapi.Start(ctx, httpapi.StartOpts{
			DB:       db,
			Port:     cfg.Server.Port,
			Handlers: handlers,
			Out:      os.Stdout,
		})
	})

	fmt.Println("Daemon started. Press Ctrl+C to stop.")
	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	fmt.Println("Daemon stopped")
	return nil
}

// processLogger writes worker process logs with the stdlib logger
type processLogger struct {
	logger *log.Logger
}

func newProcessLogger(cfg config.LoggingConfig) *processLogger {
	out := os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}
	return &processLogger{logger: log.New(out, "", log.LstdFlags)}
}

func (l *processLogger) Log(level, message string) {
	l.logger.Printf("[%s] %s", level, message)
}
