package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/application/planning/commands"
	"github.com/railops/rakeplanner/internal/application/planning/queries"
)

// Handlers bundles the application handlers the API exposes
type Handlers struct {
	GeneratePlan *commands.GeneratePlanHandler
	CancelJob    *commands.CancelJobHandler
	CommitPlan   *commands.CommitPlanHandler
	JobStatus    *queries.GetJobStatusHandler
	GetPlan      *queries.GetPlanHandler
	ExplainPlan  *queries.ExplainPlanHandler
}

// StartOpts holds configuration for the planning API server
type StartOpts struct {
	DB       *gorm.DB
	Port     int
	Handlers Handlers
	Out      io.Writer
}

// Start launches the planning API server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("httpapi: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8000
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, opts)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Planning API running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpapi: %w", err)
	}
	return nil
}
