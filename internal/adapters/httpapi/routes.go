package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/application/planning/commands"
	"github.com/railops/rakeplanner/internal/application/planning/queries"
)

// registerRoutes sets up the planning API routes on the Gin router
func registerRoutes(router *gin.Engine, opts StartOpts) {
	api := router.Group("/api")

	api.POST("/plan/generate", handleGeneratePlan(opts.Handlers.GeneratePlan))
	api.GET("/job/:id/status", handleJobStatus(opts.Handlers.JobStatus))
	api.POST("/job/:id/cancel", handleCancelJob(opts.Handlers.CancelJob))
	api.GET("/plan/:id", handleGetPlan(opts.Handlers.GetPlan))
	api.POST("/plan/:id/commit", handleCommitPlan(opts.Handlers.CommitPlan))
	api.POST("/plan/:id/explain", handleExplainPlan(opts.Handlers.ExplainPlan))
	api.GET("/health", handleHealth(opts.DB))
}

type generatePlanRequest struct {
	ScenarioName string          `json:"scenario_name" binding:"required"`
	Notes        string          `json:"notes"`
	Config       json.RawMessage `json:"config"`
}

func handleGeneratePlan(h *commands.GeneratePlanHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		job, err := h.Handle(c.Request.Context(), commands.GeneratePlanCommand{
			ScenarioName: req.ScenarioName,
			Notes:        req.Notes,
			Config:       req.Config,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"job_id":  job.ID(),
			"status":  string(job.Status()),
			"message": "Planning job queued successfully",
		})
	}
}

func handleJobStatus(h *queries.GetJobStatusHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := h.Handle(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func handleCancelJob(h *commands.CancelJobHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := h.Handle(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"job_id":  job.ID(),
			"status":  string(job.Status()),
			"message": "Job cancelled successfully",
		})
	}
}

func handleGetPlan(h *queries.GetPlanHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := h.Handle(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func handleCommitPlan(h *commands.CommitPlanHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.Handle(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Plan committed successfully",
			"plan_id":      result.PlanID,
			"committed_at": result.CommittedAt,
			"anomalies":    result.Anomalies,
		})
	}
}

func handleExplainPlan(h *queries.ExplainPlanHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		explanation, err := h.Handle(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, explanation)
	}
}

func handleHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"database": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": "ok",
		})
	}
}
