package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railops/rakeplanner/internal/application/planning/commands"
	"github.com/railops/rakeplanner/internal/application/planning/queries"
)

// NewPlanCommand creates the plan command group
func NewPlanCommand() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage planning jobs and plans",
	}

	planCmd.AddCommand(newPlanGenerateCommand())
	planCmd.AddCommand(newPlanStatusCommand())
	planCmd.AddCommand(newPlanCancelCommand())
	planCmd.AddCommand(newPlanShowCommand())
	planCmd.AddCommand(newPlanCommitCommand())
	planCmd.AddCommand(newPlanExplainCommand())

	return planCmd
}

func newPlanGenerateCommand() *cobra.Command {
	var (
		scenario  string
		notes     string
		mode      string
		rawConfig string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enqueue a planning job",
		Long: `Enqueue a planning job for the daemon to execute.

The planner configuration comes from --planner-config (raw JSON) or from
--mode; omitted fields use the planner defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			defer svc.close()

			cfg := json.RawMessage(rawConfig)
			if rawConfig == "" {
				cfg, err = json.Marshal(map[string]string{"mode": mode})
				if err != nil {
					return err
				}
			}

			handler := commands.NewGeneratePlanHandler(svc.jobs, nil)
			job, err := handler.Handle(cmd.Context(), commands.GeneratePlanCommand{
				ScenarioName: scenario,
				Notes:        notes,
				Config:       cfg,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Planning job queued: %s\n", job.ID())
			return nil
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "Scenario name (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes stored on the job")
	cmd.Flags().StringVar(&mode, "mode", "greedy", "Planning mode: greedy, optimal, or hybrid")
	cmd.Flags().StringVar(&rawConfig, "planner-config", "", "Raw planner configuration JSON")
	cmd.MarkFlagRequired("scenario")

	return cmd
}

func newPlanStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show status, progress, and logs for a planning job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			defer svc.close()

			handler := queries.NewGetJobStatusHandler(svc.jobs, svc.plans)
			view, err := handler.Handle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Job:      %s (%s)\n", view.JobID, view.ScenarioName)
			fmt.Printf("Status:   %s\n", view.Status)
			fmt.Printf("Progress: %d%%\n", view.Progress)
			if view.PlanID != nil {
				fmt.Printf("Plan:     %s\n", *view.PlanID)
			}
			if view.Logs != "" {
				fmt.Printf("\nLogs:\n%s", view.Logs)
			}
			return nil
		},
	}
}

func newPlanCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel a queued or running planning job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			defer svc.close()

			handler := commands.NewCancelJobHandler(svc.jobs)
			job, err := handler.Handle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Job %s cancelled\n", job.ID())
			return nil
		},
	}
}

func newPlanShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show a plan with its cost breakdown and rake assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			defer svc.close()

			handler := queries.NewGetPlanHandler(svc.plans, svc.stockyards)
			view, err := handler.Handle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(view)
		},
	}
}

func newPlanCommitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <plan-id>",
		Short: "Commit a plan, assigning its rakes and orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			defer svc.close()

			handler := commands.NewCommitPlanHandler(svc.plans, nil)
			result, err := handler.Handle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Plan %s committed at %s\n", result.PlanID, result.CommittedAt.Format("2006-01-02 15:04:05"))
			for _, anomaly := range result.Anomalies {
				fmt.Printf("  warning: %s\n", anomaly)
			}
			return nil
		},
	}
}

func newPlanExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <plan-id>",
		Short: "Render a markdown summary of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			defer svc.close()

			planHandler := queries.NewGetPlanHandler(svc.plans, svc.stockyards)
			handler := queries.NewExplainPlanHandler(planHandler, nil)
			explanation, err := handler.Handle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(explanation.Explanation)
			return nil
		},
	}
}
