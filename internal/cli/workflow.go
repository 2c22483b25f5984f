package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
	"github.com/example/batchalloc/internal/wire"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Run and inspect allocation workflows",
	Long:  "Drive the full batch-selection, compliance, costing, optimization, and report pipeline",
}

var workflowRunCmd = &cobra.Command{
	Use:   "run [item-code] [quantity]",
	Short: "Run the full allocation workflow",
	Long: `Run all five phases for an item and print the phase-by-phase report.

A failed phase halts the pipeline; the report states which phase failed and
why. Ctrl-C stops cleanly at the next phase boundary.

Examples:
  batchalloc workflow run GLY-REF-80 1000
  batchalloc workflow run GLY-REF-80 1000 --warehouse WH-MAIN`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		itemCode := args[0]
		qty, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}
		warehouse, _ := cmd.Flags().GetString("warehouse")
		includeExpired, _ := cmd.Flags().GetBool("include-expired")

		state, err := wire.WorkflowService().Run(ctx, primary.RunWorkflowRequest{
			ItemCode:       itemCode,
			RequiredQty:    qty,
			Warehouse:      warehouse,
			IncludeExpired: includeExpired,
		})
		if err != nil {
			return fmt.Errorf("failed to run workflow: %w", err)
		}

		wire.ReportAdapter().RenderState(state)
		return nil
	},
}

var workflowShowCmd = &cobra.Command{
	Use:   "show [workflow-id]",
	Short: "Show a persisted workflow report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := wire.WorkflowService().GetReport(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get report: %w", err)
		}

		wire.ReportAdapter().RenderRecord(record)
		return nil
	},
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted workflow reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemCode, _ := cmd.Flags().GetString("item")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		records, err := wire.WorkflowService().ListReports(cmd.Context(), secondary.ReportFilters{
			ItemCode: itemCode,
			Status:   status,
			Limit:    limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}

		wire.ReportAdapter().RenderRecordList(records)
		return nil
	},
}

// WorkflowCmd returns the workflow command with subcommands
func WorkflowCmd() *cobra.Command {
	workflowRunCmd.Flags().StringP("warehouse", "w", "", "Restrict to one warehouse")
	workflowRunCmd.Flags().Bool("include-expired", false, "Include expired lots, ranked last")
	workflowListCmd.Flags().StringP("item", "i", "", "Filter by item code")
	workflowListCmd.Flags().StringP("status", "s", "", "Filter by status (COMPLETED, FAILED)")
	workflowListCmd.Flags().IntP("limit", "n", 0, "Limit the number of reports")

	workflowCmd.AddCommand(workflowRunCmd)
	workflowCmd.AddCommand(workflowShowCmd)
	workflowCmd.AddCommand(workflowListCmd)
	return workflowCmd
}
