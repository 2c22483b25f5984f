package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/core/fefo"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/wire"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate [item-code] [quantity]",
	Short: "Plan an allocation",
	Long: `Plan an allocation for an item across its available lots.

The plan walks the ranked lot list greedily and reports full, partial, or
no-stock coverage. Nothing is reserved; planning is read-only.

Examples:
  batchalloc allocate GLY-REF-80 1000
  batchalloc allocate GLY-REF-80 1000 --warehouse WH-MAIN --mode COST_ASC`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		itemCode := args[0]
		qty, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}
		warehouse, _ := cmd.Flags().GetString("warehouse")
		mode, _ := cmd.Flags().GetString("mode")
		includeExpired, _ := cmd.Flags().GetBool("include-expired")

		cfg := wire.Config()
		resp, err := wire.AllocationService().Allocate(ctx, primary.AllocateRequest{
			ItemCode:       itemCode,
			RequiredQty:    qty,
			Warehouse:      warehouse,
			Mode:           fefo.Mode(strings.ToUpper(mode)),
			IncludeExpired: includeExpired,
			NearExpiryDays: cfg.NearExpiryDays,
		})
		if err != nil {
			return fmt.Errorf("failed to plan allocation: %w", err)
		}

		result := resp.Result
		fmt.Printf("\nAllocation (%s): %.2f of %.2f\n", result.Status, result.TotalAllocated, result.RequiredQty)
		if result.Shortfall > 0 {
			fmt.Printf("Shortfall: %.2f\n", result.Shortfall)
		}

		if len(result.Lines) > 0 {
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tBATCH\tQTY\tWARNINGS")
			for _, line := range result.Lines {
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n",
					line.FEFORank, line.BatchID, line.AllocatedQty, strings.Join(line.Warnings, "; "))
			}
			w.Flush()
		}
		fmt.Println()

		return nil
	},
}

// AllocateCmd returns the allocate command
func AllocateCmd() *cobra.Command {
	allocateCmd.Flags().StringP("warehouse", "w", "", "Restrict to one warehouse")
	allocateCmd.Flags().StringP("mode", "m", "FEFO", "Ordering mode (FEFO, COST_ASC, COST_DESC)")
	allocateCmd.Flags().Bool("include-expired", false, "Include expired lots, ranked last")
	return allocateCmd
}
