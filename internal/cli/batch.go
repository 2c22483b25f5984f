package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/core/fefo"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/wire"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Browse inventory lots",
	Long:  "List an item's available lots in ranked (first-expired-first-out) order",
}

var batchListCmd = &cobra.Command{
	Use:   "list [item-code]",
	Short: "List available lots for an item, ranked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		itemCode := args[0]
		warehouse, _ := cmd.Flags().GetString("warehouse")
		mode, _ := cmd.Flags().GetString("mode")
		includeExpired, _ := cmd.Flags().GetBool("include-expired")

		cfg := wire.Config()
		ranked, err := wire.InventoryService().ListRankedBatches(ctx, primary.ListBatchesRequest{
			ItemCode:       itemCode,
			Warehouse:      warehouse,
			Mode:           fefo.Mode(strings.ToUpper(mode)),
			IncludeExpired: includeExpired,
			NearExpiryDays: cfg.NearExpiryDays,
		})
		if err != nil {
			return fmt.Errorf("failed to list batches: %w", err)
		}

		if len(ranked) == 0 {
			fmt.Println("No available lots found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tBATCH\tWAREHOUSE\tQTY\tEXPIRY\tWARNINGS")
		for _, r := range ranked {
			expiry := "-"
			if r.Batch.ExpiryDate != nil {
				expiry = r.Batch.ExpiryDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
				r.Rank, r.Batch.BatchID, r.Batch.Warehouse, r.Batch.AvailableQty,
				expiry, strings.Join(r.Warnings, "; "))
		}
		w.Flush()

		return nil
	},
}

// BatchCmd returns the batch command with subcommands
func BatchCmd() *cobra.Command {
	batchListCmd.Flags().StringP("warehouse", "w", "", "Restrict to one warehouse")
	batchListCmd.Flags().StringP("mode", "m", "FEFO", "Ordering mode (FEFO, COST_ASC, COST_DESC)")
	batchListCmd.Flags().Bool("include-expired", false, "Include expired lots, ranked last")

	batchCmd.AddCommand(batchListCmd)
	return batchCmd
}
