package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/core/costing"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/wire"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Resolve prices",
	Long:  "Resolve unit prices through the batch-price, price-list, and item-rate fallback chain",
}

var priceResolveCmd = &cobra.Command{
	Use:   "resolve [item-code]",
	Short: "Resolve the unit price for an item",
	Long: `Resolve the unit price for an item, optionally for a specific lot and
quantity. The resolution source shows which tier of the fallback chain
answered.

Examples:
  batchalloc price resolve GLY-REF-80
  batchalloc price resolve GLY-REF-80 --batch GLY-243112 --qty 500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemCode := args[0]
		batchID, _ := cmd.Flags().GetString("batch")
		qtyStr, _ := cmd.Flags().GetString("qty")

		qty := -1.0
		if qtyStr != "" {
			parsed, err := strconv.ParseFloat(qtyStr, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", qtyStr, err)
			}
			qty = parsed
		}

		quote, err := wire.CostingService().ResolvePrice(cmd.Context(), primary.ResolvePriceRequest{
			ItemCode: itemCode,
			BatchID:  batchID,
			Quantity: qty,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve price: %w", err)
		}

		if quote.Source == costing.SourceNone {
			fmt.Printf("%s: no price found on any tier\n", itemCode)
			return nil
		}

		fmt.Printf("%s: %s %s (source: %s)\n", itemCode, quote.UnitPrice.StringFixed(2), quote.Currency, quote.Source)
		return nil
	},
}

// PriceCmd returns the price command with subcommands
func PriceCmd() *cobra.Command {
	priceResolveCmd.Flags().StringP("batch", "b", "", "Resolve for a specific lot")
	priceResolveCmd.Flags().StringP("qty", "q", "", "Quantity for minimum-quantity price rules")

	priceCmd.AddCommand(priceResolveCmd)
	return priceCmd
}
