package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/core/lotcode"
)

var lotCmd = &cobra.Command{
	Use:   "lot",
	Short: "Inspect lot codes",
	Long:  "Parse manufacturing lot codes and show the ranking key the optimizer derives from them",
}

var lotParseCmd = &cobra.Command{
	Use:   "parse [lot-code]",
	Short: "Parse a lot code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]

		key, ok := lotcode.Parse(code)
		if !ok {
			fmt.Printf("%s: no recognizable lot code\n", code)
			fmt.Println("  ranked by explicit dates only (manufacturing, then expiry)")
			return nil
		}

		fmt.Printf("%s:\n", code)
		fmt.Printf("  format:   %s\n", key.Format)
		fmt.Printf("  sort key: %s\n", key.SortKey)
		if key.ApproximateDate != nil {
			fmt.Printf("  approx manufacturing date: %s\n", key.ApproximateDate.Format("2006-01-02"))
		} else {
			fmt.Println("  approx manufacturing date: unknown")
		}
		return nil
	},
}

// LotCmd returns the lot command with subcommands
func LotCmd() *cobra.Command {
	lotCmd.AddCommand(lotParseCmd)
	return lotCmd
}
