package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/wire"
)

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Inspect technical data sheets",
	Long:  "Show the target quality specification an item's blends are validated against",
}

var specShowCmd = &cobra.Command{
	Use:   "show [item-code]",
	Short: "Show an item's technical data sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemCode := args[0]

		view, err := wire.ComplianceService().GetTargetSpec(cmd.Context(), itemCode)
		if err != nil {
			return fmt.Errorf("failed to get target spec: %w", err)
		}
		if view == nil {
			fmt.Printf("%s: no technical data sheet on file\n", itemCode)
			fmt.Println("  allocations are validated informationally only")
			return nil
		}

		fmt.Printf("\n%s: %s\n", view.ItemCode, view.Name)

		params := make([]string, 0, len(view.Spec))
		for param := range view.Spec {
			params = append(params, param)
		}
		sort.Strings(params)

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  PARAM\tMIN\tMAX")
		for _, param := range params {
			bounds := view.Spec[param]
			min, max := "-", "-"
			if bounds.Min != nil {
				min = fmt.Sprintf("%.2f", *bounds.Min)
			}
			if bounds.Max != nil {
				max = fmt.Sprintf("%.2f", *bounds.Max)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", param, min, max)
		}
		w.Flush()
		fmt.Println()

		return nil
	},
}

// SpecCmd returns the spec command with subcommands
func SpecCmd() *cobra.Command {
	specCmd.AddCommand(specShowCmd)
	return specCmd
}
