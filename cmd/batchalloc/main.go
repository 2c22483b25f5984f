package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/cli"
	"github.com/example/batchalloc/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "batchalloc",
		Short:   "batchalloc - formulation batch-allocation engine",
		Version: version.String(),
		Long: `batchalloc plans raw-material allocations for formulation batches.
It ranks inventory lots first-expired-first-out, validates blended quality
against technical data sheets, and prices allocations through the standard
rate fallback chain.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.LotCmd())
	rootCmd.AddCommand(cli.BatchCmd())
	rootCmd.AddCommand(cli.AllocateCmd())
	rootCmd.AddCommand(cli.SpecCmd())
	rootCmd.AddCommand(cli.PriceCmd())
	rootCmd.AddCommand(cli.WorkflowCmd())

	// Ctrl-C cancels at the next phase boundary instead of killing mid-phase
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
