package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/db"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		Long: `Populate the database with development fixtures: items, lots with
parseable lot codes, quality measurements, prices on every tier, and a
technical data sheet.

Run against a fresh database; seeding twice fails on primary keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Fixtures loaded")
			fmt.Println()
			fmt.Println("Try:")
			fmt.Println("  batchalloc batch list GLY-REF-80")
			fmt.Println("  batchalloc workflow run GLY-REF-80 1000")

			return nil
		},
	}
}
