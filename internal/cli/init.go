package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/batchalloc/internal/config"
	"github.com/example/batchalloc/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the batchalloc database",
		Long:  `Initialize the batchalloc database at ~/.batchalloc/batchalloc.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing batchalloc database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			// Write a default config if none exists yet
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			if _, err := config.Load(home); err != nil {
				if err := config.Save(home, config.Default()); err != nil {
					return fmt.Errorf("failed to write default config: %w", err)
				}
				fmt.Println("✓ Default config written to ~/.batchalloc/config.json")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  batchalloc seed")
			fmt.Println("  batchalloc workflow run GLY-REF-80 1000")

			return nil
		},
	}
}
