package cli

import (
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"compliance-mcp/internal/db"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo schema and load sample compliance data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, os.Stdout)

			handle, err := db.Open(cfg.DatabasePath, true)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer handle.Close()

			if err := db.RunMigrations(handle); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if err := db.SeedDemoData(cmd.Context(), handle); err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			logger.Info("demo data ready", "path", cfg.DatabasePath)
			return nil
		},
	}
}
