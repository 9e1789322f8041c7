package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compliance-mcp/internal/mapping"
)

func newMappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect the entity mapping file",
	}
	cmd.AddCommand(newMappingValidateCmd())
	return cmd
}

func newMappingValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse the mapping file and report configured entities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if _, statErr := os.Stat(cfg.MappingPath); os.IsNotExist(statErr) {
				fmt.Fprintf(os.Stdout, "%s: not found (gateway would start with zero entities)\n", cfg.MappingPath)
				return nil
			}

			m, err := mapping.Load(cfg.MappingPath)
			if err != nil {
				return fmt.Errorf("invalid mapping: %w", err)
			}

			configured := m.ListConfigured()
			fmt.Fprintf(os.Stdout, "%s: %d configured entities\n", cfg.MappingPath, len(configured))
			for _, name := range configured {
				e, _ := m.Get(name)
				fmt.Fprintf(os.Stdout, "  %s -> %s (%d fields)\n", name, e.SourceTable, e.Columns.Len())
			}
			return nil
		},
	}
}
