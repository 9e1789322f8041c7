// Package cli implements the mcpd command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"compliance-mcp/internal/config"
)

var (
	version = "2.0.0"
	commit  = "none"
)

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mcpd",
		Short:         "Compliance data gateway",
		Long:          "Read-only MCP gateway exposing mapped compliance entities over HTTP and stdio.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("env-file", ".env", "path to a .env file (missing file is ignored)")
	rootCmd.PersistentFlags().String("db", "", "override DATABASE_PATH")
	rootCmd.PersistentFlags().String("mapping", "", "override MAPPING_PATH")

	rootCmd.AddCommand(
		newServeCmd(),
		newStdioCmd(),
		newSeedCmd(),
		newMappingCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig resolves the effective configuration for a command: .env file,
// then environment, then any explicit flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DatabasePath = v
	}
	if v, _ := cmd.Flags().GetString("mapping"); v != "" {
		cfg.MappingPath = v
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w *os.File) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
