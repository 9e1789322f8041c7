package cli

import (
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"compliance-mcp/internal/app"
	"compliance-mcp/internal/db"
	"compliance-mcp/internal/stdio"
)

func newStdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve tools over JSON-RPC on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// stdout carries the protocol; logs go to stderr.
			logger := newLogger(cfg, os.Stderr)

			handle, err := db.Open(cfg.DatabasePath, false)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer handle.Close()

			a, err := app.New(app.Deps{Cfg: cfg, DB: handle, Logger: logger})
			if err != nil {
				return err
			}

			srv := stdio.NewServer(a.Registry, os.Stdin, os.Stdout, logger.With("component", "stdio"))
			return srv.Run(cmd.Context())
		},
	}
}
