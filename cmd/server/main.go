// Package main runs the HTTP gateway with the bundled demo store. It seeds
// the demo schema on first start, which keeps local bring-up to a single
// command; production deployments use `mcpd serve` against an existing
// database instead.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"compliance-mcp/internal/app"
	"compliance-mcp/internal/config"
	"compliance-mcp/internal/db"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	writeDB, err := db.Open(cfg.DatabasePath, true)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.RunMigrations(writeDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.SeedDemoData(ctx, writeDB); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}
	cancel()
	writeDB.Close()

	readDB, err := db.Open(cfg.DatabasePath, false)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer readDB.Close()

	a, err := app.New(app.Deps{Cfg: cfg, DB: readDB, Logger: logger})
	if err != nil {
		log.Fatalf("wire app: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("http gateway listening", "addr", cfg.ListenAddr, "auth", cfg.AuthEnabled())
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
