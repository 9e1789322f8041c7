// Package db provides connectivity, migrations, and demo seeding for the
// bundled SQLite compliance store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"
)

// SQLite DSN parameters for production hardening.
const (
	defaultBusyTimeout = "5000" // 5 seconds
	defaultSynchronous = "NORMAL"
	defaultJournalMode = "WAL"
)

// Open opens a *sql.DB pool for the given SQLite file path.
//
// The gateway is read-only at query time, so the default pool is sized for
// concurrent reads (4 connections). Pass write=true for the single-connection
// serialized pool used by migrations and seeding (_txlock=immediate).
//
// Both modes set WAL journal, busy_timeout=5000ms, synchronous=NORMAL, and
// foreign_keys=on.
func Open(path string, write bool) (*sql.DB, error) {
	handle, err := sql.Open("sqlite3", buildDSN(path, write))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if write {
		handle.SetMaxOpenConns(1)
		handle.SetMaxIdleConns(1)
	} else {
		handle.SetMaxOpenConns(4)
		handle.SetMaxIdleConns(4)
	}
	handle.SetConnMaxLifetime(time.Hour)

	// Verify the connection is usable.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return handle, nil
}

// buildDSN constructs a SQLite DSN with hardened parameters.
func buildDSN(path string, write bool) string {
	params := url.Values{}
	params.Set("_journal_mode", defaultJournalMode)
	params.Set("_busy_timeout", defaultBusyTimeout)
	params.Set("_synchronous", defaultSynchronous)
	params.Set("_foreign_keys", "on")

	if write {
		params.Set("_txlock", "immediate")
	}

	return path + "?" + params.Encode()
}
