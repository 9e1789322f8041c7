package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTestSQLite opens a hardened SQLite write pool in t.TempDir(), runs all
// pending migrations, seeds the demo data, and registers cleanup.
func OpenTestSQLite(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite")

	handle, err := Open(path, true)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = handle.Close()
	})

	if err := RunMigrations(handle); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if err := SeedDemoData(context.Background(), handle); err != nil {
		t.Fatalf("seed demo data: %v", err)
	}

	return handle
}
