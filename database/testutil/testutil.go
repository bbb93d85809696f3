// Package testutil provides database helpers for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"tareasapi/database"
	"tareasapi/logger"
)

// Open returns a migrated database backed by a SQLite file under a
// test-scoped temporary directory. The connection is closed when the
// test finishes.
func Open(t *testing.T) *database.DB {
	t.Helper()

	cfg := database.Config{
		DSN:        "file:" + filepath.Join(t.TempDir(), "test.db"),
		MaxRetries: 1,
		LogLevel:   "silent",
	}

	db, err := database.New(cfg, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
