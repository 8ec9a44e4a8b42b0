package db

import (
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"
)

// NewTestDB creates a fresh SQLite database in a temporary directory with
// all migrations applied.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := Migrate(db.DB); err != nil {
		db.Close()
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
