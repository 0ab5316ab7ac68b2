// Package testing provides shared fixtures for database-backed tests.
package testing

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// CreateTestDB opens an in-memory SQLite database scoped to one test;
// it is closed when the test finishes. Foreign keys are switched on to
// match the pragmas used on real connections. Schema setup is left to
// the caller, which keeps this package import-cycle-free for db's own
// tests.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}
