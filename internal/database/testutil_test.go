package database

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory database with the schema applied.
// This is the unified test database setup used by all tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return db
}

// setupTestDBFile creates a file-based database for tests that need to
// reopen the same file, e.g. persistence across restarts.
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "timekeeper-test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpfile.Close()

	db, err := Open(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return db, tmpfile.Name()
}

func strPtr(s string) *string { return &s }

func idPtr(id int64) *int64 { return &id }
