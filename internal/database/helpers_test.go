package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestOrderClause(t *testing.T) {
	allowed := map[string]struct{}{"id": {}, "title": {}, "created_at": {}}

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"allowed column asc", "title", "asc", "title ASC"},
		{"allowed column desc", "id", "DESC", "id DESC"},
		{"unknown column falls back", "salary", "ASC", "created_at ASC"},
		{"injection attempt falls back", "id; DROP TABLE tasks", "ASC", "created_at ASC"},
		{"bad direction falls back to asc", "title", "sideways", "title ASC"},
		{"injection in direction falls back", "title", "ASC; --", "title ASC"},
		{"empty input uses defaults", "", "", "created_at ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderClause(tt.sortBy, tt.sortOrder, allowed, "created_at")
			if got != tt.want {
				t.Errorf("orderClause(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}

func TestFetchRows(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if _, err := db.Exec(
		"INSERT INTO projects (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)",
		"alpha", nil, "2026-08-25 10:00:00", "2026-08-25 10:00:00"); err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}

	cols, rows, err := FetchRows(ctx, db, "SELECT * FROM projects")
	if err != nil {
		t.Fatalf("FetchRows failed: %v", err)
	}
	if len(cols) == 0 || cols[0] != "id" {
		t.Errorf("Columns should be in result-set order, got %v", cols)
	}
	if len(rows) != 1 {
		t.Fatalf("Got %d rows, want 1", len(rows))
	}
	if rows[0]["name"] != "alpha" {
		t.Errorf("name = %v, want alpha", rows[0]["name"])
	}
	if rows[0]["description"] != nil {
		t.Errorf("NULL column should map to nil, got %v", rows[0]["description"])
	}

	// Empty result sets come back as an empty, non-nil slice.
	_, empty, err := FetchRows(ctx, db, "SELECT * FROM projects WHERE id = ?", 999)
	if err != nil {
		t.Fatalf("FetchRows failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("No matches should yield an empty slice, got %v", empty)
	}
}

func TestFetchRow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	row, err := FetchRow(ctx, db, "SELECT * FROM goals WHERE id = ?", 1)
	if err != nil {
		t.Fatalf("FetchRow failed: %v", err)
	}
	if row != nil {
		t.Errorf("No match should yield nil, got %v", row)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := ExecWrite(ctx, tx,
			"INSERT INTO goals (name, status, created_at, updated_at) VALUES (?, ?, ?, ?)",
			"phantom", "active", "2026-08-25 10:00:00", "2026-08-25 10:00:00"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx should surface the callback error, got %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM goals").Scan(&count); err != nil {
		t.Fatalf("Failed to count goals: %v", err)
	}
	if count != 0 {
		t.Errorf("Failed transaction should leave no rows, found %d", count)
	}
}
