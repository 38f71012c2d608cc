package database

import (
	"context"
	"testing"
)

// TestPersistenceAcrossReopen verifies data written through one handle is
// visible after closing and reopening the same file, and that reapplying the
// schema on reopen is harmless.
func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	db, path := setupTestDBFile(t)

	repo := NewRepository(db)
	taskID, err := repo.Tasks.Add(ctx, NewTask{Title: "survives restart"})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer reopened.Close()

	task, err := NewRepository(reopened).Tasks.Get(ctx, taskID)
	if err != nil {
		t.Fatalf("Failed to get task after reopen: %v", err)
	}
	if task.Title != "survives restart" {
		t.Errorf("Title = %q after reopen", task.Title)
	}
}
