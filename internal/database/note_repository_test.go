package database

import (
	"context"
	"errors"
	"testing"

	"timekeeper/internal/models"
)

func TestNoteAddAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Notes.Add(ctx, NewNote{
		Title:   strPtr("meeting"),
		Content: "# Agenda\n\n- budget\n- hiring",
	})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	note, err := repo.Notes.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}
	if note.Title == nil || *note.Title != "meeting" {
		t.Error("Title should read back as written")
	}
	if note.Content != "# Agenda\n\n- budget\n- hiring" {
		t.Errorf("Content = %q", note.Content)
	}
	if note.TaskID != nil || note.ProjectID != nil {
		t.Error("Unset attachments should read back as nil")
	}
}

func TestNoteAttachments(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	taskID, err := repo.Tasks.Add(ctx, NewTask{Title: "task"})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	projectID, err := repo.Projects.Add(ctx, NewProject{Name: "project"})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	if _, err := repo.Notes.Add(ctx, NewNote{Content: "task note", TaskID: &taskID}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	if _, err := repo.Notes.Add(ctx, NewNote{Content: "project note", ProjectID: &projectID}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	if _, err := repo.Notes.Add(ctx, NewNote{Content: "loose note"}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	forTask, err := repo.Notes.ForTask(ctx, taskID)
	if err != nil {
		t.Fatalf("Failed to list task notes: %v", err)
	}
	if len(forTask) != 1 || forTask[0].Content != "task note" {
		t.Errorf("ForTask should return only the task's note, got %d", len(forTask))
	}

	forProject, err := repo.Notes.ForProject(ctx, projectID)
	if err != nil {
		t.Fatalf("Failed to list project notes: %v", err)
	}
	if len(forProject) != 1 || forProject[0].Content != "project note" {
		t.Errorf("ForProject should return only the project's note, got %d", len(forProject))
	}

	all, err := repo.Notes.List(ctx, "", "")
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List should return all 3 notes, got %d", len(all))
	}
}

func TestNoteUpdate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Notes.Add(ctx, NewNote{Title: strPtr("draft"), Content: "v1"})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	outcome, err := repo.Notes.Update(ctx, id, NotePatch{
		Title:   models.Null[string](),
		Content: models.Set("v2"),
	})
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("Update failed: outcome=%v err=%v", outcome, err)
	}

	note, err := repo.Notes.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}
	if note.Title != nil {
		t.Error("Cleared title should read back as nil")
	}
	if note.Content != "v2" {
		t.Errorf("Content = %q, want v2", note.Content)
	}

	// Content is the one required column.
	var ve *models.ValidationError
	_, err = repo.Notes.Update(ctx, id, NotePatch{Content: models.Null[string]()})
	if !errors.As(err, &ve) {
		t.Errorf("Null content should be a validation error, got %v", err)
	}
}

func TestNoteDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Notes.Add(ctx, NewNote{Content: "gone soon"})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	outcome, err := repo.Notes.Delete(ctx, id)
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("Delete failed: outcome=%v err=%v", outcome, err)
	}
	if _, err := repo.Notes.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted note should be gone, got %v", err)
	}
}
