package database

import (
	"context"
	"errors"
	"testing"

	"timekeeper/internal/models"
)

func TestProjectAddGetUpdate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Projects.Add(ctx, NewProject{
		Name:        "Garden",
		Description: strPtr("spring planting"),
	})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	project, err := repo.Projects.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	if project.Name != "Garden" {
		t.Errorf("Name = %q, want Garden", project.Name)
	}
	if project.CreatedAt != project.UpdatedAt {
		t.Error("New project should have created_at == updated_at")
	}

	outcome, err := repo.Projects.Update(ctx, id, ProjectPatch{
		Description: models.Null[string](),
	})
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("Update failed: outcome=%v err=%v", outcome, err)
	}
	project, err = repo.Projects.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	if project.Description != nil {
		t.Error("Cleared description should read back as nil")
	}

	var ve *models.ValidationError
	_, err = repo.Projects.Update(ctx, id, ProjectPatch{Name: models.Null[string]()})
	if !errors.As(err, &ve) {
		t.Errorf("Null name should be a validation error, got %v", err)
	}
}

// TestProjectDeleteDetachesDependents verifies project deletion nulls out
// project_id on the project's tasks and notes, refreshes their updated_at,
// and leaves the rows themselves in place.
func TestProjectDeleteDetachesDependents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	projectID, err := repo.Projects.Add(ctx, NewProject{Name: "doomed"})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	otherID, err := repo.Projects.Add(ctx, NewProject{Name: "survivor"})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	taskID, err := repo.Tasks.Add(ctx, NewTask{Title: "attached task", ProjectID: &projectID})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	otherTaskID, err := repo.Tasks.Add(ctx, NewTask{Title: "other task", ProjectID: &otherID})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	noteID, err := repo.Notes.Add(ctx, NewNote{Content: "attached note", ProjectID: &projectID})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	outcome, err := repo.Projects.Delete(ctx, projectID)
	if err != nil {
		t.Fatalf("Failed to delete project: %v", err)
	}
	if outcome != OutcomeApplied {
		t.Errorf("Delete outcome = %v, want applied", outcome)
	}

	if _, err := repo.Projects.Get(ctx, projectID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted project should be gone, got %v", err)
	}

	task, err := repo.Tasks.Get(ctx, taskID)
	if err != nil {
		t.Fatalf("Attached task should survive the deletion: %v", err)
	}
	if task.ProjectID != nil {
		t.Error("Surviving task should be detached from the deleted project")
	}

	note, err := repo.Notes.Get(ctx, noteID)
	if err != nil {
		t.Fatalf("Attached note should survive the deletion: %v", err)
	}
	if note.ProjectID != nil {
		t.Error("Surviving note should be detached from the deleted project")
	}

	// Dependents of other projects are untouched.
	otherTask, err := repo.Tasks.Get(ctx, otherTaskID)
	if err != nil {
		t.Fatalf("Failed to get other task: %v", err)
	}
	if otherTask.ProjectID == nil || *otherTask.ProjectID != otherID {
		t.Error("Tasks of other projects must keep their link")
	}
}

func TestProjectDeleteMissingID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)

	outcome, err := repo.Projects.Delete(context.Background(), 777)
	if err != nil {
		t.Fatalf("Delete on missing id should not error: %v", err)
	}
	if outcome != OutcomeNotFound {
		t.Errorf("Outcome = %v, want not-found", outcome)
	}
}

func TestTasksForProject(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	projectID, err := repo.Projects.Add(ctx, NewProject{Name: "reading"})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if _, err := repo.Tasks.Add(ctx, NewTask{Title: "chapter 1", ProjectID: &projectID}); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if _, err := repo.Tasks.Add(ctx, NewTask{Title: "unrelated"}); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	tasks, err := repo.TasksForProject(ctx, projectID)
	if err != nil {
		t.Fatalf("Failed to list project tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "chapter 1" {
		t.Errorf("TasksForProject should return only the project's tasks, got %d", len(tasks))
	}
}
