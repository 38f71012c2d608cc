package database

import (
	"context"
	"errors"
	"testing"

	"timekeeper/internal/models"
)

func TestGoalAddDefaultsToActive(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Goals.Add(ctx, NewGoal{Name: "Run a marathon"})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	goal, err := repo.Goals.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if goal.Status != models.GoalStatusActive {
		t.Errorf("Status = %q, want default active", goal.Status)
	}
	if goal.TargetDate != nil {
		t.Error("Unset target date should read back as nil")
	}
}

func TestGoalAddRejectsInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)

	var ve *models.ValidationError
	_, err := repo.Goals.Add(context.Background(), NewGoal{Name: "bad", Status: "paused"})
	if !errors.As(err, &ve) {
		t.Errorf("Invalid status should be a validation error, got %v", err)
	}
}

func TestGoalListStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	if _, err := repo.Goals.Add(ctx, NewGoal{Name: "active one"}); err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}
	doneID, err := repo.Goals.Add(ctx, NewGoal{Name: "done one", Status: models.GoalStatusCompleted})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	completed, err := repo.Goals.List(ctx, models.GoalStatusCompleted, "", "")
	if err != nil {
		t.Fatalf("Failed to list goals: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != doneID {
		t.Errorf("Status filter should match exactly the completed goal, got %d", len(completed))
	}

	// An out-of-set filter is ignored rather than rejected.
	all, err := repo.Goals.List(ctx, "paused", "", "")
	if err != nil {
		t.Fatalf("Failed to list goals: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Bogus status filter should be ignored, got %d of 2 goals", len(all))
	}
}

func TestGoalUpdateAndArchive(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Goals.Add(ctx, NewGoal{Name: "Learn piano", TargetDate: strPtr("2026-12-31 00:00:00")})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	outcome, err := repo.Goals.Update(ctx, id, GoalPatch{
		TargetDate: models.Null[string](),
		Status:     models.Set(models.GoalStatusArchived),
	})
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("Update failed: outcome=%v err=%v", outcome, err)
	}

	goal, err := repo.Goals.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if goal.TargetDate != nil {
		t.Error("Cleared target date should read back as nil")
	}
	if goal.Status != models.GoalStatusArchived {
		t.Errorf("Status = %q, want archived", goal.Status)
	}

	var ve *models.ValidationError
	_, err = repo.Goals.Update(ctx, id, GoalPatch{Status: models.Set("bogus")})
	if !errors.As(err, &ve) {
		t.Errorf("Invalid status should be a validation error, got %v", err)
	}
}

func TestGoalDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Goals.Add(ctx, NewGoal{Name: "short-lived"})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	outcome, err := repo.Goals.Delete(ctx, id)
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("Delete failed: outcome=%v err=%v", outcome, err)
	}
	if _, err := repo.Goals.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted goal should be gone, got %v", err)
	}
}
