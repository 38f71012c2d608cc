package database

import (
	"context"
	"errors"
	"testing"

	"timekeeper/internal/models"
)

func TestReminderAddAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	taskID, err := repo.Tasks.Add(ctx, NewTask{Title: "call bank"})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	id, err := repo.Reminders.Add(ctx, NewReminder{
		ReminderTime: "2026-08-26 09:00:00",
		Message:      strPtr("call before noon"),
		TaskID:       &taskID,
	})
	if err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}

	rem, err := repo.Reminders.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get reminder: %v", err)
	}
	if rem.Status != models.ReminderStatusPending {
		t.Errorf("Status = %q, want default pending", rem.Status)
	}
	if rem.TaskID == nil || *rem.TaskID != taskID {
		t.Error("Task link should read back as written")
	}
	if rem.EventID != nil {
		t.Error("Unset event link should read back as nil")
	}
}

func TestReminderAddRejectsInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)

	var ve *models.ValidationError
	_, err := repo.Reminders.Add(context.Background(), NewReminder{
		ReminderTime: "2026-08-26 09:00:00",
		Status:       "fired",
	})
	if !errors.As(err, &ve) {
		t.Errorf("Invalid status should be a validation error, got %v", err)
	}
}

func TestReminderPendingBefore(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	add := func(at, status string) int64 {
		t.Helper()
		id, err := repo.Reminders.Add(ctx, NewReminder{ReminderTime: at, Status: status})
		if err != nil {
			t.Fatalf("Failed to create reminder: %v", err)
		}
		return id
	}

	dueID := add("2026-08-25 08:00:00", "")
	add("2026-08-30 08:00:00", "") // pending but not yet due
	add("2026-08-24 08:00:00", models.ReminderStatusDismissed)

	due, err := repo.Reminders.Pending(ctx, "2026-08-25 12:00:00")
	if err != nil {
		t.Fatalf("Failed to list pending: %v", err)
	}
	if len(due) != 1 || due[0].ID != dueID {
		t.Errorf("Pending(before) should return only the due pending reminder, got %d", len(due))
	}

	// Without a cutoff every pending reminder is returned, soonest first.
	all, err := repo.Reminders.Pending(ctx, "")
	if err != nil {
		t.Fatalf("Failed to list pending: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Pending() should return both pending reminders, got %d", len(all))
	}
	if len(all) == 2 && all[0].ReminderTime > all[1].ReminderTime {
		t.Error("Pending reminders should be ordered soonest first")
	}
}

// TestReminderCheckAndTrigger verifies the sweep transitions exactly the due
// pending reminders to triggered and reports their ids.
func TestReminderCheckAndTrigger(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	dueID, err := repo.Reminders.Add(ctx, NewReminder{ReminderTime: "2026-08-25 08:00:00"})
	if err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}
	futureID, err := repo.Reminders.Add(ctx, NewReminder{ReminderTime: "2026-08-30 08:00:00"})
	if err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}
	dismissedID, err := repo.Reminders.Add(ctx, NewReminder{
		ReminderTime: "2026-08-24 08:00:00",
		Status:       models.ReminderStatusDismissed,
	})
	if err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}

	triggered, err := repo.Reminders.CheckAndTrigger(ctx, "2026-08-25 12:00:00")
	if err != nil {
		t.Fatalf("CheckAndTrigger failed: %v", err)
	}
	if len(triggered) != 1 || triggered[0] != dueID {
		t.Errorf("Triggered ids = %v, want [%d]", triggered, dueID)
	}

	rem, err := repo.Reminders.Get(ctx, dueID)
	if err != nil {
		t.Fatalf("Failed to get reminder: %v", err)
	}
	if rem.Status != models.ReminderStatusTriggered {
		t.Errorf("Due reminder status = %q, want triggered", rem.Status)
	}

	future, _ := repo.Reminders.Get(ctx, futureID)
	if future.Status != models.ReminderStatusPending {
		t.Errorf("Future reminder status = %q, should stay pending", future.Status)
	}
	dismissed, _ := repo.Reminders.Get(ctx, dismissedID)
	if dismissed.Status != models.ReminderStatusDismissed {
		t.Errorf("Dismissed reminder status = %q, should stay dismissed", dismissed.Status)
	}

	// A second sweep finds nothing left to trigger.
	again, err := repo.Reminders.CheckAndTrigger(ctx, "2026-08-25 12:00:00")
	if err != nil {
		t.Fatalf("Second sweep failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("Second sweep should trigger nothing, got %v", again)
	}
}

func TestReminderForTaskAndForEvent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	taskID, err := repo.Tasks.Add(ctx, NewTask{Title: "task"})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	eventID, err := repo.Events.Add(ctx, NewEvent{
		Title:     "event",
		StartTime: "2026-09-01 09:00:00",
		EndTime:   "2026-09-01 10:00:00",
	})
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	if _, err := repo.Reminders.Add(ctx, NewReminder{ReminderTime: "2026-08-31 09:00:00", TaskID: &taskID}); err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}
	if _, err := repo.Reminders.Add(ctx, NewReminder{ReminderTime: "2026-08-31 09:00:00", EventID: &eventID}); err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}

	forTask, err := repo.Reminders.ForTask(ctx, taskID)
	if err != nil {
		t.Fatalf("Failed to list task reminders: %v", err)
	}
	if len(forTask) != 1 || forTask[0].TaskID == nil || *forTask[0].TaskID != taskID {
		t.Errorf("ForTask should return only the task's reminder, got %d", len(forTask))
	}

	forEvent, err := repo.Reminders.ForEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("Failed to list event reminders: %v", err)
	}
	if len(forEvent) != 1 || forEvent[0].EventID == nil || *forEvent[0].EventID != eventID {
		t.Errorf("ForEvent should return only the event's reminder, got %d", len(forEvent))
	}
}

func TestReminderUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.Reminders.Add(ctx, NewReminder{ReminderTime: "2026-08-26 09:00:00"})
	if err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}

	outcome, err := repo.Reminders.UpdateStatus(ctx, id, models.ReminderStatusDismissed)
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("UpdateStatus failed: outcome=%v err=%v", outcome, err)
	}

	var ve *models.ValidationError
	_, err = repo.Reminders.Update(ctx, id, ReminderPatch{ReminderTime: models.Null[string]()})
	if !errors.As(err, &ve) {
		t.Errorf("Null reminder time should be a validation error, got %v", err)
	}

	outcome, err = repo.Reminders.Delete(ctx, id)
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("Delete failed: outcome=%v err=%v", outcome, err)
	}
	if _, err := repo.Reminders.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted reminder should be gone, got %v", err)
	}
}
