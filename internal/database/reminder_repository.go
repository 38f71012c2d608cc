package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"timekeeper/internal/models"
)

var reminderSortColumns = map[string]struct{}{
	"id": {}, "task_id": {}, "event_id": {}, "reminder_time": {},
	"message": {}, "status": {}, "created_at": {}, "updated_at": {},
}

const reminderDefaultSort = "reminder_time"

const reminderSelect = `SELECT id, task_id, event_id, reminder_time, message,
	status, created_at, updated_at FROM reminders`

// ReminderRepo owns CRUD and triggering operations for the reminders table.
type ReminderRepo struct {
	db *sql.DB
}

// NewReminder carries the fields accepted when creating a reminder. Status
// defaults to pending when empty. TaskID and EventID may both be set; the
// data model does not enforce exclusivity.
type NewReminder struct {
	ReminderTime string
	Message      *string
	TaskID       *int64
	EventID      *int64
	Status       string
}

// ReminderPatch is a sparse update for a reminder.
type ReminderPatch struct {
	ReminderTime models.Field[string]
	Message      models.Field[string]
	Status       models.Field[string]
	TaskID       models.Field[int64]
	EventID      models.Field[int64]
}

// Add inserts a reminder and returns its generated id. An out-of-set status
// is rejected before any write.
func (r *ReminderRepo) Add(ctx context.Context, rem NewReminder) (int64, error) {
	if rem.Status == "" {
		rem.Status = models.ReminderStatusPending
	}
	if !models.ValidReminderStatus(rem.Status) {
		return 0, models.Invalid("status", fmt.Sprintf("%q is not a reminder status", rem.Status))
	}

	now := models.Now()
	return ExecInsert(ctx, r.db,
		`INSERT INTO reminders
			(task_id, event_id, reminder_time, message, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ptrArg(rem.TaskID), ptrArg(rem.EventID), rem.ReminderTime,
		ptrArg(rem.Message), rem.Status, now, now,
	)
}

// Get returns the reminder with the given id, or ErrNotFound.
func (r *ReminderRepo) Get(ctx context.Context, id int64) (*models.Reminder, error) {
	rem, err := scanReminder(r.db.QueryRowContext(ctx, reminderSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rem, err
}

// List returns all reminders ordered by the requested column and direction
// (falling back to reminder_time ASC).
func (r *ReminderRepo) List(ctx context.Context, sortBy, sortOrder string) ([]*models.Reminder, error) {
	query := reminderSelect + " ORDER BY " +
		orderClause(sortBy, sortOrder, reminderSortColumns, reminderDefaultSort)
	return r.queryReminders(ctx, query)
}

// Pending returns pending reminders, optionally limited to those due at or
// before the given time, soonest first.
func (r *ReminderRepo) Pending(ctx context.Context, before string) ([]*models.Reminder, error) {
	query := reminderSelect + " WHERE status = ?"
	args := []any{models.ReminderStatusPending}

	if before != "" {
		query += " AND reminder_time <= ?"
		args = append(args, before)
	}
	query += " ORDER BY reminder_time ASC"

	return r.queryReminders(ctx, query, args...)
}

// ForTask returns the reminders attached to a task, soonest first.
func (r *ReminderRepo) ForTask(ctx context.Context, taskID int64) ([]*models.Reminder, error) {
	return r.queryReminders(ctx,
		reminderSelect+" WHERE task_id = ? ORDER BY reminder_time ASC", taskID)
}

// ForEvent returns the reminders attached to an event, soonest first.
func (r *ReminderRepo) ForEvent(ctx context.Context, eventID int64) ([]*models.Reminder, error) {
	return r.queryReminders(ctx,
		reminderSelect+" WHERE event_id = ? ORDER BY reminder_time ASC", eventID)
}

// Update applies a sparse patch. The outcome is meaningful only when the
// returned error is nil.
func (r *ReminderRepo) Update(ctx context.Context, id int64, p ReminderPatch) (Outcome, error) {
	var sets []string
	var args []any

	if p.ReminderTime.IsSet() {
		if p.ReminderTime.IsNull() {
			return 0, models.Invalid("reminder_time", "cannot be null")
		}
		sets = append(sets, "reminder_time = ?")
		args = append(args, p.ReminderTime.Arg())
	}
	if p.Message.IsSet() {
		sets = append(sets, "message = ?")
		args = append(args, p.Message.Arg())
	}
	if p.Status.IsSet() {
		status, ok := p.Status.Get()
		if !ok || !models.ValidReminderStatus(status) {
			return 0, models.Invalid("status", "outside the reminder status set")
		}
		sets = append(sets, "status = ?")
		args = append(args, status)
	}
	if p.TaskID.IsSet() {
		sets = append(sets, "task_id = ?")
		args = append(args, p.TaskID.Arg())
	}
	if p.EventID.IsSet() {
		sets = append(sets, "event_id = ?")
		args = append(args, p.EventID.Arg())
	}

	if len(sets) == 0 {
		return OutcomeNoOp, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, models.Now(), id)

	affected, err := ExecWrite(ctx, r.db,
		"UPDATE reminders SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

// UpdateStatus is a convenience wrapper for the common status transition.
func (r *ReminderRepo) UpdateStatus(ctx context.Context, id int64, status string) (Outcome, error) {
	return r.Update(ctx, id, ReminderPatch{Status: models.Set(status)})
}

// Delete removes the reminder row.
func (r *ReminderRepo) Delete(ctx context.Context, id int64) (Outcome, error) {
	affected, err := ExecWrite(ctx, r.db, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

// CheckAndTrigger reads every pending reminder due at or before now and
// transitions each to triggered. Transitions are independent: one failing
// does not block the rest, so the returned ids are the reminders that
// actually transitioned.
func (r *ReminderRepo) CheckAndTrigger(ctx context.Context, now string) ([]int64, error) {
	due, err := r.Pending(ctx, now)
	if err != nil {
		return nil, err
	}

	triggered := make([]int64, 0, len(due))
	for _, rem := range due {
		outcome, err := r.UpdateStatus(ctx, rem.ID, models.ReminderStatusTriggered)
		if err != nil || outcome != OutcomeApplied {
			continue
		}
		triggered = append(triggered, rem.ID)
	}
	return triggered, nil
}

func (r *ReminderRepo) queryReminders(ctx context.Context, query string, args ...any) ([]*models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]*models.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func scanReminder(row rowScanner) (*models.Reminder, error) {
	var (
		rem             models.Reminder
		taskID, eventID sql.NullInt64
		message         sql.NullString
	)
	err := row.Scan(&rem.ID, &taskID, &eventID, &rem.ReminderTime, &message,
		&rem.Status, &rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rem.TaskID = nullID(taskID)
	rem.EventID = nullID(eventID)
	rem.Message = nullStr(message)
	return &rem, nil
}
