package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"timekeeper/internal/models"
)

var eventSortColumns = map[string]struct{}{
	"id": {}, "title": {}, "start_time": {}, "end_time": {},
	"created_at": {}, "updated_at": {},
}

const eventDefaultSort = "start_time"

const eventSelect = `SELECT id, title, description, start_time, end_time,
	location, is_all_day, recurrence_rule, created_at, updated_at FROM events`

// EventRepo owns CRUD and calendar queries for the events table.
type EventRepo struct {
	db *sql.DB
}

// NewEvent carries the fields accepted when creating an event.
type NewEvent struct {
	Title          string
	Description    *string
	StartTime      string
	EndTime        string
	Location       *string
	IsAllDay       int
	RecurrenceRule *string
}

// EventPatch is a sparse update for an event.
type EventPatch struct {
	Title          models.Field[string]
	Description    models.Field[string]
	StartTime      models.Field[string]
	EndTime        models.Field[string]
	Location       models.Field[string]
	IsAllDay       models.Field[int]
	RecurrenceRule models.Field[string]
}

// Add inserts an event and returns its generated id. An all-day flag outside
// {0,1} is rejected before any write.
func (r *EventRepo) Add(ctx context.Context, e NewEvent) (int64, error) {
	if !models.ValidAllDay(e.IsAllDay) {
		return 0, models.Invalid("is_all_day", "must be 0 or 1")
	}

	now := models.Now()
	return ExecInsert(ctx, r.db,
		`INSERT INTO events
			(title, description, start_time, end_time, location,
			 is_all_day, recurrence_rule, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, ptrArg(e.Description), e.StartTime, e.EndTime, ptrArg(e.Location),
		e.IsAllDay, ptrArg(e.RecurrenceRule), now, now,
	)
}

// Get returns the event with the given id, or ErrNotFound.
func (r *EventRepo) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRowContext(ctx, eventSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return event, err
}

// List returns all events ordered by the requested column and direction
// (falling back to start_time ASC).
func (r *EventRepo) List(ctx context.Context, sortBy, sortOrder string) ([]*models.Event, error) {
	query := eventSelect + " ORDER BY " +
		orderClause(sortBy, sortOrder, eventSortColumns, eventDefaultSort)
	return r.queryEvents(ctx, query)
}

// ListForPeriod returns events overlapping [periodStart, periodEnd]: any
// event that starts before the period ends and ends after it starts.
func (r *EventRepo) ListForPeriod(ctx context.Context, periodStart, periodEnd, sortBy, sortOrder string) ([]*models.Event, error) {
	query := eventSelect + " WHERE start_time <= ? AND end_time >= ? ORDER BY " +
		orderClause(sortBy, sortOrder, eventSortColumns, eventDefaultSort)
	return r.queryEvents(ctx, query, periodEnd, periodStart)
}

// Update applies a sparse patch. The outcome is meaningful only when the
// returned error is nil.
func (r *EventRepo) Update(ctx context.Context, id int64, p EventPatch) (Outcome, error) {
	var sets []string
	var args []any

	if p.Title.IsSet() {
		if p.Title.IsNull() {
			return 0, models.Invalid("title", "cannot be null")
		}
		sets = append(sets, "title = ?")
		args = append(args, p.Title.Arg())
	}
	if p.Description.IsSet() {
		sets = append(sets, "description = ?")
		args = append(args, p.Description.Arg())
	}
	if p.StartTime.IsSet() {
		if p.StartTime.IsNull() {
			return 0, models.Invalid("start_time", "cannot be null")
		}
		sets = append(sets, "start_time = ?")
		args = append(args, p.StartTime.Arg())
	}
	if p.EndTime.IsSet() {
		if p.EndTime.IsNull() {
			return 0, models.Invalid("end_time", "cannot be null")
		}
		sets = append(sets, "end_time = ?")
		args = append(args, p.EndTime.Arg())
	}
	if p.Location.IsSet() {
		sets = append(sets, "location = ?")
		args = append(args, p.Location.Arg())
	}
	if p.IsAllDay.IsSet() {
		flag, ok := p.IsAllDay.Get()
		if !ok || !models.ValidAllDay(flag) {
			return 0, models.Invalid("is_all_day", "must be 0 or 1")
		}
		sets = append(sets, "is_all_day = ?")
		args = append(args, flag)
	}
	if p.RecurrenceRule.IsSet() {
		sets = append(sets, "recurrence_rule = ?")
		args = append(args, p.RecurrenceRule.Arg())
	}

	if len(sets) == 0 {
		return OutcomeNoOp, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, models.Now(), id)

	affected, err := ExecWrite(ctx, r.db,
		"UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

// Delete removes the event row.
func (r *EventRepo) Delete(ctx context.Context, id int64) (Outcome, error) {
	affected, err := ExecWrite(ctx, r.db, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

func (r *EventRepo) queryEvents(ctx context.Context, query string, args ...any) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event                          models.Event
		description, location, recRule sql.NullString
	)
	err := row.Scan(&event.ID, &event.Title, &description, &event.StartTime,
		&event.EndTime, &location, &event.IsAllDay, &recRule,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	event.Description = nullStr(description)
	event.Location = nullStr(location)
	event.RecurrenceRule = nullStr(recRule)
	return &event, nil
}
