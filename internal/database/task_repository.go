package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"timekeeper/internal/models"
)

// taskSortColumns is the compiled-in allowlist of columns a caller may sort
// tasks by. Anything else falls back to taskDefaultSort.
var taskSortColumns = map[string]struct{}{
	"id": {}, "title": {}, "priority": {}, "due_date": {},
	"status": {}, "created_at": {}, "updated_at": {},
}

const taskDefaultSort = "created_at"

const taskSelect = `SELECT id, title, description, priority, due_date, status,
	project_id, parent_task_id, created_at, updated_at FROM tasks`

// TaskRepo owns CRUD and query operations for the tasks table.
type TaskRepo struct {
	db *sql.DB
}

// NewTask carries the fields accepted when creating a task. Status defaults
// to pending when empty.
type NewTask struct {
	Title        string
	Description  *string
	Priority     int
	DueDate      *string
	Status       string
	ProjectID    *int64
	ParentTaskID *int64
}

// TaskPatch is a sparse update: unset fields are left untouched, null fields
// clear nullable columns.
type TaskPatch struct {
	Title        models.Field[string]
	Description  models.Field[string]
	Priority     models.Field[int]
	DueDate      models.Field[string]
	Status       models.Field[string]
	ProjectID    models.Field[int64]
	ParentTaskID models.Field[int64]
}

// TaskFilter narrows List results. A status outside the closed set is
// ignored rather than rejected.
type TaskFilter struct {
	ProjectID *int64
	Status    string
}

// Add inserts a task and returns its generated id. Out-of-set status or
// priority values are rejected before any write.
func (r *TaskRepo) Add(ctx context.Context, t NewTask) (int64, error) {
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if !models.ValidTaskStatus(t.Status) {
		return 0, models.Invalid("status", fmt.Sprintf("%q is not a task status", t.Status))
	}
	if !models.ValidTaskPriority(t.Priority) {
		return 0, models.Invalid("priority", fmt.Sprintf("%d is outside 0..2", t.Priority))
	}

	now := models.Now()
	return ExecInsert(ctx, r.db,
		`INSERT INTO tasks
			(title, description, priority, due_date, status,
			 project_id, parent_task_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, ptrArg(t.Description), t.Priority, ptrArg(t.DueDate), t.Status,
		ptrArg(t.ProjectID), ptrArg(t.ParentTaskID), now, now,
	)
}

// Get returns the task with the given id, or ErrNotFound.
func (r *TaskRepo) Get(ctx context.Context, id int64) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return task, err
}

// List returns tasks matching the filter, ordered by the requested column
// and direction (falling back to created_at ASC).
func (r *TaskRepo) List(ctx context.Context, f TaskFilter, sortBy, sortOrder string) ([]*models.Task, error) {
	var conditions []string
	var args []any

	if f.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *f.ProjectID)
	}
	if f.Status != "" && models.ValidTaskStatus(f.Status) {
		conditions = append(conditions, "status = ?")
		args = append(args, f.Status)
	}

	query := taskSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderClause(sortBy, sortOrder, taskSortColumns, taskDefaultSort)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update applies a sparse patch. Zero supplied fields succeed as a no-op
// without touching storage; a supplied value failing validation rejects the
// whole update before any write. The outcome is meaningful only when the
// returned error is nil.
func (r *TaskRepo) Update(ctx context.Context, id int64, p TaskPatch) (Outcome, error) {
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
	if p.Priority.IsSet() {
		prio, ok := p.Priority.Get()
		if !ok || !models.ValidTaskPriority(prio) {
			return 0, models.Invalid("priority", "must be 0, 1 or 2")
		}
		sets = append(sets, "priority = ?")
		args = append(args, prio)
	}
	if p.DueDate.IsSet() {
		sets = append(sets, "due_date = ?")
		args = append(args, p.DueDate.Arg())
	}
	if p.Status.IsSet() {
		status, ok := p.Status.Get()
		if !ok || !models.ValidTaskStatus(status) {
			return 0, models.Invalid("status", "outside the task status set")
		}
		sets = append(sets, "status = ?")
		args = append(args, status)
	}
	if p.ProjectID.IsSet() {
		sets = append(sets, "project_id = ?")
		args = append(args, p.ProjectID.Arg())
	}
	if p.ParentTaskID.IsSet() {
		sets = append(sets, "parent_task_id = ?")
		args = append(args, p.ParentTaskID.Arg())
	}

	if len(sets) == 0 {
		return OutcomeNoOp, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, models.Now(), id)

	affected, err := ExecWrite(ctx, r.db,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

// UpdateStatus is a convenience wrapper for the common status transition.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id int64, status string) (Outcome, error) {
	return r.Update(ctx, id, TaskPatch{Status: models.Set(status)})
}

// Delete removes the task row.
func (r *TaskRepo) Delete(ctx context.Context, id int64) (Outcome, error) {
	affected, err := ExecWrite(ctx, r.db, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task                models.Task
		description         sql.NullString
		dueDate             sql.NullString
		projectID, parentID sql.NullInt64
	)
	err := row.Scan(
		&task.ID, &task.Title, &description, &task.Priority, &dueDate,
		&task.Status, &projectID, &parentID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Description = nullStr(description)
	task.DueDate = nullStr(dueDate)
	task.ProjectID = nullID(projectID)
	task.ParentTaskID = nullID(parentID)
	return &task, nil
}

// ptrArg converts an optional insert parameter to a driver argument.
func ptrArg[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
