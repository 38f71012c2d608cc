package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"timekeeper/internal/models"
)

var goalSortColumns = map[string]struct{}{
	"id": {}, "name": {}, "target_date": {}, "status": {},
	"created_at": {}, "updated_at": {},
}

const goalDefaultSort = "created_at"

const goalSelect = `SELECT id, name, description, target_date, status,
	created_at, updated_at FROM goals`

// GoalRepo owns CRUD operations for the goals table.
type GoalRepo struct {
	db *sql.DB
}

// NewGoal carries the fields accepted when creating a goal. Status defaults
// to active when empty.
type NewGoal struct {
	Name        string
	Description *string
	TargetDate  *string
	Status      string
}

// GoalPatch is a sparse update for a goal.
type GoalPatch struct {
	Name        models.Field[string]
	Description models.Field[string]
	TargetDate  models.Field[string]
	Status      models.Field[string]
}

// Add inserts a goal and returns its generated id. An out-of-set status is
// rejected before any write.
func (r *GoalRepo) Add(ctx context.Context, g NewGoal) (int64, error) {
	if g.Status == "" {
		g.Status = models.GoalStatusActive
	}
	if !models.ValidGoalStatus(g.Status) {
		return 0, models.Invalid("status", fmt.Sprintf("%q is not a goal status", g.Status))
	}

	now := models.Now()
	return ExecInsert(ctx, r.db,
		`INSERT INTO goals (name, description, target_date, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.Name, ptrArg(g.Description), ptrArg(g.TargetDate), g.Status, now, now,
	)
}

// Get returns the goal with the given id, or ErrNotFound.
func (r *GoalRepo) Get(ctx context.Context, id int64) (*models.Goal, error) {
	goal, err := scanGoal(r.db.QueryRowContext(ctx, goalSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return goal, err
}

// List returns goals, optionally filtered by status, ordered by the
// requested column and direction. An out-of-set status filter is ignored.
func (r *GoalRepo) List(ctx context.Context, statusFilter, sortBy, sortOrder string) ([]*models.Goal, error) {
	query := goalSelect
	var args []any

	if statusFilter != "" && models.ValidGoalStatus(statusFilter) {
		query += " WHERE status = ?"
		args = append(args, statusFilter)
	}
	query += " ORDER BY " + orderClause(sortBy, sortOrder, goalSortColumns, goalDefaultSort)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]*models.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update applies a sparse patch. The outcome is meaningful only when the
// returned error is nil.
func (r *GoalRepo) Update(ctx context.Context, id int64, p GoalPatch) (Outcome, error) {
	var sets []string
	var args []any

	if p.Name.IsSet() {
		if p.Name.IsNull() {
			return 0, models.Invalid("name", "cannot be null")
		}
		sets = append(sets, "name = ?")
		args = append(args, p.Name.Arg())
	}
	if p.Description.IsSet() {
		sets = append(sets, "description = ?")
		args = append(args, p.Description.Arg())
	}
	if p.TargetDate.IsSet() {
		sets = append(sets, "target_date = ?")
		args = append(args, p.TargetDate.Arg())
	}
	if p.Status.IsSet() {
		status, ok := p.Status.Get()
		if !ok || !models.ValidGoalStatus(status) {
			return 0, models.Invalid("status", "outside the goal status set")
		}
		sets = append(sets, "status = ?")
		args = append(args, status)
	}

	if len(sets) == 0 {
		return OutcomeNoOp, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, models.Now(), id)

	affected, err := ExecWrite(ctx, r.db,
		"UPDATE goals SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

// UpdateStatus is a convenience wrapper for the common status transition.
func (r *GoalRepo) UpdateStatus(ctx context.Context, id int64, status string) (Outcome, error) {
	return r.Update(ctx, id, GoalPatch{Status: models.Set(status)})
}

// Delete removes the goal row.
func (r *GoalRepo) Delete(ctx context.Context, id int64) (Outcome, error) {
	affected, err := ExecWrite(ctx, r.db, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var (
		goal                    models.Goal
		description, targetDate sql.NullString
	)
	err := row.Scan(&goal.ID, &goal.Name, &description, &targetDate,
		&goal.Status, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	goal.Description = nullStr(description)
	goal.TargetDate = nullStr(targetDate)
	return &goal, nil
}
