package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"timekeeper/internal/models"
)

var projectSortColumns = map[string]struct{}{
	"id": {}, "name": {}, "created_at": {}, "updated_at": {},
}

const projectDefaultSort = "created_at"

const projectSelect = `SELECT id, name, description, created_at, updated_at FROM projects`

// ProjectRepo owns CRUD operations for the projects table.
type ProjectRepo struct {
	db *sql.DB
}

// NewProject carries the fields accepted when creating a project.
type NewProject struct {
	Name        string
	Description *string
}

// ProjectPatch is a sparse update for a project.
type ProjectPatch struct {
	Name        models.Field[string]
	Description models.Field[string]
}

// Add inserts a project and returns its generated id.
func (r *ProjectRepo) Add(ctx context.Context, p NewProject) (int64, error) {
	now := models.Now()
	return ExecInsert(ctx, r.db,
		`INSERT INTO projects (name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		p.Name, ptrArg(p.Description), now, now,
	)
}

// Get returns the project with the given id, or ErrNotFound.
func (r *ProjectRepo) Get(ctx context.Context, id int64) (*models.Project, error) {
	project, err := scanProject(r.db.QueryRowContext(ctx, projectSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return project, err
}

// List returns all projects ordered by the requested column and direction
// (falling back to created_at ASC).
func (r *ProjectRepo) List(ctx context.Context, sortBy, sortOrder string) ([]*models.Project, error) {
	query := projectSelect + " ORDER BY " +
		orderClause(sortBy, sortOrder, projectSortColumns, projectDefaultSort)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Update applies a sparse patch. The outcome is meaningful only when the
// returned error is nil.
func (r *ProjectRepo) Update(ctx context.Context, id int64, p ProjectPatch) (Outcome, error) {
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

	if len(sets) == 0 {
		return OutcomeNoOp, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, models.Now(), id)

	affected, err := ExecWrite(ctx, r.db,
		"UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

// Delete removes a project and nulls out project_id on every dependent task
// and note, refreshing their updated_at, all inside one transaction. Tasks
// and notes survive the deletion; only the link is severed.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) (Outcome, error) {
	outcome := OutcomeNotFound
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		now := models.Now()
		if _, err := ExecWrite(ctx, tx,
			"UPDATE tasks SET project_id = NULL, updated_at = ? WHERE project_id = ?",
			now, id); err != nil {
			return err
		}
		if _, err := ExecWrite(ctx, tx,
			"UPDATE notes SET project_id = NULL, updated_at = ? WHERE project_id = ?",
			now, id); err != nil {
			return err
		}
		affected, err := ExecWrite(ctx, tx, "DELETE FROM projects WHERE id = ?", id)
		if err != nil {
			return err
		}
		if affected > 0 {
			outcome = OutcomeApplied
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return outcome, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		project     models.Project
		description sql.NullString
	)
	err := row.Scan(&project.ID, &project.Name, &description,
		&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, err
	}
	project.Description = nullStr(description)
	return &project, nil
}
