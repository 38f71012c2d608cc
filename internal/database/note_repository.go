package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"timekeeper/internal/models"
)

var noteSortColumns = map[string]struct{}{
	"id": {}, "title": {}, "created_at": {}, "updated_at": {},
}

const noteDefaultSort = "created_at"

const noteSelect = `SELECT id, title, content, task_id, project_id,
	created_at, updated_at FROM notes`

// NoteRepo owns CRUD operations for the notes table.
type NoteRepo struct {
	db *sql.DB
}

// NewNote carries the fields accepted when creating a note. Content is the
// only required field.
type NewNote struct {
	Title     *string
	Content   string
	TaskID    *int64
	ProjectID *int64
}

// NotePatch is a sparse update for a note.
type NotePatch struct {
	Title     models.Field[string]
	Content   models.Field[string]
	TaskID    models.Field[int64]
	ProjectID models.Field[int64]
}

// Add inserts a note and returns its generated id.
func (r *NoteRepo) Add(ctx context.Context, n NewNote) (int64, error) {
	now := models.Now()
	return ExecInsert(ctx, r.db,
		`INSERT INTO notes (title, content, task_id, project_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ptrArg(n.Title), n.Content, ptrArg(n.TaskID), ptrArg(n.ProjectID), now, now,
	)
}

// Get returns the note with the given id, or ErrNotFound.
func (r *NoteRepo) Get(ctx context.Context, id int64) (*models.Note, error) {
	note, err := scanNote(r.db.QueryRowContext(ctx, noteSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return note, err
}

// List returns all notes ordered by the requested column and direction
// (falling back to created_at ASC).
func (r *NoteRepo) List(ctx context.Context, sortBy, sortOrder string) ([]*models.Note, error) {
	query := noteSelect + " ORDER BY " +
		orderClause(sortBy, sortOrder, noteSortColumns, noteDefaultSort)
	return r.queryNotes(ctx, query)
}

// ForTask returns the notes attached to a task, oldest first.
func (r *NoteRepo) ForTask(ctx context.Context, taskID int64) ([]*models.Note, error) {
	return r.queryNotes(ctx, noteSelect+" WHERE task_id = ? ORDER BY created_at ASC", taskID)
}

// ForProject returns the notes attached to a project, oldest first.
func (r *NoteRepo) ForProject(ctx context.Context, projectID int64) ([]*models.Note, error) {
	return r.queryNotes(ctx, noteSelect+" WHERE project_id = ? ORDER BY created_at ASC", projectID)
}

// Update applies a sparse patch. The outcome is meaningful only when the
// returned error is nil.
func (r *NoteRepo) Update(ctx context.Context, id int64, p NotePatch) (Outcome, error) {
	var sets []string
	var args []any

	if p.Title.IsSet() {
		sets = append(sets, "title = ?")
		args = append(args, p.Title.Arg())
	}
	if p.Content.IsSet() {
		if p.Content.IsNull() {
			return 0, models.Invalid("content", "cannot be null")
		}
		sets = append(sets, "content = ?")
		args = append(args, p.Content.Arg())
	}
	if p.TaskID.IsSet() {
		sets = append(sets, "task_id = ?")
		args = append(args, p.TaskID.Arg())
	}
	if p.ProjectID.IsSet() {
		sets = append(sets, "project_id = ?")
		args = append(args, p.ProjectID.Arg())
	}

	if len(sets) == 0 {
		return OutcomeNoOp, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, models.Now(), id)

	affected, err := ExecWrite(ctx, r.db,
		"UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

// Delete removes the note row.
func (r *NoteRepo) Delete(ctx context.Context, id int64) (Outcome, error) {
	affected, err := ExecWrite(ctx, r.db, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeApplied, nil
}

func (r *NoteRepo) queryNotes(ctx context.Context, query string, args ...any) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		note              models.Note
		title             sql.NullString
		taskID, projectID sql.NullInt64
	)
	err := row.Scan(&note.ID, &title, &note.Content, &taskID, &projectID,
		&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	note.Title = nullStr(title)
	note.TaskID = nullID(taskID)
	note.ProjectID = nullID(projectID)
	return &note, nil
}
