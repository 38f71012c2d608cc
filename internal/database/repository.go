package database

import (
	"context"
	"database/sql"

	"timekeeper/internal/models"
)

// Repository provides a unified handle to all entity managers.
type Repository struct {
	Tasks     *TaskRepo
	Projects  *ProjectRepo
	Goals     *GoalRepo
	Notes     *NoteRepo
	Events    *EventRepo
	Reminders *ReminderRepo
}

// NewRepository wraps a database handle with one repository per entity.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Tasks:     &TaskRepo{db: db},
		Projects:  &ProjectRepo{db: db},
		Goals:     &GoalRepo{db: db},
		Notes:     &NoteRepo{db: db},
		Events:    &EventRepo{db: db},
		Reminders: &ReminderRepo{db: db},
	}
}

// TasksForProject returns a project's tasks in default order. The
// relationship is the foreign key itself, so this lives on the repository
// rather than creating a dependency between the project and task repos.
func (r *Repository) TasksForProject(ctx context.Context, projectID int64) ([]*models.Task, error) {
	return r.Tasks.List(ctx, TaskFilter{ProjectID: &projectID}, "", "")
}
