package models

// Project groups tasks and notes. Deleting a project never deletes its
// dependents; their project_id is nulled instead.
type Project struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   string
	UpdatedAt   string
}

func (p *Project) GetID() int64 { return p.ID }
