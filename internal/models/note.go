package models

// Note is free-form markdown content, optionally attached to a task or a
// project. Title is optional, content is required.
type Note struct {
	ID        int64
	Title     *string
	Content   string
	TaskID    *int64
	ProjectID *int64
	CreatedAt string
	UpdatedAt string
}

func (n *Note) GetID() int64 { return n.ID }
