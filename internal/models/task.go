package models

// Task statuses form a closed set; the schema does not enforce it, the
// managers do.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task priorities: 0 = low, 1 = medium, 2 = high.
const (
	PriorityLow    = 0
	PriorityMedium = 1
	PriorityHigh   = 2
)

var taskStatuses = map[string]struct{}{
	TaskStatusPending:    {},
	TaskStatusInProgress: {},
	TaskStatusCompleted:  {},
	TaskStatusCancelled:  {},
}

// ValidTaskStatus reports whether s is a member of the task status set.
func ValidTaskStatus(s string) bool {
	_, ok := taskStatuses[s]
	return ok
}

// ValidTaskPriority reports whether p is a member of {0, 1, 2}.
func ValidTaskPriority(p int) bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Task is a single to-do item, optionally attached to a project and
// optionally nested under a parent task.
type Task struct {
	ID           int64
	Title        string
	Description  *string
	Priority     int
	DueDate      *string
	Status       string
	ProjectID    *int64
	ParentTaskID *int64
	CreatedAt    string
	UpdatedAt    string
}

// GetID supports the CLI quiet output mode.
func (t *Task) GetID() int64 { return t.ID }
