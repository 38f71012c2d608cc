package models

const (
	ReminderStatusPending   = "pending"
	ReminderStatusTriggered = "triggered"
	ReminderStatusDismissed = "dismissed"
	ReminderStatusSnoozed   = "snoozed"
)

var reminderStatuses = map[string]struct{}{
	ReminderStatusPending:   {},
	ReminderStatusTriggered: {},
	ReminderStatusDismissed: {},
	ReminderStatusSnoozed:   {},
}

// ValidReminderStatus reports whether s is a member of the reminder status set.
func ValidReminderStatus(s string) bool {
	_, ok := reminderStatuses[s]
	return ok
}

// Reminder fires at ReminderTime. It may reference a task, an event, both,
// or neither; the data model does not enforce exclusivity.
type Reminder struct {
	ID           int64
	TaskID       *int64
	EventID      *int64
	ReminderTime string
	Message      *string
	Status       string
	CreatedAt    string
	UpdatedAt    string
}

func (r *Reminder) GetID() int64 { return r.ID }
