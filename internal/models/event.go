package models

// ValidAllDay reports whether v is a member of {0, 1}. The column is an
// integer flag, not a SQL boolean.
func ValidAllDay(v int) bool {
	return v == 0 || v == 1
}

// Event is a calendar entry spanning [StartTime, EndTime].
type Event struct {
	ID             int64
	Title          string
	Description    *string
	StartTime      string
	EndTime        string
	Location       *string
	IsAllDay       int
	RecurrenceRule *string
	CreatedAt      string
	UpdatedAt      string
}

func (e *Event) GetID() int64 { return e.ID }
