package models

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusArchived  = "archived"
)

var goalStatuses = map[string]struct{}{
	GoalStatusActive:    {},
	GoalStatusCompleted: {},
	GoalStatusArchived:  {},
}

// ValidGoalStatus reports whether s is a member of the goal status set.
func ValidGoalStatus(s string) bool {
	_, ok := goalStatuses[s]
	return ok
}

// Goal is a longer-horizon objective with an optional target date.
type Goal struct {
	ID          int64
	Name        string
	Description *string
	TargetDate  *string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

func (g *Goal) GetID() int64 { return g.ID }
