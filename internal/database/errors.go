package database

import "errors"

// ErrNotFound is returned by Get operations when no row has the given id.
var ErrNotFound = errors.New("record not found")

// Outcome discriminates the result of update and delete operations so that
// "no such id" and "nothing to do" are distinguishable from each other and
// from validation failures (which surface as *models.ValidationError).
type Outcome int

const (
	// OutcomeNotFound means no row with the target id exists.
	OutcomeNotFound Outcome = iota
	// OutcomeNoOp means the call succeeded without touching storage
	// (an update with zero supplied fields).
	OutcomeNoOp
	// OutcomeApplied means the row was updated or deleted.
	OutcomeApplied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeNoOp:
		return "no_op"
	case OutcomeApplied:
		return "applied"
	default:
		return "unknown"
	}
}
