package models

import "fmt"

// ValidationError reports caller-supplied input rejected before any write:
// an enum value outside its closed set, a NULL aimed at a NOT NULL column,
// or structurally invalid import data.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
