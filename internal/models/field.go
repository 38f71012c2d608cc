package models

// Field is a tri-state patch parameter: unset (leave the column untouched),
// set to a concrete value, or set to SQL NULL. A plain pointer cannot
// distinguish "omitted" from "null", which partial updates require.
type Field[T any] struct {
	set  bool
	null bool
	val  T
}

// Set returns a Field carrying a concrete value.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, val: v}
}

// Null returns a Field that clears the column to NULL.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field was supplied at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was supplied as an explicit NULL.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the concrete value and whether one is present.
func (f Field[T]) Get() (T, bool) {
	if f.set && !f.null {
		return f.val, true
	}
	var zero T
	return zero, false
}

// Arg returns the value as a driver argument: nil for NULL, the value otherwise.
// Only meaningful when IsSet is true.
func (f Field[T]) Arg() any {
	if f.null {
		return nil
	}
	return f.val
}
