package models

type fieldState uint8

const (
	fieldUnchanged fieldState = iota
	fieldSet
	fieldCleared
)

// Field is a tri-state update value: unchanged (zero value), set to a value, or cleared
type Field[T any] struct {
	state fieldState
	value T
}

// Set returns a field that assigns v
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Clear returns a field that resets the target to its zero value
func Clear[T any]() Field[T] {
	return Field[T]{state: fieldCleared}
}

// Changed reports whether the field is set or cleared
func (f Field[T]) Changed() bool {
	return f.state != fieldUnchanged
}

// IsCleared reports whether the field clears its target
func (f Field[T]) IsCleared() bool {
	return f.state == fieldCleared
}

// Value returns the assigned value and whether the field is in the set state
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == fieldSet
}

// Resolve returns the value the target should hold after the update
func (f Field[T]) Resolve(current T) T {
	switch f.state {
	case fieldSet:
		return f.value
	case fieldCleared:
		var zero T
		return zero
	default:
		return current
	}
}
