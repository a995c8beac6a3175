package tracker

import "errors"

var (
	// ErrStoreRead means records could not be loaded. The last good records stay in the state.
	ErrStoreRead = errors.New("failed to load records")

	// ErrStoreWrite means a mutation could not be persisted. The in-memory records are unchanged.
	ErrStoreWrite = errors.New("failed to save changes")

	// ErrInvalidRecord means a create or update request failed validation. Nothing was written.
	ErrInvalidRecord = errors.New("invalid record")
)
