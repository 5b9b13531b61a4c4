package history

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Latest when a file has no recorded runs.
var ErrNotFound = errors.New("no history for file")

// ErrDuplicateID is returned by Save when a record ID is already stored.
var ErrDuplicateID = errors.New("duplicate record id")

// StoreError represents an error from a store backend.
type StoreError struct {
	Backend   string // Store backend type ("sqlite", "memory")
	Operation string // Operation that failed ("save", "list", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("history error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new StoreError.
func NewStoreError(backend, operation string, cause error) *StoreError {
	return &StoreError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
