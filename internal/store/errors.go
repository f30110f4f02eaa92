package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants wrap this error.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrRunFinalized is returned when an update targets a calc run that
	// has already reached a terminal state. Terminal states are final.
	ErrRunFinalized = errors.New("calc run already finalized")

	// Entity-specific "not found" errors

	// ErrScenarioNotFound indicates that the requested scenario does not exist.
	ErrScenarioNotFound = fmt.Errorf("%w: scenario", ErrNotFound)

	// ErrCalcRunNotFound indicates that the requested calc run does not exist.
	ErrCalcRunNotFound = fmt.Errorf("%w: calc run", ErrNotFound)

	// ErrAssumptionsNotFound indicates that one or more required
	// assumption groups are missing for a scenario.
	ErrAssumptionsNotFound = fmt.Errorf("%w: assumption set", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "calc_run", "monthly_summary")
	Operation string // The operation that failed (e.g., "create", "insert")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
