// Package service provides application-level orchestration of
// projection runs: assembling assumption aggregates, driving the
// engine, and deriving run rollups.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to
// HTTP status codes.
var (
	// ErrScenarioNotFound indicates the requested scenario does not
	// exist. API layer should map this to HTTP 404 Not Found.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrRunNotFound indicates the requested calc run does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrRunNotFound = errors.New("calc run not found")

	// ErrMissingAssumptions indicates a required assumption group is
	// absent, so no calc run was opened. API layer should map this to
	// HTTP 422 Unprocessable Entity.
	ErrMissingAssumptions = errors.New("assumption set is incomplete")

	// ErrInvalidScenario indicates the scenario cannot be simulated
	// (e.g. a non-positive horizon). API layer should map this to
	// HTTP 422 Unprocessable Entity.
	ErrInvalidScenario = errors.New("scenario is not simulatable")
)

// ProjectionServiceError is a custom error type for projection service errors.
type ProjectionServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ProjectionServiceError.
func (e *ProjectionServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("projection service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("projection service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProjectionServiceError) Unwrap() error {
	return e.Err
}

// NewProjectionServiceError creates a new ProjectionServiceError.
func NewProjectionServiceError(operation, message string, err error) *ProjectionServiceError {
	return &ProjectionServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
