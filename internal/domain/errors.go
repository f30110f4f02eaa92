// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// EngineErrorKind tags an EngineError with its failure category so
// callers can branch without string matching.
type EngineErrorKind string

// Engine error kinds.
const (
	// EngineErrorMissingAssumptions indicates a required assumption
	// group was absent. Fatal before any Calc Run is created.
	EngineErrorMissingAssumptions EngineErrorKind = "missing_assumptions"

	// EngineErrorInvalidScenario indicates the scenario horizon or
	// timing anchors are unusable.
	EngineErrorInvalidScenario EngineErrorKind = "invalid_scenario"

	// EngineErrorPersistence indicates a Run Ledger write failed during
	// the monthly loop. Fatal to the run; the Calc Run is marked failed.
	EngineErrorPersistence EngineErrorKind = "persistence_failure"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// EngineError is the tagged error type carried out of the projection
// engine in place of ad-hoc thrown values. Kind identifies the failure
// category; Err, when present, is the underlying cause.
type EngineError struct {
	Kind    EngineErrorKind
	Message string
	Err     error
}

// Error implements the error interface for EngineError.
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("projection engine %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("projection engine %s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a tagged EngineError.
func NewEngineError(kind EngineErrorKind, message string, err error) *EngineError {
	return &EngineError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsEngineErrorKind reports whether err is an EngineError of the given kind.
func IsEngineErrorKind(err error, kind EngineErrorKind) bool {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Kind == kind
	}
	return false
}
