package api

import (
	"errors"
	"net/http"

	"github.com/tablestakes/proforma-api/internal/service"
	"github.com/tablestakes/proforma-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrScenarioNotFound),
		errors.Is(err, service.ErrRunNotFound):
		return http.StatusNotFound

	// The scenario exists but cannot be simulated
	case errors.Is(err, service.ErrMissingAssumptions),
		errors.Is(err, service.ErrInvalidScenario):
		return http.StatusUnprocessableEntity

	// A terminal run cannot be transitioned again
	case errors.Is(err, store.ErrRunFinalized):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrScenarioNotFound):
		return "Scenario not found"

	case errors.Is(err, service.ErrRunNotFound):
		return "Calc run not found"

	case errors.Is(err, service.ErrMissingAssumptions):
		return "Scenario is missing required assumption groups"

	case errors.Is(err, service.ErrInvalidScenario):
		return "Scenario cannot be simulated"

	case errors.Is(err, store.ErrRunFinalized):
		return "Calc run is already finalized"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
