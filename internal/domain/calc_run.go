package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CalcRunStatus represents the lifecycle state of a calculation run
type CalcRunStatus string

// Possible calc run status values. Running is the only valid start
// state; Succeeded and Failed are terminal.
const (
	CalcRunStatusRunning   CalcRunStatus = "running"
	CalcRunStatusSucceeded CalcRunStatus = "succeeded"
	CalcRunStatusFailed    CalcRunStatus = "failed"
)

// Common validation errors for CalcRun
var (
	ErrEmptyCalcRunID         = errors.New("calc run ID cannot be empty")
	ErrEmptyCalcRunScenarioID = errors.New("calc run scenario ID cannot be empty")
	ErrEmptyEngineVersion     = errors.New("calc run engine version cannot be empty")
	ErrEmptyInputsHash        = errors.New("calc run inputs hash cannot be empty")
	ErrInvalidCalcRunStatus   = errors.New("invalid calc run status")

	// ErrRunFinalized is returned when a caller attempts to transition a
	// run that has already reached a terminal state. Terminal states are
	// final; this is a caller error, never silently accepted.
	ErrRunFinalized = errors.New("calc run is already finalized")
)

// CalcRun records one simulation invocation: which scenario ran, under
// which engine version, the reproducibility fingerprint of its inputs,
// and its lifecycle state. Re-running with identical inputs produces a
// new CalcRun with an identical InputsHash.
type CalcRun struct {
	ID            uuid.UUID     `json:"id"`
	ScenarioID    uuid.UUID     `json:"scenario_id"`
	EngineVersion string        `json:"engine_version"`
	InputsHash    string        `json:"inputs_hash"`
	Status        CalcRunStatus `json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// NewCalcRun creates a CalcRun in the running state. The run must exist
// in the ledger before any month is simulated.
func NewCalcRun(scenarioID uuid.UUID, engineVersion, inputsHash string) (*CalcRun, error) {
	run := &CalcRun{
		ID:            uuid.New(),
		ScenarioID:    scenarioID,
		EngineVersion: engineVersion,
		InputsHash:    inputsHash,
		Status:        CalcRunStatusRunning,
		CreatedAt:     time.Now().UTC(),
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}

	return run, nil
}

// Validate checks if the CalcRun has valid data.
func (r *CalcRun) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyCalcRunID
	}

	if r.ScenarioID == uuid.Nil {
		return ErrEmptyCalcRunScenarioID
	}

	if r.EngineVersion == "" {
		return ErrEmptyEngineVersion
	}

	if r.InputsHash == "" {
		return ErrEmptyInputsHash
	}

	if !isValidCalcRunStatus(r.Status) {
		return ErrInvalidCalcRunStatus
	}

	return nil
}

// Complete transitions the run to succeeded. Returns ErrRunFinalized if
// the run has already reached a terminal state.
func (r *CalcRun) Complete() error {
	if r.Status != CalcRunStatusRunning {
		return ErrRunFinalized
	}

	now := time.Now().UTC()
	r.Status = CalcRunStatusSucceeded
	r.CompletedAt = &now
	return nil
}

// Fail transitions the run to failed, attaching the triggering error
// message. Returns ErrRunFinalized if the run has already reached a
// terminal state.
func (r *CalcRun) Fail(message string) error {
	if r.Status != CalcRunStatusRunning {
		return ErrRunFinalized
	}

	now := time.Now().UTC()
	r.Status = CalcRunStatusFailed
	r.ErrorMessage = message
	r.CompletedAt = &now
	return nil
}

// IsTerminal reports whether the run has reached a final state.
func (r *CalcRun) IsTerminal() bool {
	return r.Status == CalcRunStatusSucceeded || r.Status == CalcRunStatusFailed
}

// isValidCalcRunStatus checks if the given status is a valid CalcRunStatus.
func isValidCalcRunStatus(status CalcRunStatus) bool {
	switch status {
	case CalcRunStatusRunning, CalcRunStatusSucceeded, CalcRunStatusFailed:
		return true
	default:
		return false
	}
}
