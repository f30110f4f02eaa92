package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/domain"
)

// CalcRunStore defines the run-ledger persistence contract for calc
// runs. A run must be created in the running state before any month is
// simulated; exactly one terminal transition is recorded afterward.
type CalcRunStore interface {
	// Create persists a new calc run. The run must be in the running
	// state; that is the only valid start state.
	Create(ctx context.Context, run *domain.CalcRun) error

	// Finalize records the run's single terminal transition (succeeded
	// or failed, with an optional error message). Returns
	// ErrRunFinalized if the stored run is no longer running, and
	// ErrCalcRunNotFound if it does not exist.
	Finalize(ctx context.Context, run *domain.CalcRun) error

	// GetByID retrieves a calc run by its unique ID.
	// Returns ErrCalcRunNotFound if the run does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CalcRun, error)

	// ListByScenario retrieves runs for a scenario, most recent first.
	ListByScenario(ctx context.Context, scenarioID uuid.UUID, limit int) ([]*domain.CalcRun, error)
}
