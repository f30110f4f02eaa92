package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/domain"
)

// AssumptionStore assembles the fully-resolved assumption aggregate for
// a scenario. It is strictly read-only: the CRUD lifecycle of
// assumption records belongs to the surrounding system, and the engine
// consumes exactly what this contract hands it.
type AssumptionStore interface {
	// GetAggregate loads the scenario and every assumption group into
	// one immutable snapshot. Returns ErrScenarioNotFound if the
	// scenario does not exist, and ErrAssumptionsNotFound if a required
	// assumption group is missing.
	GetAggregate(ctx context.Context, scenarioID uuid.UUID) (*domain.AssumptionSet, error)
}
