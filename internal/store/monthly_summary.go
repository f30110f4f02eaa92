package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/domain"
)

// MonthlySummaryStore defines the persistence contract for monthly
// summary rows. Rows are write-once: inserted as the simulation loop
// advances and never updated in place.
type MonthlySummaryStore interface {
	// Insert persists one monthly summary row.
	Insert(ctx context.Context, summary *domain.MonthlySummary) error

	// ListByRun retrieves all rows for a calc run ordered by month index.
	// Returns an empty slice if the run has no rows.
	ListByRun(ctx context.Context, calcRunID uuid.UUID) ([]*domain.MonthlySummary, error)
}
