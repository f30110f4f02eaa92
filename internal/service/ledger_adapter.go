package service

import (
	"context"

	"github.com/tablestakes/proforma-api/internal/domain"
	"github.com/tablestakes/proforma-api/internal/engine"
	"github.com/tablestakes/proforma-api/internal/store"
)

// NewRunLedgerAdapter creates a new adapter that allows the calc run
// and monthly summary stores to be used where an engine.RunLedger is
// expected.
func NewRunLedgerAdapter(calcRuns store.CalcRunStore, summaries store.MonthlySummaryStore) engine.RunLedger {
	return &runLedgerAdapter{
		calcRuns:  calcRuns,
		summaries: summaries,
	}
}

// runLedgerAdapter adapts the persistence stores to the engine.RunLedger interface
type runLedgerAdapter struct {
	calcRuns  store.CalcRunStore
	summaries store.MonthlySummaryStore
}

// CreateRun implements engine.RunLedger.CreateRun
func (a *runLedgerAdapter) CreateRun(ctx context.Context, run *domain.CalcRun) error {
	return a.calcRuns.Create(ctx, run)
}

// AppendMonth implements engine.RunLedger.AppendMonth
func (a *runLedgerAdapter) AppendMonth(ctx context.Context, summary *domain.MonthlySummary) error {
	return a.summaries.Insert(ctx, summary)
}

// FinalizeRun implements engine.RunLedger.FinalizeRun
func (a *runLedgerAdapter) FinalizeRun(ctx context.Context, run *domain.CalcRun) error {
	return a.calcRuns.Finalize(ctx, run)
}
