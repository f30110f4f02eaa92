package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tablestakes/proforma-api/internal/domain"
)

// Version identifies the projection model revision recorded on every
// calc run. Bump when a formula change makes old and new runs
// incomparable.
const Version = "1.0.0"

// RunLedger records run lifecycle state and the per-month output rows.
// CreateRun must persist the run in the running state before the first
// month is simulated; AppendMonth rows are write-once; FinalizeRun
// records exactly one terminal transition.
type RunLedger interface {
	CreateRun(ctx context.Context, run *domain.CalcRun) error
	AppendMonth(ctx context.Context, summary *domain.MonthlySummary) error
	FinalizeRun(ctx context.Context, run *domain.CalcRun) error
}

// Engine turns one fixed assumption set into one deterministic output
// series, recording the run through the ledger.
type Engine struct {
	ledger RunLedger
	logger *slog.Logger
}

// New creates an Engine. If logger is nil, a default logger is used.
func New(ledger RunLedger, logger *slog.Logger) *Engine {
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		ledger: ledger,
		logger: logger.With(slog.String("component", "projection_engine")),
	}
}

// Run executes the full simulation for one assumption set: fingerprint
// the inputs, open a calc run in the running state, simulate every
// month in order, append each month's summary row, and finalize the run
// as succeeded or failed.
//
// Persistence failures mid-loop mark the run failed and leave already
// persisted rows in place (at-least-once, not atomic); callers must
// treat a failed run's partial rows as non-authoritative.
func (e *Engine) Run(ctx context.Context, a *domain.AssumptionSet) (*domain.CalcRun, []*domain.MonthlySummary, error) {
	if err := a.Validate(); err != nil {
		// No run record exists for input errors.
		return nil, nil, classifyInputError(err)
	}

	inputsHash, err := HashInputs(a)
	if err != nil {
		return nil, nil, domain.NewEngineError(domain.EngineErrorInvalidScenario, "failed to fingerprint inputs", err)
	}

	run, err := domain.NewCalcRun(a.Scenario.ID, Version, inputsHash)
	if err != nil {
		return nil, nil, domain.NewEngineError(domain.EngineErrorInvalidScenario, "failed to create calc run", err)
	}

	if err := e.ledger.CreateRun(ctx, run); err != nil {
		return nil, nil, domain.NewEngineError(domain.EngineErrorPersistence, "failed to open calc run", err)
	}

	e.logger.Info("calc run started",
		slog.String("run_id", run.ID.String()),
		slog.String("scenario_id", a.Scenario.ID.String()),
		slog.String("inputs_hash", inputsHash),
		slog.Int("months", a.Scenario.Months))

	results := ComputeMonths(a)
	position := FoldCash(results, a.TotalPreopeningCapital())

	summaries := make([]*domain.MonthlySummary, 0, len(results))
	for i, r := range results {
		summary := buildSummary(run.ID, r, position.Cumulative[i])
		if err := e.ledger.AppendMonth(ctx, summary); err != nil {
			return e.failRun(ctx, run, r.MonthIndex, err)
		}
		summaries = append(summaries, summary)
	}

	if err := run.Complete(); err != nil {
		return nil, nil, domain.NewEngineError(domain.EngineErrorPersistence, "failed to complete calc run", err)
	}
	if err := e.ledger.FinalizeRun(ctx, run); err != nil {
		return nil, nil, domain.NewEngineError(domain.EngineErrorPersistence, "failed to finalize calc run", err)
	}

	e.logger.Info("calc run succeeded",
		slog.String("run_id", run.ID.String()),
		slog.Int("months", len(summaries)),
		slog.Any("payback_month", position.PaybackMonth))

	return run, summaries, nil
}

// classifyInputError maps aggregate validation failures onto the engine
// error taxonomy: absent assumption groups are MissingAssumptions, a
// bad horizon is InvalidScenario.
func classifyInputError(err error) error {
	switch err {
	case domain.ErrMissingRevenueAssumptions,
		domain.ErrMissingCogsAssumptions,
		domain.ErrMissingLaborAssumptions,
		domain.ErrMissingOpexAssumptions,
		domain.ErrMissingCapexAssumptions:
		return domain.NewEngineError(domain.EngineErrorMissingAssumptions, "assumption set is incomplete", err)
	default:
		return domain.NewEngineError(domain.EngineErrorInvalidScenario, "scenario is not simulatable", err)
	}
}

// failRun marks the run failed with the triggering error message. Rows
// persisted before the failure are intentionally left in place.
func (e *Engine) failRun(ctx context.Context, run *domain.CalcRun, month int, cause error) (*domain.CalcRun, []*domain.MonthlySummary, error) {
	e.logger.Error("calc run failed",
		slog.String("run_id", run.ID.String()),
		slog.Int("month", month),
		slog.String("error", cause.Error()))

	if ferr := run.Fail(cause.Error()); ferr != nil {
		e.logger.Error("could not transition run to failed",
			slog.String("run_id", run.ID.String()),
			slog.String("error", ferr.Error()))
	} else if ferr := e.ledger.FinalizeRun(ctx, run); ferr != nil {
		e.logger.Error("could not persist failed run state",
			slog.String("run_id", run.ID.String()),
			slog.String("error", ferr.Error()))
	}

	return run, nil, domain.NewEngineError(domain.EngineErrorPersistence, "simulation aborted", cause)
}

// buildSummary converts a pure month result plus its folded cash
// position into the durable ledger row, rounding monetary figures to
// cents at this boundary.
func buildSummary(runID uuid.UUID, r MonthResult, cumulativeCash decimal.Decimal) *domain.MonthlySummary {
	return &domain.MonthlySummary{
		ID:          uuid.New(),
		CalcRunID:   runID,
		MonthIndex:  r.MonthIndex,
		PeriodStart: r.PeriodStart,

		FoodRevenue:          Money(r.Revenue.Food),
		BeverageRevenue:      Money(r.Revenue.Beverage),
		OtherRevenue:         Money(r.Revenue.Other),
		ServicePeriodRevenue: Money(r.Revenue.ServicePeriods),
		PDRRevenue:           Money(r.Revenue.PDR),
		TotalRevenue:         Money(r.Revenue.Total),
		TotalCovers:          r.Revenue.TotalCovers,

		TotalCogs:   Money(r.Costs.TotalCogs),
		GrossProfit: Money(r.Costs.GrossProfit),
		TotalLabor:  Money(r.Costs.TotalLabor),
		TotalOpex:   Money(r.Costs.TotalOpex),

		EBITDA:         Money(r.EBITDA),
		DebtService:    Money(r.DebtService),
		NetIncome:      Money(r.NetIncome),
		CashFlow:       Money(r.CashFlow),
		CumulativeCash: cumulativeCash,

		CreatedAt: time.Now().UTC(),
	}
}
