package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tablestakes/proforma-api/internal/domain"
	"github.com/tablestakes/proforma-api/internal/engine"
	"github.com/tablestakes/proforma-api/internal/platform/logger"
	"github.com/tablestakes/proforma-api/internal/store"
)

// ProjectionResult is the full outcome of one synchronous projection
// run: the ledger record, the monthly series, and the derived rollup.
type ProjectionResult struct {
	Run     *domain.CalcRun
	Months  []*domain.MonthlySummary
	Summary *domain.RunSummary
}

// ProjectionService provides projection-run operations.
type ProjectionService interface {
	// RunProjection loads the scenario's assumption aggregate, executes
	// the engine synchronously, and returns the completed run with its
	// monthly series and rollup.
	RunProjection(ctx context.Context, scenarioID uuid.UUID) (*ProjectionResult, error)

	// GetRun retrieves a calc run by its ID.
	GetRun(ctx context.Context, runID uuid.UUID) (*domain.CalcRun, error)

	// GetMonthlySummaries retrieves the persisted monthly series for a
	// run, ordered by month index.
	GetMonthlySummaries(ctx context.Context, runID uuid.UUID) ([]*domain.MonthlySummary, error)

	// GetRunSummary derives the rollup for a run from its persisted rows.
	GetRunSummary(ctx context.Context, runID uuid.UUID) (*domain.RunSummary, error)

	// ListRuns retrieves runs for a scenario, most recent first.
	ListRuns(ctx context.Context, scenarioID uuid.UUID, limit int) ([]*domain.CalcRun, error)
}

// projectionServiceImpl implements the ProjectionService interface
type projectionServiceImpl struct {
	assumptions store.AssumptionStore
	calcRuns    store.CalcRunStore
	summaries   store.MonthlySummaryStore
	engine      *engine.Engine
	logger      *slog.Logger
}

// NewProjectionService creates a new ProjectionService.
// It returns an error if any of the required dependencies are nil.
func NewProjectionService(
	assumptions store.AssumptionStore,
	calcRuns store.CalcRunStore,
	summaries store.MonthlySummaryStore,
	eng *engine.Engine,
	logger *slog.Logger,
) (ProjectionService, error) {
	if assumptions == nil {
		return nil, NewProjectionServiceError("init", "assumption store cannot be nil", nil)
	}
	if calcRuns == nil {
		return nil, NewProjectionServiceError("init", "calc run store cannot be nil", nil)
	}
	if summaries == nil {
		return nil, NewProjectionServiceError("init", "summary store cannot be nil", nil)
	}
	if eng == nil {
		return nil, NewProjectionServiceError("init", "engine cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &projectionServiceImpl{
		assumptions: assumptions,
		calcRuns:    calcRuns,
		summaries:   summaries,
		engine:      eng,
		logger:      logger.With(slog.String("component", "projection_service")),
	}, nil
}

// RunProjection implements ProjectionService.RunProjection
func (s *projectionServiceImpl) RunProjection(ctx context.Context, scenarioID uuid.UUID) (*ProjectionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	aggregate, err := s.assumptions.GetAggregate(ctx, scenarioID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrScenarioNotFound):
			return nil, ErrScenarioNotFound
		case errors.Is(err, store.ErrAssumptionsNotFound):
			// Fatal before any calc run exists: nothing is recorded in
			// the ledger for an incomplete aggregate.
			log.Warn("projection rejected for incomplete assumptions",
				slog.String("scenario_id", scenarioID.String()),
				slog.String("error", err.Error()))
			return nil, ErrMissingAssumptions
		default:
			return nil, NewProjectionServiceError("run", "failed to load assumption aggregate", err)
		}
	}

	run, months, err := s.engine.Run(ctx, aggregate)
	if err != nil {
		return s.mapEngineError(ctx, run, err)
	}

	summary := DeriveSummary(months)

	log.Info("projection run completed",
		slog.String("scenario_id", scenarioID.String()),
		slog.String("run_id", run.ID.String()),
		slog.Int("months", len(months)))

	return &ProjectionResult{Run: run, Months: months, Summary: summary}, nil
}

// mapEngineError translates the engine error taxonomy into the service
// error surface. A failed run record, when one exists, is still
// returned so callers can expose its ID.
func (s *projectionServiceImpl) mapEngineError(ctx context.Context, run *domain.CalcRun, err error) (*ProjectionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var engErr *domain.EngineError
	if errors.As(err, &engErr) {
		switch engErr.Kind {
		case domain.EngineErrorMissingAssumptions:
			return nil, ErrMissingAssumptions
		case domain.EngineErrorInvalidScenario:
			return nil, ErrInvalidScenario
		}
	}

	if run != nil {
		log.Error("projection run failed",
			slog.String("run_id", run.ID.String()),
			slog.String("error", err.Error()))
		return &ProjectionResult{Run: run}, NewProjectionServiceError("run", "simulation failed", err)
	}

	return nil, NewProjectionServiceError("run", "simulation failed", err)
}

// GetRun implements ProjectionService.GetRun
func (s *projectionServiceImpl) GetRun(ctx context.Context, runID uuid.UUID) (*domain.CalcRun, error) {
	run, err := s.calcRuns.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, store.ErrCalcRunNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, NewProjectionServiceError("get_run", "failed to load calc run", err)
	}
	return run, nil
}

// GetMonthlySummaries implements ProjectionService.GetMonthlySummaries
func (s *projectionServiceImpl) GetMonthlySummaries(ctx context.Context, runID uuid.UUID) ([]*domain.MonthlySummary, error) {
	// Distinguish "run has no rows" from "run does not exist".
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	months, err := s.summaries.ListByRun(ctx, runID)
	if err != nil {
		return nil, NewProjectionServiceError("get_months", "failed to load monthly summaries", err)
	}
	return months, nil
}

// GetRunSummary implements ProjectionService.GetRunSummary
func (s *projectionServiceImpl) GetRunSummary(ctx context.Context, runID uuid.UUID) (*domain.RunSummary, error) {
	months, err := s.GetMonthlySummaries(ctx, runID)
	if err != nil {
		return nil, err
	}
	return DeriveSummary(months), nil
}

// ListRuns implements ProjectionService.ListRuns
func (s *projectionServiceImpl) ListRuns(ctx context.Context, scenarioID uuid.UUID, limit int) ([]*domain.CalcRun, error) {
	runs, err := s.calcRuns.ListByScenario(ctx, scenarioID, limit)
	if err != nil {
		return nil, NewProjectionServiceError("list_runs", "failed to list calc runs", err)
	}
	return runs, nil
}

// DeriveSummary aggregates the rollup from persisted monthly rows: the
// first twelve months (or fewer when the horizon is shorter) feed the
// year-one figures, and the payback month is the first month whose
// cumulative cash is non-negative.
func DeriveSummary(months []*domain.MonthlySummary) *domain.RunSummary {
	summary := &domain.RunSummary{
		TotalMonths: len(months),
	}

	year1 := months
	if len(year1) > 12 {
		year1 = year1[:12]
	}

	revenue := decimal.Zero
	ebitda := decimal.Zero
	for _, m := range year1 {
		revenue = revenue.Add(m.TotalRevenue)
		ebitda = ebitda.Add(m.EBITDA)
	}
	summary.Year1Revenue = revenue
	summary.Year1EBITDA = ebitda
	if revenue.IsPositive() {
		margin, _ := ebitda.Div(revenue).Float64()
		summary.EBITDAMargin = margin
	}

	for _, m := range months {
		if !m.CumulativeCash.IsNegative() {
			month := m.MonthIndex
			summary.PaybackMonth = &month
			break
		}
	}

	return summary
}
