package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/domain"
	"github.com/tablestakes/proforma-api/internal/platform/logger"
	"github.com/tablestakes/proforma-api/internal/store"
)

// PostgresSummaryStore implements the store.MonthlySummaryStore
// interface using a PostgreSQL database as the storage backend.
// Monthly summary rows are write-once; the store exposes no update.
type PostgresSummaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSummaryStore creates a new PostgreSQL implementation of
// the MonthlySummaryStore interface. If logger is nil, a default
// logger is used.
func NewPostgresSummaryStore(db store.DBTX, logger *slog.Logger) *PostgresSummaryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSummaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "monthly_summary_store")),
	}
}

// Ensure PostgresSummaryStore implements store.MonthlySummaryStore interface
var _ store.MonthlySummaryStore = (*PostgresSummaryStore)(nil)

// Insert implements store.MonthlySummaryStore.Insert
// It persists one monthly summary row. Rows are keyed by
// (calc_run_id, month_index); a duplicate insert is a caller bug and
// surfaces as store.ErrInvalidEntity via the unique constraint.
func (s *PostgresSummaryStore) Insert(ctx context.Context, summary *domain.MonthlySummary) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := summary.Validate(); err != nil {
		log.Warn("monthly summary validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("calc_run_id", summary.CalcRunID.String()),
			slog.Int("month_index", summary.MonthIndex))
		return err
	}

	query := `
		INSERT INTO monthly_summaries (
			id, calc_run_id, month_index, period_start_date,
			food_revenue, beverage_revenue, other_revenue,
			service_period_revenue, pdr_revenue, total_revenue, total_covers,
			total_cogs, gross_profit, total_labor, total_opex,
			ebitda, debt_service, net_income, cash_flow, cumulative_cash,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		summary.ID,
		summary.CalcRunID,
		summary.MonthIndex,
		summary.PeriodStart,
		summary.FoodRevenue,
		summary.BeverageRevenue,
		summary.OtherRevenue,
		summary.ServicePeriodRevenue,
		summary.PDRRevenue,
		summary.TotalRevenue,
		summary.TotalCovers,
		summary.TotalCogs,
		summary.GrossProfit,
		summary.TotalLabor,
		summary.TotalOpex,
		summary.EBITDA,
		summary.DebtService,
		summary.NetIncome,
		summary.CashFlow,
		summary.CumulativeCash,
		summary.CreatedAt,
	)

	if err != nil {
		log.Error("failed to insert monthly summary",
			slog.String("error", err.Error()),
			slog.String("calc_run_id", summary.CalcRunID.String()),
			slog.Int("month_index", summary.MonthIndex))
		return MapError(err)
	}

	log.Debug("monthly summary inserted",
		slog.String("calc_run_id", summary.CalcRunID.String()),
		slog.Int("month_index", summary.MonthIndex))
	return nil
}

// ListByRun implements store.MonthlySummaryStore.ListByRun
// Rows are ordered by month index. Returns an empty slice when the run
// has no persisted rows.
func (s *PostgresSummaryStore) ListByRun(ctx context.Context, calcRunID uuid.UUID) ([]*domain.MonthlySummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, calc_run_id, month_index, period_start_date,
			food_revenue, beverage_revenue, other_revenue,
			service_period_revenue, pdr_revenue, total_revenue, total_covers,
			total_cogs, gross_profit, total_labor, total_opex,
			ebitda, debt_service, net_income, cash_flow, cumulative_cash,
			created_at
		FROM monthly_summaries
		WHERE calc_run_id = $1
		ORDER BY month_index ASC
	`

	rows, err := s.db.QueryContext(ctx, query, calcRunID)
	if err != nil {
		log.Error("failed to query monthly summaries",
			slog.String("error", err.Error()),
			slog.String("calc_run_id", calcRunID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	summaries := []*domain.MonthlySummary{}
	for rows.Next() {
		var sm domain.MonthlySummary
		err := rows.Scan(
			&sm.ID,
			&sm.CalcRunID,
			&sm.MonthIndex,
			&sm.PeriodStart,
			&sm.FoodRevenue,
			&sm.BeverageRevenue,
			&sm.OtherRevenue,
			&sm.ServicePeriodRevenue,
			&sm.PDRRevenue,
			&sm.TotalRevenue,
			&sm.TotalCovers,
			&sm.TotalCogs,
			&sm.GrossProfit,
			&sm.TotalLabor,
			&sm.TotalOpex,
			&sm.EBITDA,
			&sm.DebtService,
			&sm.NetIncome,
			&sm.CashFlow,
			&sm.CumulativeCash,
			&sm.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan monthly summary row",
				slog.String("error", err.Error()))
			return nil, err
		}
		summaries = append(summaries, &sm)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("monthly summaries listed",
		slog.String("calc_run_id", calcRunID.String()),
		slog.Int("count", len(summaries)))
	return summaries, nil
}
