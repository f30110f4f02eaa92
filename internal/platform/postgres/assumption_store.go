package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/domain"
	"github.com/tablestakes/proforma-api/internal/platform/logger"
	"github.com/tablestakes/proforma-api/internal/store"
)

// PostgresAssumptionStore implements the store.AssumptionStore
// interface. It only reads: assumption records are written by the
// surrounding system, and this store assembles them into the immutable
// snapshot one simulation run consumes.
type PostgresAssumptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAssumptionStore creates a new PostgreSQL implementation of
// the AssumptionStore interface. If logger is nil, a default logger is
// used.
func NewPostgresAssumptionStore(db store.DBTX, logger *slog.Logger) *PostgresAssumptionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAssumptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "assumption_store")),
	}
}

// Ensure PostgresAssumptionStore implements store.AssumptionStore interface
var _ store.AssumptionStore = (*PostgresAssumptionStore)(nil)

// GetAggregate implements store.AssumptionStore.GetAggregate
// It assembles the scenario plus every assumption group into one
// snapshot. A missing required group maps to store.ErrAssumptionsNotFound
// so callers can reject the run before any ledger entry exists.
func (s *PostgresAssumptionStore) GetAggregate(ctx context.Context, scenarioID uuid.UUID) (*domain.AssumptionSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	agg := &domain.AssumptionSet{}

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, months, start_month, opening_month
		FROM scenarios
		WHERE id = $1
	`, scenarioID).Scan(
		&agg.Scenario.ID,
		&agg.Scenario.Name,
		&agg.Scenario.Months,
		&agg.Scenario.StartMonth,
		&agg.Scenario.OpeningMonth,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("scenario not found", slog.String("scenario_id", scenarioID.String()))
			return nil, store.ErrScenarioNotFound
		}
		log.Error("failed to load scenario",
			slog.String("error", err.Error()),
			slog.String("scenario_id", scenarioID.String()))
		return nil, MapError(err)
	}

	if err := s.loadAssumptionGroups(ctx, scenarioID, agg); err != nil {
		return nil, err
	}
	if err := s.loadSalariedRoles(ctx, scenarioID, agg); err != nil {
		return nil, err
	}
	if err := s.loadServicePeriods(ctx, scenarioID, agg); err != nil {
		return nil, err
	}
	if err := s.loadPDRRooms(ctx, scenarioID, agg); err != nil {
		return nil, err
	}
	if err := s.loadPreopeningEntries(ctx, scenarioID, agg); err != nil {
		return nil, err
	}

	log.Debug("assumption aggregate assembled",
		slog.String("scenario_id", scenarioID.String()),
		slog.Int("months", agg.Scenario.Months),
		slog.Int("service_periods", len(agg.ServicePeriods)),
		slog.Int("pdr_rooms", len(agg.PDRRooms)))
	return agg, nil
}

// loadAssumptionGroups reads the five jsonb assumption groups. Each
// required group must be present and non-null.
func (s *PostgresAssumptionStore) loadAssumptionGroups(ctx context.Context, scenarioID uuid.UUID, agg *domain.AssumptionSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var revenue, cogs, labor, opex, capex []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT revenue, cogs, labor, opex, capex
		FROM assumption_sets
		WHERE scenario_id = $1
	`, scenarioID).Scan(&revenue, &cogs, &labor, &opex, &capex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("no assumption groups for scenario",
				slog.String("scenario_id", scenarioID.String()))
			return store.ErrAssumptionsNotFound
		}
		log.Error("failed to load assumption groups",
			slog.String("error", err.Error()),
			slog.String("scenario_id", scenarioID.String()))
		return MapError(err)
	}

	groups := []struct {
		name string
		raw  []byte
		dest any
	}{
		{"revenue", revenue, &agg.Revenue},
		{"cogs", cogs, &agg.Cogs},
		{"labor", labor, &agg.Labor},
		{"opex", opex, &agg.Opex},
		{"capex", capex, &agg.Capex},
	}
	for _, g := range groups {
		if len(g.raw) == 0 {
			log.Warn("assumption group missing",
				slog.String("scenario_id", scenarioID.String()),
				slog.String("group", g.name))
			return fmt.Errorf("%w: %s", store.ErrAssumptionsNotFound, g.name)
		}
		if err := json.Unmarshal(g.raw, g.dest); err != nil {
			log.Error("failed to decode assumption group",
				slog.String("error", err.Error()),
				slog.String("scenario_id", scenarioID.String()),
				slog.String("group", g.name))
			return fmt.Errorf("%w: malformed %s group: %v", store.ErrInvalidEntity, g.name, err)
		}
	}

	return nil
}

func (s *PostgresAssumptionStore) loadSalariedRoles(ctx context.Context, scenarioID uuid.UUID, agg *domain.AssumptionSet) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, annual_salary, start_month, end_month
		FROM salaried_roles
		WHERE scenario_id = $1
		ORDER BY name ASC, start_month ASC
	`, scenarioID)
	if err != nil {
		return MapError(err)
	}
	defer closeRows(ctx, s.logger, rows)

	for rows.Next() {
		var role domain.SalariedRole
		var endMonth sql.NullInt64
		if err := rows.Scan(&role.Name, &role.AnnualSalary, &role.StartMonth, &endMonth); err != nil {
			return err
		}
		if endMonth.Valid {
			end := int(endMonth.Int64)
			role.EndMonth = &end
		}
		agg.Labor.SalariedRoles = append(agg.Labor.SalariedRoles, role)
	}
	return rows.Err()
}

func (s *PostgresAssumptionStore) loadServicePeriods(ctx context.Context, scenarioID uuid.UUID, agg *domain.AssumptionSet) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, covers_per_service, days_per_week, food_check_avg, bev_check_avg
		FROM service_periods
		WHERE scenario_id = $1
		ORDER BY position ASC
	`, scenarioID)
	if err != nil {
		return MapError(err)
	}
	defer closeRows(ctx, s.logger, rows)

	for rows.Next() {
		var sp domain.ServicePeriod
		if err := rows.Scan(&sp.Name, &sp.CoversPerService, &sp.DaysPerWeek, &sp.FoodCheckAvg, &sp.BevCheckAvg); err != nil {
			return err
		}
		agg.ServicePeriods = append(agg.ServicePeriods, sp)
	}
	return rows.Err()
}

func (s *PostgresAssumptionStore) loadPDRRooms(ctx context.Context, scenarioID uuid.UUID, agg *domain.AssumptionSet) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, capacity, events_per_month, avg_party_size, avg_spend_per_person, ramp_months
		FROM pdr_rooms
		WHERE scenario_id = $1
		ORDER BY name ASC
	`, scenarioID)
	if err != nil {
		return MapError(err)
	}
	defer closeRows(ctx, s.logger, rows)

	for rows.Next() {
		var room domain.PDRRoom
		if err := rows.Scan(&room.Name, &room.Capacity, &room.EventsPerMonth, &room.AvgPartySize, &room.AvgSpendPerPerson, &room.RampMonths); err != nil {
			return err
		}
		agg.PDRRooms = append(agg.PDRRooms, room)
	}
	return rows.Err()
}

func (s *PostgresAssumptionStore) loadPreopeningEntries(ctx context.Context, scenarioID uuid.UUID, agg *domain.AssumptionSet) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT month_offset, amount
		FROM preopening_entries
		WHERE scenario_id = $1
		ORDER BY month_offset ASC
	`, scenarioID)
	if err != nil {
		return MapError(err)
	}
	defer closeRows(ctx, s.logger, rows)

	for rows.Next() {
		var entry domain.PreopeningEntry
		if err := rows.Scan(&entry.MonthOffset, &entry.Amount); err != nil {
			return err
		}
		agg.Preopening = append(agg.Preopening, entry)
	}
	return rows.Err()
}

// closeRows closes rows and logs any close error.
func closeRows(ctx context.Context, def *slog.Logger, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.FromContextOrDefault(ctx, def).Error("failed to close rows",
			slog.String("error", err.Error()))
	}
}
