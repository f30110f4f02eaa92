package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/domain"
	"github.com/tablestakes/proforma-api/internal/platform/logger"
	"github.com/tablestakes/proforma-api/internal/store"
)

// PostgresCalcRunStore implements the store.CalcRunStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCalcRunStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCalcRunStore creates a new PostgreSQL implementation of
// the CalcRunStore interface. If logger is nil, a default logger is used.
func NewPostgresCalcRunStore(db store.DBTX, logger *slog.Logger) *PostgresCalcRunStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCalcRunStore{
		db:     db,
		logger: logger.With(slog.String("component", "calc_run_store")),
	}
}

// Ensure PostgresCalcRunStore implements store.CalcRunStore interface
var _ store.CalcRunStore = (*PostgresCalcRunStore)(nil)

// Create implements store.CalcRunStore.Create
// It persists a new calc run, which must be in the running state.
func (s *PostgresCalcRunStore) Create(ctx context.Context, run *domain.CalcRun) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := run.Validate(); err != nil {
		log.Warn("calc run validation failed during create",
			slog.String("error", err.Error()),
			slog.String("run_id", run.ID.String()))
		return err
	}

	if run.Status != domain.CalcRunStatusRunning {
		log.Warn("rejecting calc run created in non-running state",
			slog.String("run_id", run.ID.String()),
			slog.String("status", string(run.Status)))
		return domain.ErrInvalidCalcRunStatus
	}

	query := `
		INSERT INTO calc_runs (id, scenario_id, engine_version, inputs_hash, status, error_message, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		run.ID,
		run.ScenarioID,
		run.EngineVersion,
		run.InputsHash,
		run.Status,
		nullableString(run.ErrorMessage),
		run.CreatedAt,
		run.CompletedAt,
	)

	if err != nil {
		log.Error("failed to create calc run",
			slog.String("error", err.Error()),
			slog.String("run_id", run.ID.String()),
			slog.String("scenario_id", run.ScenarioID.String()))
		return MapError(err)
	}

	log.Info("calc run created",
		slog.String("run_id", run.ID.String()),
		slog.String("scenario_id", run.ScenarioID.String()),
		slog.String("inputs_hash", run.InputsHash))
	return nil
}

// Finalize implements store.CalcRunStore.Finalize
// It records the run's single terminal transition. The WHERE clause
// only matches runs still in the running state, so a second finalize
// attempt surfaces as ErrRunFinalized rather than a silent overwrite.
func (s *PostgresCalcRunStore) Finalize(ctx context.Context, run *domain.CalcRun) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !run.IsTerminal() {
		log.Warn("finalize called with non-terminal status",
			slog.String("run_id", run.ID.String()),
			slog.String("status", string(run.Status)))
		return domain.ErrInvalidCalcRunStatus
	}

	query := `
		UPDATE calc_runs
		SET status = $1, error_message = $2, completed_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		run.Status,
		nullableString(run.ErrorMessage),
		run.CompletedAt,
		run.ID,
		domain.CalcRunStatusRunning,
	)
	if err != nil {
		log.Error("failed to finalize calc run",
			slog.String("error", err.Error()),
			slog.String("run_id", run.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("run_id", run.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		// Either the run does not exist or it already reached a
		// terminal state.
		var status string
		err := s.db.QueryRowContext(ctx,
			`SELECT status FROM calc_runs WHERE id = $1`, run.ID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrCalcRunNotFound
		}
		if err != nil {
			return MapError(err)
		}
		log.Warn("attempted to finalize an already finalized run",
			slog.String("run_id", run.ID.String()),
			slog.String("stored_status", status))
		return store.ErrRunFinalized
	}

	log.Info("calc run finalized",
		slog.String("run_id", run.ID.String()),
		slog.String("status", string(run.Status)))
	return nil
}

// GetByID implements store.CalcRunStore.GetByID
// Returns store.ErrCalcRunNotFound if the run does not exist.
func (s *PostgresCalcRunStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalcRun, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, scenario_id, engine_version, inputs_hash, status, error_message, created_at, completed_at
		FROM calc_runs
		WHERE id = $1
	`

	run, err := scanCalcRun(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("calc run not found", slog.String("run_id", id.String()))
			return nil, store.ErrCalcRunNotFound
		}
		log.Error("failed to get calc run by ID",
			slog.String("error", err.Error()),
			slog.String("run_id", id.String()))
		return nil, MapError(err)
	}

	return run, nil
}

// ListByScenario implements store.CalcRunStore.ListByScenario
// Runs are returned most recent first.
func (s *PostgresCalcRunStore) ListByScenario(ctx context.Context, scenarioID uuid.UUID, limit int) ([]*domain.CalcRun, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, scenario_id, engine_version, inputs_hash, status, error_message, created_at, completed_at
		FROM calc_runs
		WHERE scenario_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, scenarioID, limit)
	if err != nil {
		log.Error("failed to query calc runs by scenario",
			slog.String("error", err.Error()),
			slog.String("scenario_id", scenarioID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	runs := []*domain.CalcRun{}
	for rows.Next() {
		run, err := scanCalcRun(rows)
		if err != nil {
			log.Error("failed to scan calc run row",
				slog.String("error", err.Error()))
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return runs, nil
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalcRun(row rowScanner) (*domain.CalcRun, error) {
	var run domain.CalcRun
	var status string
	var errorMessage sql.NullString

	err := row.Scan(
		&run.ID,
		&run.ScenarioID,
		&run.EngineVersion,
		&run.InputsHash,
		&status,
		&errorMessage,
		&run.CreatedAt,
		&run.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Status = domain.CalcRunStatus(status)
	if errorMessage.Valid {
		run.ErrorMessage = errorMessage.String
	}
	return &run, nil
}

// nullableString converts an empty string to a SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
