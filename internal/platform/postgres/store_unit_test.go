package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablestakes/proforma-api/internal/domain"
)

// fakeDBTX satisfies store.DBTX and counts calls. Operations that must
// be rejected before hitting the database should leave every counter at
// zero.
type fakeDBTX struct {
	execCalls     int
	queryCalls    int
	queryRowCalls int
}

func (f *fakeDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execCalls++
	return nil, errors.New("fake: exec not supported")
}

func (f *fakeDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errors.New("fake: prepare not supported")
}

func (f *fakeDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	f.queryCalls++
	return nil, errors.New("fake: query not supported")
}

func (f *fakeDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	f.queryRowCalls++
	return &sql.Row{}
}

func TestNewStoreConstructorsPanicOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresCalcRunStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresSummaryStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresAssumptionStore(nil, nil) })
}

func TestNewStoreConstructorsAcceptNilLogger(t *testing.T) {
	db := &fakeDBTX{}

	assert.NotNil(t, NewPostgresCalcRunStore(db, nil))
	assert.NotNil(t, NewPostgresSummaryStore(db, nil))
	assert.NotNil(t, NewPostgresAssumptionStore(db, nil))
}

func TestCalcRunStoreCreateRejectsBeforeDatabase(t *testing.T) {
	tests := []struct {
		name        string
		run         *domain.CalcRun
		expectedErr error
	}{
		{
			name: "invalid_run_missing_hash",
			run: &domain.CalcRun{
				ID:            uuid.New(),
				ScenarioID:    uuid.New(),
				EngineVersion: "1.0.0",
				Status:        domain.CalcRunStatusRunning,
				CreatedAt:     time.Now().UTC(),
			},
			expectedErr: domain.ErrEmptyInputsHash,
		},
		{
			name: "non_running_status",
			run: &domain.CalcRun{
				ID:            uuid.New(),
				ScenarioID:    uuid.New(),
				EngineVersion: "1.0.0",
				InputsHash:    "abc123",
				Status:        domain.CalcRunStatusSucceeded,
				CreatedAt:     time.Now().UTC(),
			},
			expectedErr: domain.ErrInvalidCalcRunStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDBTX{}
			s := NewPostgresCalcRunStore(db, nil)

			err := s.Create(context.Background(), tt.run)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Zero(t, db.execCalls, "rejected create must not reach the database")
		})
	}
}

func TestCalcRunStoreFinalizeRejectsNonTerminal(t *testing.T) {
	db := &fakeDBTX{}
	s := NewPostgresCalcRunStore(db, nil)

	run, err := domain.NewCalcRun(uuid.New(), "1.0.0", "abc123")
	require.NoError(t, err)
	require.Equal(t, domain.CalcRunStatusRunning, run.Status)

	err = s.Finalize(context.Background(), run)

	assert.ErrorIs(t, err, domain.ErrInvalidCalcRunStatus)
	assert.Zero(t, db.execCalls)
}

func TestSummaryStoreInsertRejectsInvalidSummary(t *testing.T) {
	tests := []struct {
		name        string
		summary     *domain.MonthlySummary
		expectedErr error
	}{
		{
			name: "missing_id",
			summary: &domain.MonthlySummary{
				CalcRunID:   uuid.New(),
				MonthIndex:  1,
				PeriodStart: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			expectedErr: domain.ErrEmptySummaryID,
		},
		{
			name: "missing_run_id",
			summary: &domain.MonthlySummary{
				ID:          uuid.New(),
				MonthIndex:  1,
				PeriodStart: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			expectedErr: domain.ErrEmptySummaryRunID,
		},
		{
			name: "zero_month_index",
			summary: &domain.MonthlySummary{
				ID:          uuid.New(),
				CalcRunID:   uuid.New(),
				MonthIndex:  0,
				PeriodStart: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			expectedErr: domain.ErrInvalidSummaryMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDBTX{}
			s := NewPostgresSummaryStore(db, nil)

			err := s.Insert(context.Background(), tt.summary)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Zero(t, db.execCalls, "rejected insert must not reach the database")
		})
	}
}

// fakeRowScanner feeds canned column values into scanCalcRun.
type fakeRowScanner struct {
	values []any
	err    error
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *uuid.UUID:
			*target = f.values[i].(uuid.UUID)
		case *string:
			*target = f.values[i].(string)
		case *sql.NullString:
			*target = f.values[i].(sql.NullString)
		case *time.Time:
			*target = f.values[i].(time.Time)
		case **time.Time:
			*target = f.values[i].(*time.Time)
		}
	}
	return nil
}

func TestScanCalcRun(t *testing.T) {
	runID := uuid.New()
	scenarioID := uuid.New()
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	completedAt := createdAt.Add(2 * time.Second)

	t.Run("terminal_run_with_error_message", func(t *testing.T) {
		scanner := &fakeRowScanner{values: []any{
			runID,
			scenarioID,
			"1.0.0",
			"deadbeef",
			string(domain.CalcRunStatusFailed),
			sql.NullString{String: "persistence failure at month 7", Valid: true},
			createdAt,
			&completedAt,
		}}

		run, err := scanCalcRun(scanner)
		require.NoError(t, err)
		assert.Equal(t, runID, run.ID)
		assert.Equal(t, scenarioID, run.ScenarioID)
		assert.Equal(t, domain.CalcRunStatusFailed, run.Status)
		assert.Equal(t, "persistence failure at month 7", run.ErrorMessage)
		require.NotNil(t, run.CompletedAt)
		assert.Equal(t, completedAt, *run.CompletedAt)
	})

	t.Run("running_run_with_null_fields", func(t *testing.T) {
		scanner := &fakeRowScanner{values: []any{
			runID,
			scenarioID,
			"1.0.0",
			"deadbeef",
			string(domain.CalcRunStatusRunning),
			sql.NullString{},
			createdAt,
			(*time.Time)(nil),
		}}

		run, err := scanCalcRun(scanner)
		require.NoError(t, err)
		assert.Equal(t, domain.CalcRunStatusRunning, run.Status)
		assert.Empty(t, run.ErrorMessage)
		assert.Nil(t, run.CompletedAt)
	})

	t.Run("scan_error_propagates", func(t *testing.T) {
		scanner := &fakeRowScanner{err: sql.ErrNoRows}

		run, err := scanCalcRun(scanner)
		assert.Nil(t, run)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestNullableString(t *testing.T) {
	assert.Equal(t, sql.NullString{String: "", Valid: false}, nullableString(""))
	assert.Equal(t, sql.NullString{String: "boom", Valid: true}, nullableString("boom"))
}
