package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/domain"
	"github.com/tablestakes/proforma-api/internal/store"
)

// mockAssumptionStore implements store.AssumptionStore for testing.
type mockAssumptionStore struct {
	aggregate *domain.AssumptionSet
	err       error
}

func (m *mockAssumptionStore) GetAggregate(ctx context.Context, scenarioID uuid.UUID) (*domain.AssumptionSet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.aggregate, nil
}

// mockCalcRunStore implements store.CalcRunStore for testing. It keeps
// created runs in memory so Finalize and GetByID observe Create.
type mockCalcRunStore struct {
	mu   sync.Mutex
	runs map[uuid.UUID]*domain.CalcRun

	createErr   error
	finalizeErr error
	listErr     error
}

func newMockCalcRunStore() *mockCalcRunStore {
	return &mockCalcRunStore{runs: map[uuid.UUID]*domain.CalcRun{}}
}

func (m *mockCalcRunStore) Create(ctx context.Context, run *domain.CalcRun) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *mockCalcRunStore) Finalize(ctx context.Context, run *domain.CalcRun) error {
	if m.finalizeErr != nil {
		return m.finalizeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.runs[run.ID]
	if !ok {
		return store.ErrCalcRunNotFound
	}
	if stored.Status != domain.CalcRunStatusRunning {
		return store.ErrRunFinalized
	}
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *mockCalcRunStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalcRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, store.ErrCalcRunNotFound
	}
	copied := *run
	return &copied, nil
}

func (m *mockCalcRunStore) ListByScenario(ctx context.Context, scenarioID uuid.UUID, limit int) ([]*domain.CalcRun, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := []*domain.CalcRun{}
	for _, run := range m.runs {
		if run.ScenarioID == scenarioID {
			copied := *run
			runs = append(runs, &copied)
		}
	}
	return runs, nil
}

// mockSummaryStore implements store.MonthlySummaryStore for testing.
type mockSummaryStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID][]*domain.MonthlySummary

	insertErr    error
	failInsertAt int // month index to fail on; 0 means never
	listErr      error
}

func newMockSummaryStore() *mockSummaryStore {
	return &mockSummaryStore{rows: map[uuid.UUID][]*domain.MonthlySummary{}}
}

func (m *mockSummaryStore) Insert(ctx context.Context, summary *domain.MonthlySummary) error {
	if m.insertErr != nil && (m.failInsertAt == 0 || summary.MonthIndex == m.failInsertAt) {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *summary
	m.rows[summary.CalcRunID] = append(m.rows[summary.CalcRunID], &copied)
	return nil
}

func (m *mockSummaryStore) ListByRun(ctx context.Context, calcRunID uuid.UUID) ([]*domain.MonthlySummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.MonthlySummary{}, m.rows[calcRunID]...), nil
}
