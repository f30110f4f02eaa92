package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func monthResultsFromCashFlows(flows []float64) []MonthResult {
	results := make([]MonthResult, 0, len(flows))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, cf := range flows {
		results = append(results, MonthResult{
			MonthIndex:  i + 1,
			PeriodStart: start.AddDate(0, i, 0),
			CashFlow:    cf,
		})
	}
	return results
}

func TestFoldCashAccumulates(t *testing.T) {
	t.Parallel()

	position := FoldCash(monthResultsFromCashFlows([]float64{-10000, 5000, 8000}), 20000)

	want := []string{"-30000", "-25000", "-17000"}
	for i, w := range want {
		expect, _ := decimal.NewFromString(w)
		if !position.Cumulative[i].Equal(expect) {
			t.Errorf("month %d: cumulative = %s, want %s", i+1, position.Cumulative[i], w)
		}
	}

	if position.PaybackMonth != nil {
		t.Errorf("Expected no payback month, got %d", *position.PaybackMonth)
	}
}

func TestFoldCashPaybackLatch(t *testing.T) {
	t.Parallel()

	// Cash crosses non-negative in month 3, dips negative in month 4,
	// and recovers in month 5. The latch must record month 3 and never
	// re-evaluate.
	flows := []float64{-5000, 4000, 2000, -3000, 10000}
	position := FoldCash(monthResultsFromCashFlows(flows), 0)

	if position.PaybackMonth == nil {
		t.Fatal("Expected payback month to be set")
	}
	if *position.PaybackMonth != 3 {
		t.Errorf("PaybackMonth = %d, want 3", *position.PaybackMonth)
	}

	// Month 4 cumulative is negative again; the latch holds.
	if !position.Cumulative[3].IsNegative() {
		t.Errorf("month 4 cumulative = %s, expected negative", position.Cumulative[3])
	}
}

func TestFoldCashPaybackAtExactZero(t *testing.T) {
	t.Parallel()

	// Crossing to exactly zero counts as payback (non-negative).
	position := FoldCash(monthResultsFromCashFlows([]float64{600, 400}), 1000)

	if position.PaybackMonth == nil || *position.PaybackMonth != 2 {
		t.Fatalf("Expected payback month 2, got %v", position.PaybackMonth)
	}
	if !position.Cumulative[1].IsZero() {
		t.Errorf("month 2 cumulative = %s, want 0", position.Cumulative[1])
	}
}

func TestFoldCashImmediatePaybackWithoutPreopening(t *testing.T) {
	t.Parallel()

	position := FoldCash(monthResultsFromCashFlows([]float64{100}), 0)
	if position.PaybackMonth == nil || *position.PaybackMonth != 1 {
		t.Fatalf("Expected payback month 1, got %v", position.PaybackMonth)
	}
}

func TestComputeMonthsLength(t *testing.T) {
	t.Parallel()

	a := projectionFixture()
	a.Scenario.Months = 60

	results := ComputeMonths(a)
	if len(results) != 60 {
		t.Fatalf("Expected 60 month results, got %d", len(results))
	}

	// Exactly months iterations, no early exit, indices in order.
	for i, r := range results {
		if r.MonthIndex != i+1 {
			t.Errorf("result %d has month index %d", i, r.MonthIndex)
		}
	}

	last := results[len(results)-1]
	wantLast := a.Scenario.OpeningMonth.AddDate(0, 59, 0)
	if !last.PeriodStart.Equal(wantLast) {
		t.Errorf("last period start = %v, want %v", last.PeriodStart, wantLast)
	}
}

func TestComputeMonthsZeroDebtScenario(t *testing.T) {
	t.Parallel()

	// months=12, ramp_months=12, flat seasonality, equity_pct=1: debt
	// service is zero every month and EBITDA equals net income.
	a := projectionFixture()
	a.Scenario.Months = 12
	a.Revenue.RampMonths = 12
	a.Revenue.SeasonalityCurve = nil
	a.Capex.EquityPct = 1

	for _, r := range ComputeMonths(a) {
		if r.DebtService != 0 {
			t.Errorf("month %d: debt service = %v, want 0", r.MonthIndex, r.DebtService)
		}
		if !almostEqual(r.EBITDA, r.NetIncome) {
			t.Errorf("month %d: EBITDA %v != NetIncome %v", r.MonthIndex, r.EBITDA, r.NetIncome)
		}
	}
}

func TestMoneyRoundsToCents(t *testing.T) {
	t.Parallel()

	got := Money(1234.5678)
	want := decimal.NewFromFloat(1234.57)
	if !got.Equal(want) {
		t.Errorf("Money(1234.5678) = %s, want %s", got, want)
	}

	if !Money(-0.005).Equal(decimal.NewFromFloat(-0.01)) {
		t.Errorf("Money(-0.005) = %s, want -0.01", Money(-0.005))
	}
}
