package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablestakes/proforma-api/internal/domain"
)

// MonthResult is the pure per-month calculation output. It carries no
// threaded state; cumulative cash and payback live in the fold.
type MonthResult struct {
	MonthIndex  int
	PeriodStart time.Time
	Revenue     RevenueBreakdown
	Costs       CostBreakdown
	EBITDA      float64
	DebtService float64
	NetIncome   float64
	CashFlow    float64
}

// ComputeMonth runs the revenue and cost composers for simulation month
// m and derives EBITDA, debt service, net income and cash flow. Cash
// flow is EBITDA minus debt service; working-capital and tax effects
// are a known v1 simplification.
func ComputeMonth(a *domain.AssumptionSet, debt DebtSchedule, m int) MonthResult {
	periodStart := a.Scenario.OpeningMonth.AddDate(0, m-1, 0)

	rev := ComposeRevenue(a, m, periodStart)
	costs := ComposeCosts(a, m, rev)

	ebitda := costs.GrossProfit - costs.TotalLabor - costs.TotalOpex
	debtService := debt.PaymentForMonth(m)

	return MonthResult{
		MonthIndex:  m,
		PeriodStart: periodStart,
		Revenue:     rev,
		Costs:       costs,
		EBITDA:      ebitda,
		DebtService: debtService,
		NetIncome:   ebitda - debtService,
		CashFlow:    ebitda - debtService,
	}
}

// ComputeMonths computes every month of the scenario horizon. Each
// month is independent of the others, so this slice could be produced
// in parallel; the sequential part of the simulation is FoldCash.
func ComputeMonths(a *domain.AssumptionSet) []MonthResult {
	debt := NewDebtSchedule(a.Capex)
	results := make([]MonthResult, 0, a.Scenario.Months)
	for m := 1; m <= a.Scenario.Months; m++ {
		results = append(results, ComputeMonth(a, debt, m))
	}
	return results
}

// CashPosition is the outcome of the sequential cash fold: one
// cumulative cash value per month, and the payback month if cumulative
// cash ever crossed into non-negative territory.
type CashPosition struct {
	Cumulative   []decimal.Decimal
	PaybackMonth *int
}

// FoldCash performs the strictly sequential left-fold over monthly cash
// flows. Cumulative cash starts at the negated pre-opening capital.
// The payback month latches at the first month cumulative cash is
// non-negative and is never re-evaluated, even if cash later dips
// negative again. Accumulation is decimal to keep long horizons free of
// float drift.
func FoldCash(results []MonthResult, preopeningCapital float64) CashPosition {
	position := CashPosition{
		Cumulative: make([]decimal.Decimal, 0, len(results)),
	}

	cumulative := Money(preopeningCapital).Neg()
	for _, r := range results {
		cumulative = cumulative.Add(Money(r.CashFlow))
		position.Cumulative = append(position.Cumulative, cumulative)

		if position.PaybackMonth == nil && !cumulative.IsNegative() {
			m := r.MonthIndex
			position.PaybackMonth = &m
		}
	}

	return position
}

// Money converts an engine float to a monetary decimal rounded to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
