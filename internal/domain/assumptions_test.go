package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func validAssumptionSet() *AssumptionSet {
	return &AssumptionSet{
		Scenario: Scenario{
			ID:           uuid.New(),
			Name:         "base case",
			Months:       36,
			StartMonth:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			OpeningMonth: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		Revenue: &RevenueAssumptions{
			Dayparts: map[Daypart]DaypartAssumption{
				DaypartLunch:  {AvgCovers: 60},
				DaypartDinner: {AvgCovers: 120},
			},
			GlobalFoodCheckAvg: 42,
			GlobalBevCheckAvg:  18,
			DaysOpenPerWeek:    6,
			RampMonths:         6,
		},
		Cogs:  &CogsAssumptions{FoodPct: 0.28, BeveragePct: 0.22, OtherPct: 0.35},
		Labor: &LaborAssumptions{FOHHoursPer100Covers: 22, FOHHourlyRate: 18, BOHHoursPer100Covers: 28, BOHHourlyRate: 21, PayrollBurdenPct: 0.12},
		Opex:  &OpexAssumptions{Rent: 25000},
		Capex: &CapexAssumptions{TotalCapex: 1_500_000, EquityPct: 0.4, AnnualInterestRate: 0.08, DebtTermMonths: 120},
	}
}

func TestAssumptionSetValidate(t *testing.T) {
	t.Parallel()

	if err := validAssumptionSet().Validate(); err != nil {
		t.Fatalf("Expected valid aggregate, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*AssumptionSet)
		wantErr error
	}{
		{"zero months", func(a *AssumptionSet) { a.Scenario.Months = 0 }, ErrInvalidScenarioMonths},
		{"missing revenue", func(a *AssumptionSet) { a.Revenue = nil }, ErrMissingRevenueAssumptions},
		{"missing cogs", func(a *AssumptionSet) { a.Cogs = nil }, ErrMissingCogsAssumptions},
		{"missing labor", func(a *AssumptionSet) { a.Labor = nil }, ErrMissingLaborAssumptions},
		{"missing opex", func(a *AssumptionSet) { a.Opex = nil }, ErrMissingOpexAssumptions},
		{"missing capex", func(a *AssumptionSet) { a.Capex = nil }, ErrMissingCapexAssumptions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := validAssumptionSet()
			tc.mutate(a)
			if err := a.Validate(); err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSalariedRoleActiveInMonth(t *testing.T) {
	t.Parallel()

	end := 6
	bounded := SalariedRole{Name: "Chef de Cuisine", AnnualSalary: 95000, StartMonth: 3, EndMonth: &end}

	for m := 1; m <= 8; m++ {
		want := m >= 3 && m <= 6
		if got := bounded.ActiveInMonth(m); got != want {
			t.Errorf("month %d: expected active=%v, got %v", m, want, got)
		}
	}

	openEnded := SalariedRole{Name: "GM", AnnualSalary: 120000, StartMonth: 2}
	if openEnded.ActiveInMonth(1) {
		t.Error("Expected open-ended role inactive before start month")
	}
	if !openEnded.ActiveInMonth(240) {
		t.Error("Expected open-ended role active through end of horizon")
	}
}

func TestTotalPreopeningCapital(t *testing.T) {
	t.Parallel()

	a := validAssumptionSet()

	if got := a.TotalPreopeningCapital(); got != 0 {
		t.Errorf("Expected 0 for empty series, got %v", got)
	}

	// Pre-opening spend is recorded as negative outflows; the magnitude
	// is what seeds the payback calculation.
	a.Preopening = []PreopeningEntry{
		{MonthOffset: -3, Amount: -120000},
		{MonthOffset: -2, Amount: -80000},
		{MonthOffset: -1, Amount: -50000},
	}
	if got := a.TotalPreopeningCapital(); got != 250000 {
		t.Errorf("Expected 250000, got %v", got)
	}

	a.Preopening = []PreopeningEntry{
		{MonthOffset: -2, Amount: 90000},
		{MonthOffset: -1, Amount: 60000},
	}
	if got := a.TotalPreopeningCapital(); got != 150000 {
		t.Errorf("Expected 150000 for positive series, got %v", got)
	}
}
