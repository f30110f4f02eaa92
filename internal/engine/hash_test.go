package engine

import (
	"testing"

	"github.com/tablestakes/proforma-api/internal/domain"
)

func TestHashInputsDeterministic(t *testing.T) {
	t.Parallel()

	a := projectionFixture()

	first, err := HashInputs(a)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(first) != 64 {
		t.Errorf("Expected 64-char hex digest, got %d chars", len(first))
	}

	second, err := HashInputs(a)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if first != second {
		t.Errorf("Hash not deterministic: %s vs %s", first, second)
	}

	// A structurally identical aggregate built independently hashes the
	// same.
	if third, _ := HashInputs(projectionFixture()); third != first {
		t.Errorf("Identical aggregates hash differently: %s vs %s", third, first)
	}
}

func TestHashInputsStableUnderListReordering(t *testing.T) {
	t.Parallel()

	end := 12
	a := projectionFixture()
	a.Labor.SalariedRoles = []domain.SalariedRole{
		{Name: "GM", AnnualSalary: 120000, StartMonth: 1},
		{Name: "Chef", AnnualSalary: 95000, StartMonth: 2, EndMonth: &end},
	}
	a.PDRRooms = []domain.PDRRoom{
		{Name: "cellar room", EventsPerMonth: 4, AvgPartySize: 20, AvgSpendPerPerson: 150, RampMonths: 6},
		{Name: "atrium", EventsPerMonth: 2, AvgPartySize: 40, AvgSpendPerPerson: 120, RampMonths: 3},
	}

	reordered := projectionFixture()
	reordered.Labor.SalariedRoles = []domain.SalariedRole{
		{Name: "Chef", AnnualSalary: 95000, StartMonth: 2, EndMonth: &end},
		{Name: "GM", AnnualSalary: 120000, StartMonth: 1},
	}
	reordered.PDRRooms = []domain.PDRRoom{
		{Name: "atrium", EventsPerMonth: 2, AvgPartySize: 40, AvgSpendPerPerson: 120, RampMonths: 3},
		{Name: "cellar room", EventsPerMonth: 4, AvgPartySize: 20, AvgSpendPerPerson: 150, RampMonths: 6},
	}

	h1, err := HashInputs(a)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	h2, err := HashInputs(reordered)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if h1 != h2 {
		t.Errorf("Hash changed under list reordering: %s vs %s", h1, h2)
	}
}

func TestHashInputsMalformedCurveNormalizes(t *testing.T) {
	t.Parallel()

	// A malformed curve behaves as "no curve" in the composer, so it
	// must hash identically to an absent curve.
	withNil := projectionFixture()
	withNil.Revenue.SeasonalityCurve = nil

	withMalformed := projectionFixture()
	withMalformed.Revenue.SeasonalityCurve = []float64{1, 1, 1}

	h1, _ := HashInputs(withNil)
	h2, _ := HashInputs(withMalformed)
	if h1 != h2 {
		t.Errorf("Malformed curve perturbed the hash: %s vs %s", h1, h2)
	}

	// A valid curve does change the hash.
	curve := make([]float64, 12)
	for i := range curve {
		curve[i] = 1.1
	}
	withCurve := projectionFixture()
	withCurve.Revenue.SeasonalityCurve = curve
	h3, _ := HashInputs(withCurve)
	if h3 == h1 {
		t.Error("Valid curve did not change the hash")
	}
}

func TestHashInputsSensitiveToValues(t *testing.T) {
	t.Parallel()

	base, _ := HashInputs(projectionFixture())

	changed := projectionFixture()
	changed.Capex.EquityPct = 0.6
	h, _ := HashInputs(changed)
	if h == base {
		t.Error("Changing equity pct did not change the hash")
	}

	changed = projectionFixture()
	changed.Scenario.Months = 48
	h, _ = HashInputs(changed)
	if h == base {
		t.Error("Changing horizon did not change the hash")
	}

	changed = projectionFixture()
	changed.Preopening = append(changed.Preopening, domain.PreopeningEntry{MonthOffset: -3, Amount: -50000})
	h, _ = HashInputs(changed)
	if h == base {
		t.Error("Changing pre-opening capital did not change the hash")
	}
}

func TestHashInputsDoesNotMutateAggregate(t *testing.T) {
	t.Parallel()

	end := 12
	a := projectionFixture()
	a.Labor.SalariedRoles = []domain.SalariedRole{
		{Name: "GM", AnnualSalary: 120000, StartMonth: 1},
		{Name: "Chef", AnnualSalary: 95000, StartMonth: 2, EndMonth: &end},
	}

	if _, err := HashInputs(a); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The canonical sort happens on copies; the aggregate keeps its
	// declared order.
	if a.Labor.SalariedRoles[0].Name != "GM" {
		t.Error("HashInputs reordered the aggregate's salaried roles")
	}
}
