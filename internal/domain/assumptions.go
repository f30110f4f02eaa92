package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for assumption aggregates
var (
	ErrMissingRevenueAssumptions = errors.New("revenue assumptions are required")
	ErrMissingCogsAssumptions    = errors.New("cogs assumptions are required")
	ErrMissingLaborAssumptions   = errors.New("labor assumptions are required")
	ErrMissingOpexAssumptions    = errors.New("opex assumptions are required")
	ErrMissingCapexAssumptions   = errors.New("capex assumptions are required")
	ErrInvalidScenarioMonths     = errors.New("scenario months must be at least 1")
)

// Scenario identifies the projection horizon for one assumption set.
// StartMonth anchors model creation; OpeningMonth anchors when the
// operating P&L begins. They may differ to model a pre-opening period.
type Scenario struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Months       int       `json:"months"`
	StartMonth   time.Time `json:"start_month"`
	OpeningMonth time.Time `json:"opening_month"`
}

// Daypart names the three core service windows of the revenue model.
type Daypart string

const (
	DaypartLunch     Daypart = "lunch"
	DaypartDinner    Daypart = "dinner"
	DaypartLateNight Daypart = "late_night"
)

// Dayparts lists the core service windows in model order.
var Dayparts = []Daypart{DaypartLunch, DaypartDinner, DaypartLateNight}

// DaypartAssumption holds the covers and check-average assumptions for
// one daypart. FoodCheckAvg and BevCheckAvg are optional; when nil the
// revenue model falls back to the global check averages on
// RevenueAssumptions.
type DaypartAssumption struct {
	AvgCovers    float64  `json:"avg_covers"`
	FoodCheckAvg *float64 `json:"food_check_avg,omitempty"`
	BevCheckAvg  *float64 `json:"bev_check_avg,omitempty"`
}

// RevenueAssumptions drives the daypart-based core revenue model.
// SeasonalityCurve carries exactly 12 multipliers, one per calendar
// month; a missing or malformed curve means every month uses 1.0.
type RevenueAssumptions struct {
	Dayparts           map[Daypart]DaypartAssumption `json:"dayparts"`
	GlobalFoodCheckAvg float64                       `json:"global_food_check_avg"`
	GlobalBevCheckAvg  float64                       `json:"global_bev_check_avg"`
	DaysOpenPerWeek    float64                       `json:"days_open_per_week"`
	RampMonths         int                           `json:"ramp_months"`
	SeasonalityCurve   []float64                     `json:"seasonality_curve,omitempty"`
	OtherMixPct        float64                       `json:"other_mix_pct"`
}

// ServicePeriod is a named recurring service (e.g. weekend brunch)
// whose revenue is added on top of the daypart model.
type ServicePeriod struct {
	Name             string  `json:"name"`
	CoversPerService float64 `json:"covers_per_service"`
	DaysPerWeek      float64 `json:"days_per_week"`
	FoodCheckAvg     float64 `json:"food_check_avg"`
	BevCheckAvg      float64 `json:"bev_check_avg"`
}

// PDRRoom is a bookable private dining room with its own revenue ramp,
// independent of the main ramp.
type PDRRoom struct {
	Name              string  `json:"name"`
	Capacity          int     `json:"capacity"`
	EventsPerMonth    float64 `json:"events_per_month"`
	AvgPartySize      float64 `json:"avg_party_size"`
	AvgSpendPerPerson float64 `json:"avg_spend_per_person"`
	RampMonths        int     `json:"ramp_months"`
}

// CogsAssumptions holds cost-of-goods percentages (0-1 fractions)
// applied against their respective revenue lines.
type CogsAssumptions struct {
	FoodPct     float64 `json:"food_pct"`
	BeveragePct float64 `json:"beverage_pct"`
	OtherPct    float64 `json:"other_pct"`
}

// SalariedRole is a salaried position active for a span of simulation
// months. EndMonth is inclusive; nil means the role continues through
// the end of the horizon.
type SalariedRole struct {
	Name         string  `json:"name"`
	AnnualSalary float64 `json:"annual_salary"`
	StartMonth   int     `json:"start_month"`
	EndMonth     *int    `json:"end_month,omitempty"`
}

// ActiveInMonth reports whether the role draws salary in simulation
// month m (1-based).
func (r SalariedRole) ActiveInMonth(m int) bool {
	if m < r.StartMonth {
		return false
	}
	return r.EndMonth == nil || m <= *r.EndMonth
}

// LaborAssumptions drives hourly labor (scaled by covers) and salaried
// management cost. GMSalary, AGMSalary and KMSalary are legacy flat
// annual salaries kept for older scenarios; newer scenarios use
// SalariedRoles.
type LaborAssumptions struct {
	FOHHoursPer100Covers float64        `json:"foh_hours_per_100_covers"`
	FOHHourlyRate        float64        `json:"foh_hourly_rate"`
	BOHHoursPer100Covers float64        `json:"boh_hours_per_100_covers"`
	BOHHourlyRate        float64        `json:"boh_hourly_rate"`
	GMSalary             float64        `json:"gm_salary"`
	AGMSalary            float64        `json:"agm_salary"`
	KMSalary             float64        `json:"km_salary"`
	SalariedRoles        []SalariedRole `json:"salaried_roles,omitempty"`
	PayrollBurdenPct     float64        `json:"payroll_burden_pct"`
}

// OpexAssumptions holds occupancy (flat monthly), variable
// (percentage-of-revenue), marketing and G&A operating expenses.
// MarketingBoostMultiplier applies to months 1..MarketingBoostMonths.
type OpexAssumptions struct {
	Rent                     float64 `json:"rent"`
	CAM                      float64 `json:"cam"`
	PropertyTax              float64 `json:"property_tax"`
	Utilities                float64 `json:"utilities"`
	Insurance                float64 `json:"insurance"`
	LinenPct                 float64 `json:"linen_pct"`
	SmallwaresPct            float64 `json:"smallwares_pct"`
	CleaningPct              float64 `json:"cleaning_pct"`
	CreditCardFeePct         float64 `json:"credit_card_fee_pct"`
	OtherMonthly             float64 `json:"other_monthly"`
	MarketingPct             float64 `json:"marketing_pct"`
	MarketingBoostMultiplier float64 `json:"marketing_boost_multiplier"`
	MarketingBoostMonths     int     `json:"marketing_boost_months"`
	GNAPct                   float64 `json:"gna_pct"`
	CorporateOverheadMonthly float64 `json:"corporate_overhead_monthly"`
}

// CapexAssumptions describes the capital structure: how much of the
// build-out is funded by equity versus debt, and the debt terms.
type CapexAssumptions struct {
	TotalCapex           float64 `json:"total_capex"`
	EquityPct            float64 `json:"equity_pct"`
	LenderFeePct         float64 `json:"lender_fee_pct"`
	LenderFeeCapitalized bool    `json:"lender_fee_capitalized"`
	AnnualInterestRate   float64 `json:"annual_interest_rate"`
	DebtTermMonths       int     `json:"debt_term_months"`
	InterestOnlyMonths   int     `json:"interest_only_months"`
}

// PreopeningEntry is one month of pre-opening capital spend. Amounts
// are signed; the engine sums the series to an absolute magnitude.
type PreopeningEntry struct {
	MonthOffset int     `json:"month_offset"`
	Amount      float64 `json:"amount"`
}

// AssumptionSet is the immutable, fully-resolved snapshot of all inputs
// needed for one simulation run. It is assembled by the persistence
// layer and never mutated by the engine.
type AssumptionSet struct {
	Scenario       Scenario           `json:"scenario"`
	Revenue        *RevenueAssumptions `json:"revenue"`
	ServicePeriods []ServicePeriod    `json:"service_periods,omitempty"`
	PDRRooms       []PDRRoom          `json:"pdr_rooms,omitempty"`
	Cogs           *CogsAssumptions   `json:"cogs"`
	Labor          *LaborAssumptions  `json:"labor"`
	Opex           *OpexAssumptions   `json:"opex"`
	Capex          *CapexAssumptions  `json:"capex"`
	Preopening     []PreopeningEntry  `json:"preopening,omitempty"`
}

// Validate checks that the aggregate carries every required assumption
// group and a usable scenario horizon. It is called before any Calc Run
// is created; a failure here means no run record exists at all.
func (a *AssumptionSet) Validate() error {
	if a.Scenario.Months < 1 {
		return ErrInvalidScenarioMonths
	}
	if a.Revenue == nil {
		return ErrMissingRevenueAssumptions
	}
	if a.Cogs == nil {
		return ErrMissingCogsAssumptions
	}
	if a.Labor == nil {
		return ErrMissingLaborAssumptions
	}
	if a.Opex == nil {
		return ErrMissingOpexAssumptions
	}
	if a.Capex == nil {
		return ErrMissingCapexAssumptions
	}
	return nil
}

// TotalPreopeningCapital sums the signed pre-opening cash series to the
// absolute magnitude of capital spent before opening.
func (a *AssumptionSet) TotalPreopeningCapital() float64 {
	var total float64
	for _, e := range a.Preopening {
		total += e.Amount
	}
	if total < 0 {
		return -total
	}
	return total
}
