package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common validation errors for MonthlySummary
var (
	ErrEmptySummaryID        = errors.New("monthly summary ID cannot be empty")
	ErrEmptySummaryRunID     = errors.New("monthly summary calc run ID cannot be empty")
	ErrInvalidSummaryMonth   = errors.New("monthly summary month index must be at least 1")
	ErrZeroSummaryPeriodDate = errors.New("monthly summary period start date cannot be zero")
)

// MonthlySummary is the durable record of one simulated month within a
// calc run. Rows are write-once: they are inserted as the simulation
// loop advances and never updated in place. Monetary fields are
// decimal, rounded to cents at the engine boundary, so that hundreds of
// monthly accumulations do not drift.
type MonthlySummary struct {
	ID          uuid.UUID `json:"id"`
	CalcRunID   uuid.UUID `json:"calc_run_id"`
	MonthIndex  int       `json:"month_index"`
	PeriodStart time.Time `json:"period_start_date"`

	FoodRevenue          decimal.Decimal `json:"food_revenue"`
	BeverageRevenue      decimal.Decimal `json:"beverage_revenue"`
	OtherRevenue         decimal.Decimal `json:"other_revenue"`
	ServicePeriodRevenue decimal.Decimal `json:"service_period_revenue"`
	PDRRevenue           decimal.Decimal `json:"pdr_revenue"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalCovers          float64         `json:"total_covers"`

	TotalCogs   decimal.Decimal `json:"total_cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	TotalLabor  decimal.Decimal `json:"total_labor"`
	TotalOpex   decimal.Decimal `json:"total_opex"`

	EBITDA         decimal.Decimal `json:"ebitda"`
	DebtService    decimal.Decimal `json:"debt_service"`
	NetIncome      decimal.Decimal `json:"net_income"`
	CashFlow       decimal.Decimal `json:"cash_flow"`
	CumulativeCash decimal.Decimal `json:"cumulative_cash"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the MonthlySummary has valid identifying data.
// Financial fields are signed and intentionally unconstrained; EBITDA
// and cash flow are expected to go negative in early months.
func (s *MonthlySummary) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySummaryID
	}

	if s.CalcRunID == uuid.Nil {
		return ErrEmptySummaryRunID
	}

	if s.MonthIndex < 1 {
		return ErrInvalidSummaryMonth
	}

	if s.PeriodStart.IsZero() {
		return ErrZeroSummaryPeriodDate
	}

	return nil
}

// RunSummary is the derived rollup of a completed run, aggregated from
// the first twelve (or fewer, when the horizon is shorter) persisted
// monthly rows.
type RunSummary struct {
	Year1Revenue decimal.Decimal `json:"year1_revenue"`
	Year1EBITDA  decimal.Decimal `json:"year1_ebitda"`
	EBITDAMargin float64         `json:"ebitda_margin"`
	PaybackMonth *int            `json:"payback_month,omitempty"`
	TotalMonths  int             `json:"total_months"`
}
