package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablestakes/proforma-api/internal/domain"
	"github.com/tablestakes/proforma-api/internal/service"
)

// Common response structures. Monetary fields are decimal and serialize
// as JSON strings, preserving exact cent values on the wire.

// CalcRunResponse defines the response data for a calc run record.
type CalcRunResponse struct {
	ID            string     `json:"id"`
	ScenarioID    string     `json:"scenario_id"`
	EngineVersion string     `json:"engine_version"`
	InputsHash    string     `json:"inputs_hash"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// MonthlySummaryResponse defines the response data for one simulated month.
type MonthlySummaryResponse struct {
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
}

// RunSummaryResponse defines the response data for a run's derived rollup.
type RunSummaryResponse struct {
	Year1Revenue decimal.Decimal `json:"year1_revenue"`
	Year1EBITDA  decimal.Decimal `json:"year1_ebitda"`
	EBITDAMargin float64         `json:"ebitda_margin"`
	PaybackMonth *int            `json:"payback_month,omitempty"`
	TotalMonths  int             `json:"total_months"`
}

// ProjectionRunResponse is returned when a projection run is triggered:
// the run record plus its derived rollup.
type ProjectionRunResponse struct {
	Run     CalcRunResponse    `json:"run"`
	Summary RunSummaryResponse `json:"summary"`
}

func calcRunToResponse(run *domain.CalcRun) CalcRunResponse {
	return CalcRunResponse{
		ID:            run.ID.String(),
		ScenarioID:    run.ScenarioID.String(),
		EngineVersion: run.EngineVersion,
		InputsHash:    run.InputsHash,
		Status:        string(run.Status),
		ErrorMessage:  run.ErrorMessage,
		CreatedAt:     run.CreatedAt,
		CompletedAt:   run.CompletedAt,
	}
}

func summaryToResponse(s *domain.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		MonthIndex:           s.MonthIndex,
		PeriodStart:          s.PeriodStart,
		FoodRevenue:          s.FoodRevenue,
		BeverageRevenue:      s.BeverageRevenue,
		OtherRevenue:         s.OtherRevenue,
		ServicePeriodRevenue: s.ServicePeriodRevenue,
		PDRRevenue:           s.PDRRevenue,
		TotalRevenue:         s.TotalRevenue,
		TotalCovers:          s.TotalCovers,
		TotalCogs:            s.TotalCogs,
		GrossProfit:          s.GrossProfit,
		TotalLabor:           s.TotalLabor,
		TotalOpex:            s.TotalOpex,
		EBITDA:               s.EBITDA,
		DebtService:          s.DebtService,
		NetIncome:            s.NetIncome,
		CashFlow:             s.CashFlow,
		CumulativeCash:       s.CumulativeCash,
	}
}

func runSummaryToResponse(s *domain.RunSummary) RunSummaryResponse {
	return RunSummaryResponse{
		Year1Revenue: s.Year1Revenue,
		Year1EBITDA:  s.Year1EBITDA,
		EBITDAMargin: s.EBITDAMargin,
		PaybackMonth: s.PaybackMonth,
		TotalMonths:  s.TotalMonths,
	}
}

func projectionResultToResponse(result *service.ProjectionResult) ProjectionRunResponse {
	return ProjectionRunResponse{
		Run:     calcRunToResponse(result.Run),
		Summary: runSummaryToResponse(result.Summary),
	}
}
