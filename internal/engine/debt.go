package engine

import (
	"math"

	"github.com/tablestakes/proforma-api/internal/domain"
)

// DebtSchedule holds the loan parameters computed once per run. Only
// the payment schedule varies by month, so the numbers are derived up
// front and PaymentForMonth is a pure lookup.
type DebtSchedule struct {
	Principal          float64
	LenderFee          float64
	MonthlyRate        float64
	InterestOnlyMonths int
	TermMonths         int
	AmortizingPayment  float64
}

// NewDebtSchedule derives the debt schedule from the capital structure.
// Principal is the debt-funded share of total capex; an equity share of
// 1 or more means no debt and no debt service. A lender fee, when
// flagged capitalized, is added to principal before the payment is
// computed. A non-capitalized fee is computed but deliberately not
// applied to any expense line, matching the v1 model.
func NewDebtSchedule(capex *domain.CapexAssumptions) DebtSchedule {
	var d DebtSchedule
	d.InterestOnlyMonths = capex.InterestOnlyMonths
	d.TermMonths = capex.DebtTermMonths

	equityPct := capex.EquityPct
	if equityPct >= 1 {
		return d
	}

	d.Principal = capex.TotalCapex * (1 - equityPct)
	if d.Principal < 0 {
		d.Principal = 0
	}

	if capex.LenderFeePct > 0 {
		d.LenderFee = d.Principal * capex.LenderFeePct
		if capex.LenderFeeCapitalized {
			d.Principal += d.LenderFee
		}
	}

	d.MonthlyRate = capex.AnnualInterestRate / 12

	remaining := d.TermMonths - d.InterestOnlyMonths
	if d.Principal > 0 && d.MonthlyRate > 0 && remaining > 0 {
		d.AmortizingPayment = AmortizingPayment(d.Principal, d.MonthlyRate, remaining)
	}

	return d
}

// AmortizingPayment computes the standard constant amortizing payment
// that fully repays principal over termMonths at the given monthly
// rate. Zero principal or a zero rate yields zero rather than dividing
// by zero.
func AmortizingPayment(principal, monthlyRate float64, termMonths int) float64 {
	if principal == 0 || monthlyRate == 0 || termMonths <= 0 {
		return 0
	}
	power := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * monthlyRate * power / (power - 1)
}

// PaymentForMonth returns the debt service due in simulation month m
// (1-based): interest-only through the interest-only period, then the
// constant amortizing payment through the end of the debt term, then
// zero once the loan has matured.
func (d DebtSchedule) PaymentForMonth(m int) float64 {
	if d.Principal == 0 || d.MonthlyRate == 0 {
		return 0
	}
	if m <= d.InterestOnlyMonths {
		return d.Principal * d.MonthlyRate
	}
	if m > d.TermMonths {
		return 0
	}
	return d.AmortizingPayment
}
