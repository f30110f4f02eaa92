package engine

import (
	"github.com/tablestakes/proforma-api/internal/domain"
)

// CostBreakdown is the output of the cost composer for one month.
type CostBreakdown struct {
	TotalCogs   float64
	GrossProfit float64

	HourlyWages        float64
	ManagementSalaries float64
	PayrollBurden      float64
	TotalLabor         float64

	Occupancy    float64
	VariableOpex float64
	Marketing    float64
	GNA          float64
	TotalOpex    float64
}

// ComposeCosts computes COGS, labor and operating expenses for
// simulation month m against the given revenue breakdown.
func ComposeCosts(a *domain.AssumptionSet, m int, rev RevenueBreakdown) CostBreakdown {
	var out CostBreakdown

	cogs := a.Cogs
	out.TotalCogs = rev.Food*cogs.FoodPct + rev.Beverage*cogs.BeveragePct + rev.Other*cogs.OtherPct
	out.GrossProfit = rev.Total - out.TotalCogs

	labor := a.Labor
	fohHours := rev.TotalCovers * labor.FOHHoursPer100Covers / 100
	bohHours := rev.TotalCovers * labor.BOHHoursPer100Covers / 100
	out.HourlyWages = fohHours*labor.FOHHourlyRate + bohHours*labor.BOHHourlyRate

	// Legacy flat management salaries plus per-role salaries for roles
	// active this month.
	out.ManagementSalaries = (labor.GMSalary + labor.AGMSalary + labor.KMSalary) / 12
	for _, role := range labor.SalariedRoles {
		if role.ActiveInMonth(m) {
			out.ManagementSalaries += role.AnnualSalary / 12
		}
	}

	grossWages := out.HourlyWages + out.ManagementSalaries
	out.PayrollBurden = grossWages * labor.PayrollBurdenPct
	out.TotalLabor = grossWages + out.PayrollBurden

	opex := a.Opex
	out.Occupancy = opex.Rent + opex.CAM + opex.PropertyTax + opex.Utilities + opex.Insurance
	out.VariableOpex = rev.Total*(opex.LinenPct+opex.SmallwaresPct+opex.CleaningPct+opex.CreditCardFeePct) + opex.OtherMonthly

	out.Marketing = rev.Total * opex.MarketingPct
	if m <= opex.MarketingBoostMonths && opex.MarketingBoostMultiplier > 0 {
		out.Marketing *= opex.MarketingBoostMultiplier
	}

	out.GNA = rev.Total*opex.GNAPct + opex.CorporateOverheadMonthly
	out.TotalOpex = out.Occupancy + out.VariableOpex + out.Marketing + out.GNA

	return out
}
