package engine

import (
	"time"

	"github.com/tablestakes/proforma-api/internal/domain"
)

// WeeksPerMonth converts weekly cadence assumptions to monthly figures.
// 4.33 is the average number of weeks in a calendar month.
const WeeksPerMonth = 4.33

// RevenueBreakdown is the output of the revenue composer for one month.
// TotalCovers counts seated dining covers only: service periods and PDR
// events do not contribute, since covers feed labor-hour scaling.
type RevenueBreakdown struct {
	Food           float64
	Beverage       float64
	Other          float64
	ServicePeriods float64
	PDR            float64
	Total          float64
	TotalCovers    float64
}

// RampFactor returns the linear revenue ramp multiplier for simulation
// month m (1-based): m/rampMonths capped at 1. A rampMonths below 1 is
// treated as 1, so the factor is 1 from the first month.
func RampFactor(m, rampMonths int) float64 {
	if rampMonths < 1 {
		rampMonths = 1
	}
	factor := float64(m) / float64(rampMonths)
	if factor > 1 {
		return 1
	}
	return factor
}

// SeasonalityFactor returns the multiplier for the given calendar
// month. A curve that is not exactly 12 entries long is malformed and
// every month falls back to 1.0; this is a recovered anomaly, never an
// error.
func SeasonalityFactor(curve []float64, calendarMonth time.Month) float64 {
	if len(curve) != 12 {
		return 1.0
	}
	return curve[int(calendarMonth)-1]
}

// resolveCheck resolves a per-daypart check average against the global
// fallback. Applied uniformly to food and beverage so the two lines
// cannot diverge in fallback behavior.
func resolveCheck(daypartValue *float64, globalValue float64) float64 {
	if daypartValue != nil {
		return *daypartValue
	}
	return globalValue
}

// ComposeRevenue computes the full revenue breakdown for simulation
// month m with calendar date periodStart. Revenue is the sum of three
// additive sources: daypart-based core revenue, named service periods,
// and event-based private dining.
func ComposeRevenue(a *domain.AssumptionSet, m int, periodStart time.Time) RevenueBreakdown {
	rev := a.Revenue
	ramp := RampFactor(m, rev.RampMonths)
	seasonality := SeasonalityFactor(rev.SeasonalityCurve, periodStart.Month())

	var out RevenueBreakdown

	for _, daypart := range domain.Dayparts {
		dp, ok := rev.Dayparts[daypart]
		if !ok {
			continue
		}
		covers := dp.AvgCovers * rev.DaysOpenPerWeek * WeeksPerMonth
		foodCheck := resolveCheck(dp.FoodCheckAvg, rev.GlobalFoodCheckAvg)
		bevCheck := resolveCheck(dp.BevCheckAvg, rev.GlobalBevCheckAvg)

		out.Food += covers * foodCheck * ramp * seasonality
		out.Beverage += covers * bevCheck * ramp * seasonality
		out.TotalCovers += covers
	}

	out.Other = (out.Food + out.Beverage) * rev.OtherMixPct

	// Service periods ride the main ramp, not a period-specific one,
	// and land directly on total revenue without a food/beverage split.
	for _, sp := range a.ServicePeriods {
		monthlyCovers := sp.CoversPerService * sp.DaysPerWeek * WeeksPerMonth
		out.ServicePeriods += monthlyCovers * (sp.FoodCheckAvg + sp.BevCheckAvg) * ramp * seasonality
	}

	// Each PDR room ramps on its own schedule.
	for _, room := range a.PDRRooms {
		base := room.EventsPerMonth * room.AvgPartySize * room.AvgSpendPerPerson
		out.PDR += base * RampFactor(m, room.RampMonths) * seasonality
	}

	out.Total = out.Food + out.Beverage + out.Other + out.ServicePeriods + out.PDR
	return out
}
