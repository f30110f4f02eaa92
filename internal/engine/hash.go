package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tablestakes/proforma-api/internal/domain"
)

// hashPayload is the canonical serialization of the output-affecting
// subset of an assumption set. Field order is fixed by the struct,
// named lists are sorted, map keys are sorted by encoding/json, and a
// malformed seasonality curve normalizes to absent — so two logically
// identical assumption sets hash identically regardless of how they
// were loaded.
type hashPayload struct {
	Months         int                      `json:"months"`
	StartMonth     string                   `json:"start_month"`
	OpeningMonth   string                   `json:"opening_month"`
	Revenue        domain.RevenueAssumptions `json:"revenue"`
	ServicePeriods []domain.ServicePeriod   `json:"service_periods,omitempty"`
	PDRRooms       []domain.PDRRoom         `json:"pdr_rooms,omitempty"`
	Cogs           domain.CogsAssumptions   `json:"cogs"`
	Labor          domain.LaborAssumptions  `json:"labor"`
	Opex           domain.OpexAssumptions   `json:"opex"`
	Capex          domain.CapexAssumptions  `json:"capex"`
	Preopening     float64                  `json:"preopening_capital"`
}

const hashMonthLayout = "2006-01"

// HashInputs computes the reproducibility fingerprint of an assumption
// set: a SHA-256 hex digest of its canonical serialization. Runs with
// byte-identical inputs always carry identical hashes, so callers can
// detect whether re-simulation would be redundant.
func HashInputs(a *domain.AssumptionSet) (string, error) {
	payload := hashPayload{
		Months:       a.Scenario.Months,
		StartMonth:   a.Scenario.StartMonth.Format(hashMonthLayout),
		OpeningMonth: a.Scenario.OpeningMonth.Format(hashMonthLayout),
		Revenue:      *a.Revenue,
		Cogs:         *a.Cogs,
		Labor:        *a.Labor,
		Opex:         *a.Opex,
		Capex:        *a.Capex,
		Preopening:   a.TotalPreopeningCapital(),
	}

	// A curve that the composer would ignore must not perturb the hash.
	if len(payload.Revenue.SeasonalityCurve) != 12 {
		payload.Revenue.SeasonalityCurve = nil
	}

	// Service periods are an ordered list (order is part of the model);
	// salaried roles and rooms are named sets, so they sort for
	// canonical form.
	payload.ServicePeriods = append([]domain.ServicePeriod(nil), a.ServicePeriods...)

	payload.PDRRooms = append([]domain.PDRRoom(nil), a.PDRRooms...)
	sort.Slice(payload.PDRRooms, func(i, j int) bool {
		return payload.PDRRooms[i].Name < payload.PDRRooms[j].Name
	})

	payload.Labor.SalariedRoles = append([]domain.SalariedRole(nil), a.Labor.SalariedRoles...)
	sort.Slice(payload.Labor.SalariedRoles, func(i, j int) bool {
		ri, rj := payload.Labor.SalariedRoles[i], payload.Labor.SalariedRoles[j]
		if ri.Name != rj.Name {
			return ri.Name < rj.Name
		}
		return ri.StartMonth < rj.StartMonth
	})

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize assumption set for hashing: %w", err)
	}

	digest := sha256.Sum256(raw)
	return hex.EncodeToString(digest[:]), nil
}
