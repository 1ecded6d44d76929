package entitlements

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Limit is a numeric plan cap. Unlimited marks a cap that is never reached.
type Limit int

const Unlimited Limit = -1

func (l Limit) Unbounded() bool {
	return l < 0
}

// Reached reports whether count has hit the cap.
func (l Limit) Reached(count int64) bool {
	if l.Unbounded() {
		return false
	}
	return count >= int64(l)
}

func (l Limit) String() string {
	if l.Unbounded() {
		return "unlimited"
	}
	return strconv.Itoa(int(l))
}

// MarshalJSON renders unbounded limits as null so API clients do not have to
// know the sentinel.
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.Unbounded() {
		return []byte("null"), nil
	}
	return json.Marshal(int(l))
}

// PlanLimits is the feature/limit bundle attached to a plan.
type PlanLimits struct {
	BillsPerMonth Limit `json:"bills_per_month"`
	Logins        Limit `json:"logins"`
	// Templates is declared per plan but not enforced by the evaluator.
	Templates Limit `json:"templates"`
	Proforma  bool  `json:"proforma"`
	GSTFiling bool  `json:"gst_filing"`
}

// Catalog maps every plan to its limits. It is a value type and is never
// mutated after construction.
type Catalog struct {
	limits map[Plan]PlanLimits
}

// NewCatalog builds a catalog from a table that must cover every plan.
func NewCatalog(table map[Plan]PlanLimits) (Catalog, error) {
	limits := make(map[Plan]PlanLimits, len(orderedPlans))
	for _, p := range orderedPlans {
		l, ok := table[p]
		if !ok {
			return Catalog{}, fmt.Errorf("catalog: missing limits for plan %q", p)
		}
		limits[p] = l
	}
	for p := range table {
		if !p.Valid() {
			return Catalog{}, fmt.Errorf("catalog: unknown plan %q", p)
		}
	}
	return Catalog{limits: limits}, nil
}

// DefaultCatalog returns the production plan table.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(map[Plan]PlanLimits{
		PlanFree: {
			BillsPerMonth: 10,
			Logins:        1,
			Templates:     1,
		},
		PlanBasic: {
			BillsPerMonth: Unlimited,
			Logins:        1,
			Templates:     1,
			Proforma:      true,
		},
		PlanPro: {
			BillsPerMonth: Unlimited,
			Logins:        4,
			Templates:     Unlimited,
			Proforma:      true,
		},
		PlanEnterprise: {
			BillsPerMonth: Unlimited,
			Logins:        Unlimited,
			Templates:     Unlimited,
			Proforma:      true,
			GSTFiling:     true,
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// LimitsFor returns the limits of plan. Values outside the enumeration get
// FREE limits.
func (c Catalog) LimitsFor(plan Plan) PlanLimits {
	if l, ok := c.limits[plan]; ok {
		return l
	}
	return c.limits[PlanFree]
}

// MinimumPlan returns the lowest tier whose limits satisfy pred.
func (c Catalog) MinimumPlan(pred func(PlanLimits) bool) (Plan, bool) {
	for _, p := range orderedPlans {
		if pred(c.LimitsFor(p)) {
			return p, true
		}
	}
	return "", false
}

// PlanEntry is a catalog row as exposed over the API.
type PlanEntry struct {
	Plan   Plan       `json:"plan"`
	Label  string     `json:"label"`
	Limits PlanLimits `json:"limits"`
}

// Entries lists the catalog in tier order.
func (c Catalog) Entries() []PlanEntry {
	out := make([]PlanEntry, 0, len(orderedPlans))
	for _, p := range orderedPlans {
		out = append(out, PlanEntry{Plan: p, Label: p.Label(), Limits: c.LimitsFor(p)})
	}
	return out
}
