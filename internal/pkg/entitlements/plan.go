package entitlements

import "strings"

type Plan string

const (
	PlanFree       Plan = "free"
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// orderedPlans lists every plan from the least to the most entitled tier.
var orderedPlans = []Plan{PlanFree, PlanBasic, PlanPro, PlanEnterprise}

// Plans returns all plans in ascending tier order.
func Plans() []Plan {
	out := make([]Plan, len(orderedPlans))
	copy(out, orderedPlans)
	return out
}

// ParsePlan validates an untrusted plan name. Matching ignores case and
// surrounding whitespace; anything outside the closed set is rejected.
func ParsePlan(raw string) (Plan, bool) {
	p := Plan(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range orderedPlans {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// NormalizePlan is ParsePlan with a FREE fallback.
func NormalizePlan(raw string) Plan {
	if p, ok := ParsePlan(raw); ok {
		return p
	}
	return PlanFree
}

// Rank orders plans by tier. Unknown values rank with FREE.
func (p Plan) Rank() int {
	for i, known := range orderedPlans {
		if p == known {
			return i
		}
	}
	return 0
}

func (p Plan) Valid() bool {
	_, ok := ParsePlan(string(p))
	return ok
}

// Label is the display name used in denial reasons.
func (p Plan) Label() string {
	switch p {
	case PlanBasic:
		return "Basic"
	case PlanPro:
		return "Pro"
	case PlanEnterprise:
		return "Enterprise"
	default:
		return "Free"
	}
}

func (p Plan) String() string {
	return string(p)
}
