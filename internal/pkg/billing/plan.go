package billing

import (
	"strings"

	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

// ParseStatus maps a provider status string onto the statuses the reconciler
// acts on. Everything else (past_due, incomplete, paused, ...) is StatusOther.
func ParseStatus(raw string) Status {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusActive, StatusTrialing, StatusCanceled, StatusUnpaid:
		return s
	default:
		return StatusOther
	}
}

func isEntitlingStatus(s Status) bool {
	return s == StatusActive || s == StatusTrialing
}

func isRevokingStatus(s Status) bool {
	return s == StatusCanceled || s == StatusUnpaid
}

// targetPlan returns the plan a store should end up on for status, given the
// plan its price resolved to. ok is false when the status is not acted on.
func targetPlan(s Status, resolved entitlements.Plan) (entitlements.Plan, bool) {
	switch {
	case isEntitlingStatus(s):
		if !resolved.Valid() {
			return entitlements.PlanFree, true
		}
		return resolved, true
	case isRevokingStatus(s):
		return entitlements.PlanFree, true
	default:
		return "", false
	}
}
