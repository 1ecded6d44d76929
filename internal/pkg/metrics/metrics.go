package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookRequestsTotal counts billing webhook deliveries by HTTP status.
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retailfox",
		Subsystem: "billing",
		Name:      "webhook_requests_total",
		Help:      "Billing webhook deliveries by HTTP status.",
	}, []string{"status"})

	// WebhookDuration tracks webhook handling latency.
	WebhookDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "retailfox",
		Subsystem: "billing",
		Name:      "webhook_duration_seconds",
		Help:      "Billing webhook handling duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	// WebhookDuplicatesTotal counts redeliveries acknowledged without reprocessing.
	WebhookDuplicatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "retailfox",
		Subsystem: "billing",
		Name:      "webhook_duplicates_total",
		Help:      "Webhook deliveries skipped because the event was already processed.",
	})

	// ReconcileOutcomes counts lifecycle events by reconciler outcome.
	ReconcileOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retailfox",
		Subsystem: "billing",
		Name:      "reconcile_outcomes_total",
		Help:      "Lifecycle events by reconciliation outcome.",
	}, []string{"outcome"})

	// EntitlementDecisions counts entitlement checks by feature and result.
	EntitlementDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retailfox",
		Subsystem: "entitlements",
		Name:      "decisions_total",
		Help:      "Entitlement decisions by feature and result.",
	}, []string{"feature", "result"})
)

// DecisionResult is the label value for an entitlement decision.
func DecisionResult(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "denied"
}
