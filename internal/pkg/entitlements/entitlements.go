package entitlements

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Feature string

const (
	FeatureCreateInvoice  Feature = "create_invoice"
	FeatureCreateProforma Feature = "create_proforma"
	FeatureAddTemplate    Feature = "add_template"
	FeatureGSTFiling      Feature = "gst_filing"
)

var ErrUnknownFeature = errors.New("unknown feature")

// ErrStoreNotFound is returned by plan and usage sources for a store id with
// no store profile.
var ErrStoreNotFound = errors.New("store not found")

// ParseFeature validates a feature tag coming from a caller.
func ParseFeature(raw string) (Feature, error) {
	switch f := Feature(raw); f {
	case FeatureCreateInvoice, FeatureCreateProforma, FeatureAddTemplate, FeatureGSTFiling:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, raw)
	}
}

// Decision is the result of an entitlement check. Reason is only set on denial.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(format string, args ...any) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// PlanReader returns the current plan of a store.
type PlanReader interface {
	GetPlan(ctx context.Context, storeID string) (Plan, error)
}

// UsageAccessor counts billing documents dated inside the calendar month
// that contains referenceDate, in the store's reference time zone.
type UsageAccessor interface {
	CountBillingDocumentsInMonth(ctx context.Context, storeID string, referenceDate time.Time) (int64, error)
}

// Evaluator derives allow/deny decisions from a store's plan and usage.
//
// Decisions are advisory: a create_invoice check is computed against a usage
// snapshot and is not serialized with concurrent invoice creation, so two
// parallel requests can both pass at count == limit-1.
type Evaluator struct {
	catalog Catalog
	plans   PlanReader
	usage   UsageAccessor
	now     func() time.Time
}

type EvaluatorOption func(*Evaluator)

// WithClock overrides the time source used as the usage reference date.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) {
		e.now = now
	}
}

func NewEvaluator(catalog Catalog, plans PlanReader, usage UsageAccessor, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		catalog: catalog,
		plans:   plans,
		usage:   usage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckEntitlement decides whether storeID may perform feature. Only
// infrastructure failures are returned as errors.
func (e *Evaluator) CheckEntitlement(ctx context.Context, storeID string, feature Feature) (Decision, error) {
	if _, err := ParseFeature(string(feature)); err != nil {
		return Decision{}, err
	}

	plan, err := e.plans.GetPlan(ctx, storeID)
	if err != nil {
		return Decision{}, fmt.Errorf("load plan for store %s: %w", storeID, err)
	}
	limits := e.catalog.LimitsFor(plan)

	switch feature {
	case FeatureCreateInvoice:
		return e.checkMonthlyBills(ctx, storeID, plan, limits)
	case FeatureCreateProforma:
		if limits.Proforma {
			return allow(), nil
		}
		return e.denyCapability("Proforma documents require", func(l PlanLimits) bool { return l.Proforma }), nil
	case FeatureGSTFiling:
		if limits.GSTFiling {
			return allow(), nil
		}
		return e.denyCapability("GST filing requires", func(l PlanLimits) bool { return l.GSTFiling }), nil
	default:
		// add_template: the Templates cap exists in the catalog but no
		// template count is checked against it.
		return allow(), nil
	}
}

func (e *Evaluator) checkMonthlyBills(ctx context.Context, storeID string, plan Plan, limits PlanLimits) (Decision, error) {
	if limits.BillsPerMonth.Unbounded() {
		return allow(), nil
	}

	count, err := e.usage.CountBillingDocumentsInMonth(ctx, storeID, e.now())
	if err != nil {
		return Decision{}, fmt.Errorf("count monthly bills for store %s: %w", storeID, err)
	}
	if !limits.BillsPerMonth.Reached(count) {
		return allow(), nil
	}

	upgrade, ok := e.catalog.MinimumPlan(func(l PlanLimits) bool { return l.BillsPerMonth.Unbounded() })
	if !ok {
		return deny("The %s plan allows %d bills per month and this month's limit has been reached.",
			plan.Label(), int(limits.BillsPerMonth)), nil
	}
	return deny("The %s plan allows %d bills per month and this month's limit has been reached. Upgrade to %s for unlimited bills.",
		plan.Label(), int(limits.BillsPerMonth), upgrade.Label()), nil
}

// denyCapability builds a denial naming the lowest plan that has the
// capability, e.g. "GST filing requires the Enterprise plan or higher."
func (e *Evaluator) denyCapability(subject string, pred func(PlanLimits) bool) Decision {
	required, ok := e.catalog.MinimumPlan(pred)
	if !ok {
		return deny("%s a plan that is not currently offered.", subject)
	}
	return deny("%s the %s plan or higher.", subject, required.Label())
}
