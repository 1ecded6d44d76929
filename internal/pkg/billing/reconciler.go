package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/RetailFox/internal/pkg/metrics"
)

// Correlator resolves provider identifiers to internal ones. A false ok with
// a nil error means there is no correlation.
type Correlator interface {
	ResolveStoreID(ctx context.Context, customerID string) (storeID string, ok bool, err error)
	ResolvePlan(ctx context.Context, priceID string) (plan entitlements.Plan, ok bool, err error)
}

// PlanWriter persists a store's plan field and nothing else.
type PlanWriter interface {
	SetPlan(ctx context.Context, storeID string, plan entitlements.Plan) error
}

// RecencyGuard rejects events older than the newest event already applied to
// a store.
type RecencyGuard interface {
	Admit(ctx context.Context, storeID string, ev LifecycleEvent) (bool, error)
}

// SubscriptionRecorder keeps the last applied event per subscription. The
// recency guard reads its watermark from these records.
type SubscriptionRecorder interface {
	Record(ctx context.Context, storeID string, ev LifecycleEvent, plan entitlements.Plan) error
}

// Reconciler applies lifecycle events to the store plan field.
//
// The plan write is a plain assignment, so applying an event twice yields
// the same state. Delivery order is not guaranteed by the provider: without
// a RecencyGuard a stale canceled event that arrives after a newer active one
// downgrades the store (last write wins).
type Reconciler struct {
	correlator Correlator
	plans      PlanWriter
	guard      RecencyGuard
	recorder   SubscriptionRecorder
}

type ReconcilerOption func(*Reconciler)

// WithRecencyGuard enables event-time ordering protection.
func WithRecencyGuard(g RecencyGuard) ReconcilerOption {
	return func(r *Reconciler) {
		r.guard = g
	}
}

// WithSubscriptionRecorder records every applied event.
func WithSubscriptionRecorder(rec SubscriptionRecorder) ReconcilerOption {
	return func(r *Reconciler) {
		r.recorder = rec
	}
}

func NewReconciler(correlator Correlator, plans PlanWriter, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{correlator: correlator, plans: plans}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplyLifecycleEvent resolves the event's store and plan and writes the
// resulting plan. Soft conditions (unknown customer, unhandled status, stale
// event) return a non-applied Outcome and a nil error.
func (r *Reconciler) ApplyLifecycleEvent(ctx context.Context, ev LifecycleEvent) (Outcome, error) {
	outcome, err := r.apply(ctx, ev)
	if err == nil {
		metrics.ReconcileOutcomes.WithLabelValues(string(outcome)).Inc()
	}
	return outcome, err
}

func (r *Reconciler) apply(ctx context.Context, ev LifecycleEvent) (Outcome, error) {
	customerID := strings.TrimSpace(ev.CustomerID)
	storeID, ok, err := r.correlator.ResolveStoreID(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("resolve store for customer %s: %w", customerID, err)
	}
	if !ok || storeID == "" {
		log.Infow("billing: no store linked to customer, ignoring event",
			"event_id", ev.EventID, "customer_id", customerID, "subscription_id", ev.SubscriptionID)
		return OutcomeNoStore, nil
	}

	var resolved entitlements.Plan
	if isEntitlingStatus(ev.Status) {
		resolved, err = r.resolvePlan(ctx, ev)
		if err != nil {
			return "", err
		}
	}

	plan, act := targetPlan(ev.Status, resolved)
	if !act {
		log.Infow("billing: unhandled subscription status, ignoring event",
			"event_id", ev.EventID, "store_id", storeID, "status", ev.RawStatus)
		return OutcomeUnhandledStatus, nil
	}

	if r.guard != nil {
		admit, err := r.guard.Admit(ctx, storeID, ev)
		if err != nil {
			return "", fmt.Errorf("check event recency for store %s: %w", storeID, err)
		}
		if !admit {
			log.Warnw("billing: stale lifecycle event skipped",
				"event_id", ev.EventID, "store_id", storeID, "subscription_id", ev.SubscriptionID,
				"status", ev.Status, "occurred_at", ev.OccurredAt)
			return OutcomeStale, nil
		}
	}

	if err := r.plans.SetPlan(ctx, storeID, plan); err != nil {
		if errors.Is(err, entitlements.ErrStoreNotFound) {
			log.Warnw("billing: customer linked to a missing store, ignoring event",
				"event_id", ev.EventID, "customer_id", customerID, "store_id", storeID)
			return OutcomeNoStore, nil
		}
		return "", fmt.Errorf("set plan for store %s: %w", storeID, err)
	}

	if r.recorder != nil {
		if err := r.recorder.Record(ctx, storeID, ev, plan); err != nil {
			return "", fmt.Errorf("record lifecycle event for store %s: %w", storeID, err)
		}
	}

	log.Infow("billing: store plan reconciled",
		"event_id", ev.EventID, "store_id", storeID, "subscription_id", ev.SubscriptionID,
		"status", ev.Status, "plan", plan)
	return OutcomeApplied, nil
}

func (r *Reconciler) resolvePlan(ctx context.Context, ev LifecycleEvent) (entitlements.Plan, error) {
	priceID := strings.TrimSpace(ev.PriceID)
	if priceID == "" {
		log.Infow("billing: event has no price, defaulting to free plan", "event_id", ev.EventID)
		return entitlements.PlanFree, nil
	}
	plan, ok, err := r.correlator.ResolvePlan(ctx, priceID)
	if err != nil {
		return "", fmt.Errorf("resolve plan for price %s: %w", priceID, err)
	}
	if !ok {
		log.Infow("billing: no plan mapped to price, defaulting to free plan",
			"event_id", ev.EventID, "price_id", priceID)
		return entitlements.PlanFree, nil
	}
	return plan, nil
}
