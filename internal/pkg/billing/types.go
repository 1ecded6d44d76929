package billing

import "time"

// Status is the normalized subscription lifecycle status.
type Status string

const (
	StatusActive   Status = "active"
	StatusTrialing Status = "trialing"
	StatusCanceled Status = "canceled"
	StatusUnpaid   Status = "unpaid"
	StatusOther    Status = "other"
)

// LifecycleEvent is the provider-agnostic shape of a subscription lifecycle
// notification after signature verification.
type LifecycleEvent struct {
	EventID        string    `validate:"required"`
	EventType      string    `validate:"required"`
	SubscriptionID string    `validate:"required"`
	CustomerID     string    `validate:"required"`
	PriceID        string    `validate:"omitempty,max=191"`
	Status         Status    `validate:"required,oneof=active trialing canceled unpaid other"`
	RawStatus      string    `validate:"max=64"`
	OccurredAt     time.Time `validate:"required"`
}

// Outcome reports what the reconciler did with an event.
type Outcome string

const (
	OutcomeApplied         Outcome = "applied"
	OutcomeNoStore         Outcome = "no_store"
	OutcomeUnhandledStatus Outcome = "unhandled_status"
	OutcomeStale           Outcome = "stale"
)
