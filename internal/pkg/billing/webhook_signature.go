package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	stripelib "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// SignatureVerifier authenticates a raw webhook payload and decodes it into a
// LifecycleEvent. A nil event with a nil error means the payload was
// authentic but carries no subscription state.
type SignatureVerifier interface {
	Verify(payload []byte, signatureHeader string) (*LifecycleEvent, error)
}

// StripeVerifier verifies Stripe-Signature headers against an endpoint secret.
type StripeVerifier struct {
	secret string
}

func NewStripeVerifier(secret string) *StripeVerifier {
	return &StripeVerifier{secret: strings.TrimSpace(secret)}
}

func (v *StripeVerifier) Verify(payload []byte, signatureHeader string) (*LifecycleEvent, error) {
	if v.secret == "" {
		return nil, &AuthenticationError{Err: errors.New("webhook secret not configured")}
	}
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, &AuthenticationError{Err: webhook.ErrNotSigned}
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, &AuthenticationError{Err: err}
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
	default:
		return nil, nil
	}

	if event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: event %s has no data object", ErrMalformedEvent, event.ID)
	}
	var sub stripeSubscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, fmt.Errorf("%w: decode subscription: %v", ErrMalformedEvent, err)
	}
	return sub.lifecycleEvent(&event), nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

// stripeSubscription is the subset of a Stripe subscription object read here.
type stripeSubscription struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
	Items    struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

func (s *stripeSubscription) firstPriceID() string {
	for _, item := range s.Items.Data {
		if priceID := strings.TrimSpace(item.Price.ID); priceID != "" {
			return priceID
		}
	}
	return ""
}

func (s *stripeSubscription) lifecycleEvent(event *stripelib.Event) *LifecycleEvent {
	return &LifecycleEvent{
		EventID:        event.ID,
		EventType:      string(event.Type),
		SubscriptionID: strings.TrimSpace(s.ID),
		CustomerID:     strings.TrimSpace(s.Customer),
		PriceID:        s.firstPriceID(),
		Status:         ParseStatus(s.Status),
		RawStatus:      s.Status,
		OccurredAt:     time.Unix(event.Created, 0).UTC(),
	}
}
