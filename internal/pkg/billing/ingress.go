package billing

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/RetailFox/internal/pkg/metrics"
)

// LifecycleApplier is the reconciliation step behind ingress.
type LifecycleApplier interface {
	ApplyLifecycleEvent(ctx context.Context, ev LifecycleEvent) (Outcome, error)
}

// Ingress authenticates raw webhook deliveries and forwards canonical events
// to the reconciler.
type Ingress struct {
	verifier   SignatureVerifier
	applier    LifecycleApplier
	deliveries DeliveryLog
	validate   *validator.Validate
}

type IngressOption func(*Ingress)

// WithDeliveryLog skips events already processed successfully.
func WithDeliveryLog(l DeliveryLog) IngressOption {
	return func(i *Ingress) {
		i.deliveries = l
	}
}

func NewIngress(verifier SignatureVerifier, applier LifecycleApplier, opts ...IngressOption) *Ingress {
	i := &Ingress{
		verifier: verifier,
		applier:  applier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest verifies rawPayload, exactly as received on the wire, against
// signatureHeader and applies the event it carries.
//
// It returns *ProtocolViolationError when no raw payload is available,
// *AuthenticationError when verification fails and ErrMalformedEvent for
// authentic events that cannot be decoded. Events that have no effect
// return nil.
func (i *Ingress) Ingest(ctx context.Context, rawPayload []byte, signatureHeader string) error {
	if len(rawPayload) == 0 {
		err := &ProtocolViolationError{Reason: "raw request body is empty; the body must reach ingress unparsed"}
		log.Errorw("billing: webhook received without raw body", "error", err)
		return err
	}

	ev, err := i.verifier.Verify(rawPayload, signatureHeader)
	if err != nil {
		if IsAuthenticationError(err) {
			log.Warnw("billing: webhook signature rejected", "security", true, "error", err)
		}
		return err
	}
	if ev == nil {
		log.Debugw("billing: verified webhook carries no subscription state")
		return nil
	}
	if err := i.validate.Struct(ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if i.deliveries != nil {
		seen, err := i.deliveries.Seen(ctx, ev.EventID)
		if err != nil {
			log.Warnw("billing: delivery log lookup failed, processing event anyway",
				"event_id", ev.EventID, "error", err)
		} else if seen {
			metrics.WebhookDuplicatesTotal.Inc()
			log.Infow("billing: duplicate delivery acknowledged", "event_id", ev.EventID)
			return nil
		}
	}

	if _, err := i.applier.ApplyLifecycleEvent(ctx, *ev); err != nil {
		return fmt.Errorf("apply event %s: %w", ev.EventID, err)
	}

	if i.deliveries != nil {
		if err := i.deliveries.MarkProcessed(ctx, ev.EventID); err != nil {
			log.Warnw("billing: failed to record processed delivery",
				"event_id", ev.EventID, "error", err)
		}
	}
	return nil
}
