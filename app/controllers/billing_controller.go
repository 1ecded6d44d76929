package controllers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/RetailFox/internal/pkg/billing"
	"github.com/ManuelReschke/RetailFox/internal/pkg/metrics"
)

// WebhookIngester is the billing ingress as seen by the HTTP layer.
type WebhookIngester interface {
	Ingest(ctx context.Context, rawPayload []byte, signatureHeader string) error
}

// BillingController serves the Stripe webhook endpoint.
type BillingController struct {
	ingress WebhookIngester
	timeout time.Duration
}

func NewBillingController(ingress WebhookIngester, timeout time.Duration) *BillingController {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BillingController{ingress: ingress, timeout: timeout}
}

// HandleStripeWebhook passes the unparsed request body to ingress. Any
// non-2xx status makes Stripe retry the delivery.
func (bc *BillingController) HandleStripeWebhook(c *fiber.Ctx) error {
	started := time.Now()
	// fasthttp reuses the body buffer after the handler returns
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))

	ctx, cancel := context.WithTimeout(c.UserContext(), bc.timeout)
	defer cancel()

	status, body := webhookResponse(bc.ingress.Ingest(ctx, rawBody, signature))

	metrics.WebhookRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	metrics.WebhookDuration.Observe(time.Since(started).Seconds())
	return c.Status(status).JSON(body)
}

func webhookResponse(err error) (int, fiber.Map) {
	switch {
	case err == nil:
		return fiber.StatusOK, fiber.Map{"received": true}
	case billing.IsAuthenticationError(err):
		return fiber.StatusUnauthorized, fiber.Map{"error": "invalid_signature"}
	case billing.IsProtocolViolation(err):
		return fiber.StatusInternalServerError, fiber.Map{"error": "protocol_violation"}
	case errors.Is(err, billing.ErrMalformedEvent):
		log.Warnw("billing: rejecting malformed webhook event", "error", err)
		return fiber.StatusBadRequest, fiber.Map{"error": "invalid_payload"}
	default:
		log.Errorw("billing: webhook processing failed", "error", err)
		return fiber.StatusInternalServerError, fiber.Map{"error": "processing_failed"}
	}
}
