package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/RetailFox/internal/pkg/billing"
)

type recordingIngester struct {
	payload   []byte
	signature string
	err       error
}

func (r *recordingIngester) Ingest(_ context.Context, rawPayload []byte, signatureHeader string) error {
	r.payload = rawPayload
	r.signature = signatureHeader
	return r.err
}

func TestHandleStripeWebhook_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
	}{
		{name: "success", err: nil, wantCode: fiber.StatusOK, wantKey: "received"},
		{name: "authentication", err: &billing.AuthenticationError{Err: errors.New("bad sig")}, wantCode: fiber.StatusUnauthorized, wantKey: "error"},
		{name: "protocol violation", err: &billing.ProtocolViolationError{Reason: "empty"}, wantCode: fiber.StatusInternalServerError, wantKey: "error"},
		{name: "malformed", err: billing.ErrMalformedEvent, wantCode: fiber.StatusBadRequest, wantKey: "error"},
		{name: "infra", err: errors.New("db down"), wantCode: fiber.StatusInternalServerError, wantKey: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := &recordingIngester{err: tt.err}
			app := fiber.New()
			app.Post("/webhooks/stripe", NewBillingController(ing, time.Second).HandleStripeWebhook)

			req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader([]byte(`{"id":"evt_1"}`)))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Stripe-Signature", "t=1,v1=abc")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			var body map[string]any
			raw, _ := io.ReadAll(resp.Body)
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Contains(t, body, tt.wantKey)
		})
	}
}

func TestHandleStripeWebhook_PassesRawBodyUntouched(t *testing.T) {
	ing := &recordingIngester{}
	app := fiber.New()
	app.Post("/webhooks/stripe", NewBillingController(ing, time.Second).HandleStripeWebhook)

	payload := []byte("{\n  \"id\": \"evt_1\",   \"type\": \"customer.subscription.updated\"\n}")
	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", " t=1,v1=abc ")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, payload, ing.payload)
	assert.Equal(t, "t=1,v1=abc", ing.signature)
}
