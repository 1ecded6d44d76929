package controllers

import (
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

	"github.com/ManuelReschke/RetailFox/app/repository"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

type stubChecker struct {
	decision entitlements.Decision
	err      error
	calls    int
}

func (s *stubChecker) CheckEntitlement(_ context.Context, _ string, _ entitlements.Feature) (entitlements.Decision, error) {
	s.calls++
	return s.decision, s.err
}

func newEntitlementApp(checker EntitlementChecker) *fiber.App {
	ec := NewEntitlementController(checker, entitlements.DefaultCatalog(), time.Second)
	app := fiber.New()
	app.Get("/stores/:storeID/entitlements/:feature", ec.HandleCheck)
	app.Get("/plans", ec.HandlePlans)
	return app
}

func TestHandleCheck(t *testing.T) {
	denied := entitlements.Decision{Allowed: false, Reason: "GST filing requires the Enterprise plan or higher."}
	tests := []struct {
		name      string
		path      string
		checker   *stubChecker
		wantCode  int
		wantCalls int
	}{
		{name: "allowed", path: "/stores/s1/entitlements/create_invoice", checker: &stubChecker{decision: entitlements.Decision{Allowed: true}}, wantCode: fiber.StatusOK, wantCalls: 1},
		{name: "denied is still 200", path: "/stores/s1/entitlements/gst_filing", checker: &stubChecker{decision: denied}, wantCode: fiber.StatusOK, wantCalls: 1},
		{name: "unknown feature", path: "/stores/s1/entitlements/teleport", checker: &stubChecker{}, wantCode: fiber.StatusBadRequest, wantCalls: 0},
		{name: "unknown store", path: "/stores/nope/entitlements/create_invoice", checker: &stubChecker{err: repository.ErrStoreNotFound}, wantCode: fiber.StatusNotFound, wantCalls: 1},
		{name: "infra error", path: "/stores/s1/entitlements/create_invoice", checker: &stubChecker{err: errors.New("db down")}, wantCode: fiber.StatusInternalServerError, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newEntitlementApp(tt.checker).Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, tt.checker.calls)
		})
	}
}

func TestHandleCheck_DecisionBody(t *testing.T) {
	checker := &stubChecker{decision: entitlements.Decision{Allowed: false, Reason: "limit reached"}}
	resp, err := newEntitlementApp(checker).Test(httptest.NewRequest("GET", "/stores/s1/entitlements/create_invoice", nil))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"allowed":false,"reason":"limit reached"}`, string(raw))
}

func TestHandlePlans(t *testing.T) {
	resp, err := newEntitlementApp(&stubChecker{}).Test(httptest.NewRequest("GET", "/plans", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Plans []json.RawMessage `json:"plans"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Plans, 4)
}
