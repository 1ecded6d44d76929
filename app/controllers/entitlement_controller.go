package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/RetailFox/app/repository"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/RetailFox/internal/pkg/metrics"
)

// EntitlementChecker is implemented by *entitlements.Evaluator.
type EntitlementChecker interface {
	CheckEntitlement(ctx context.Context, storeID string, feature entitlements.Feature) (entitlements.Decision, error)
}

// EntitlementController answers entitlement queries from the application
// layer before it performs a gated action.
type EntitlementController struct {
	checker EntitlementChecker
	catalog entitlements.Catalog
	timeout time.Duration
}

func NewEntitlementController(checker EntitlementChecker, catalog entitlements.Catalog, timeout time.Duration) *EntitlementController {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &EntitlementController{checker: checker, catalog: catalog, timeout: timeout}
}

// HandleCheck serves GET /api/v1/stores/:storeID/entitlements/:feature.
func (ec *EntitlementController) HandleCheck(c *fiber.Ctx) error {
	storeID := strings.TrimSpace(c.Params("storeID"))
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "store id is required"})
	}
	feature, err := entitlements.ParseFeature(c.Params("feature"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_feature", "message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), ec.timeout)
	defer cancel()

	decision, err := ec.checker.CheckEntitlement(ctx, storeID, feature)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrStoreNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "store not found"})
	case errors.Is(err, entitlements.ErrUnknownFeature):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_feature", "message": err.Error()})
	default:
		log.Errorw("entitlements: check failed", "store_id", storeID, "feature", feature, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	metrics.EntitlementDecisions.WithLabelValues(string(feature), metrics.DecisionResult(decision.Allowed)).Inc()
	return c.JSON(decision)
}

// HandlePlans lists the plan catalog.
func (ec *EntitlementController) HandlePlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"plans": ec.catalog.Entries()})
}
