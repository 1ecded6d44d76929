package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/ManuelReschke/RetailFox/app/controllers"
)

// APIServer implements the ServerInterface
type APIServer struct {
	entitlements *controllers.EntitlementController
}

// NewAPIServer creates a new API server instance
func NewAPIServer(entitlements *controllers.EntitlementController) *APIServer {
	return &APIServer{entitlements: entitlements}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetPlans lists every plan with its limits.
func (s *APIServer) GetPlans(c *fiber.Ctx) error {
	return s.entitlements.HandlePlans(c)
}

// GetStoreEntitlement answers whether a store may use a feature right now.
// The controller reads storeID and feature from route params.
func (s *APIServer) GetStoreEntitlement(c *fiber.Ctx, storeID string, feature string) error {
	if storeID == "" || feature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "store id and feature are required"})
	}
	return s.entitlements.HandleCheck(c)
}
