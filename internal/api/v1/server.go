package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// Pong is the ping response body.
type Pong struct {
	Ping string `json:"ping"`
}

// ServerInterface represents all server handlers of the v1 API described in
// public/docs/v1/openapi.yml.
type ServerInterface interface {
	// (GET /ping)
	GetPing(c *fiber.Ctx) error
	// (GET /plans)
	GetPlans(c *fiber.Ctx) error
	// (GET /stores/{storeID}/entitlements/{feature})
	GetStoreEntitlement(c *fiber.Ctx, storeID string, feature string) error
}

// ServerInterfaceWrapper converts fiber contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (siw *ServerInterfaceWrapper) GetPing(c *fiber.Ctx) error {
	return siw.Handler.GetPing(c)
}

func (siw *ServerInterfaceWrapper) GetPlans(c *fiber.Ctx) error {
	return siw.Handler.GetPlans(c)
}

func (siw *ServerInterfaceWrapper) GetStoreEntitlement(c *fiber.Ctx) error {
	return siw.Handler.GetStoreEntitlement(c, c.Params("storeID"), c.Params("feature"))
}

// RegisterHandlers creates http.Handler with routing matching the v1 API.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.Get("/ping", wrapper.GetPing)
	router.Get("/plans", wrapper.GetPlans)
	router.Get("/stores/:storeID/entitlements/:feature", wrapper.GetStoreEntitlement)
}
