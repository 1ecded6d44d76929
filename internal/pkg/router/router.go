package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/RetailFox/app/controllers"
)

// Router installs a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies carries the wired controllers and settings the routers need.
type Dependencies struct {
	Billing      *controllers.BillingController
	Entitlements *controllers.EntitlementController

	ServiceToken string

	// LimiterStorage backs the /api rate limiter. Nil keeps counters in memory.
	LimiterStorage fiber.Storage
	LimiterMax     int
	LimiterWindow  time.Duration

	HealthChecks map[string]controllers.HealthCheck

	MetricsUser     string
	MetricsPassword string

	// OpenAPIFile is served under /docs/api when set.
	OpenAPIFile string
}
