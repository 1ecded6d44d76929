package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuelReschke/RetailFox/app/controllers"
)

// OpsRouter serves health and Prometheus metrics.
type OpsRouter struct {
	deps Dependencies
}

func (o OpsRouter) InstallRouter(app *fiber.App) {
	app.Get("/healthz", controllers.HandleHealthz(o.deps.HealthChecks))

	if o.deps.MetricsUser == "" || o.deps.MetricsPassword == "" {
		log.Warn("metrics credentials not configured, /metrics disabled")
		return
	}
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			o.deps.MetricsUser: o.deps.MetricsPassword,
		},
	}), adaptor.HTTPHandler(promhttp.Handler()))
}

func NewOpsRouter(deps Dependencies) *OpsRouter {
	return &OpsRouter{deps: deps}
}
