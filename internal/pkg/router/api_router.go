package router

import (
	"time"

	apiv1 "github.com/ManuelReschke/RetailFox/internal/api/v1"
	"github.com/ManuelReschke/RetailFox/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        h.limiterMax(),
		Expiration: h.limiterWindow(),
		Storage:    h.deps.LimiterStorage,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes, internal callers only
	v1 := api.Group("/v1", middleware.ServiceTokenMiddleware(h.deps.ServiceToken))
	apiServer := apiv1.NewAPIServer(h.deps.Entitlements)
	apiv1.RegisterHandlers(v1, apiServer)
}

func (h ApiRouter) limiterMax() int {
	if h.deps.LimiterMax > 0 {
		return h.deps.LimiterMax
	}
	return 600
}

func (h ApiRouter) limiterWindow() time.Duration {
	if h.deps.LimiterWindow > 0 {
		return h.deps.LimiterWindow
	}
	return time.Minute
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
