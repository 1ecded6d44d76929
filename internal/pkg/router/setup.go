package router

import (
	"github.com/gofiber/fiber/v2"
)

func InstallRouter(app *fiber.App, deps Dependencies) {
	// The webhook route has to be installed before anything that could
	// consume or rewrite the request body.
	setup(app, NewWebhookRouter(deps), NewApiRouter(deps), NewOpsRouter(deps), NewDocsRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
