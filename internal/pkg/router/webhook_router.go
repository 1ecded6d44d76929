package router

import (
	"github.com/gofiber/fiber/v2"
)

// WebhookRouter serves billing provider callbacks. They authenticate by
// payload signature, not by service token.
type WebhookRouter struct {
	deps Dependencies
}

func (w WebhookRouter) InstallRouter(app *fiber.App) {
	webhooks := app.Group("/webhooks")
	webhooks.Post("/stripe", w.deps.Billing.HandleStripeWebhook)
}

func NewWebhookRouter(deps Dependencies) *WebhookRouter {
	return &WebhookRouter{deps: deps}
}
