package router

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// DocsRouter serves the v1 OpenAPI document and its UI under /docs/api.
type DocsRouter struct {
	deps Dependencies
}

func (d DocsRouter) InstallRouter(app *fiber.App) {
	if d.deps.OpenAPIFile == "" {
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: d.deps.OpenAPIFile,
		Path:     "v1",
		Title:    "RetailFox API",
	}))
}

func NewDocsRouter(deps Dependencies) *DocsRouter {
	return &DocsRouter{deps: deps}
}
