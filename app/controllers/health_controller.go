package controllers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HandleHealthz runs every check and answers 503 when any of them fails.
func HandleHealthz(checks map[string]HealthCheck) fiber.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		results := fiber.Map{}
		healthy := true
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				log.Warnw("health check failed", "check", name, "error", err)
				results[name] = "down"
				healthy = false
				continue
			}
			results[name] = "ok"
		}

		if !healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "checks": results})
		}
		return c.JSON(fiber.Map{"status": "ok", "checks": results})
	}
}
