package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/RetailFox/app/controllers"
	"github.com/ManuelReschke/RetailFox/app/repository"
	apiv1 "github.com/ManuelReschke/RetailFox/internal/api/v1"
	"github.com/ManuelReschke/RetailFox/internal/pkg/billing"
	"github.com/ManuelReschke/RetailFox/internal/pkg/cache"
	"github.com/ManuelReschke/RetailFox/internal/pkg/database"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/RetailFox/internal/pkg/env"
	"github.com/ManuelReschke/RetailFox/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	if env.IsDev() {
		log.SetLevel(log.LevelDebug)
	}

	timeout := env.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second)
	defaultZone := entitlements.LoadLocation(env.GetEnv("STORE_DEFAULT_TZ", "Asia/Kolkata"), time.UTC)

	// entitlements
	repos := repository.NewFactory(database.GetDB(), defaultZone).GetRepositories()
	catalog := entitlements.DefaultCatalog()
	evaluator := entitlements.NewEvaluator(catalog, repos.Store, repos.Invoice)

	// billing sync
	billingRepo := billing.NewRepository(database.GetDB())
	reconcilerOpts := []billing.ReconcilerOption{billing.WithSubscriptionRecorder(billingRepo)}
	if env.GetEnvBool("BILLING_ORDERING_GUARD", false) {
		log.Info("billing: ordering guard enabled, stale lifecycle events will be skipped")
		reconcilerOpts = append(reconcilerOpts, billing.WithRecencyGuard(billingRepo))
	}
	reconciler := billing.NewReconciler(billingRepo, repos.Store, reconcilerOpts...)
	ingress := billing.NewIngress(
		billing.NewStripeVerifier(env.GetEnv("STRIPE_WEBHOOK_SECRET", "")),
		reconciler,
		billing.WithDeliveryLog(billing.NewRedisDeliveryLog(
			cache.GetClient(),
			env.GetEnvDuration("BILLING_DEDUP_TTL", billing.DefaultDeliveryTTL),
		)),
	)

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "RetailFox",
		BodyLimit: 1 << 20,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	var limiterStorage fiber.Storage
	if env.GetEnvBool("LIMITER_USE_CACHE", true) {
		limiterStorage = cache.NewLimiterStorage()
	}

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Billing:        controllers.NewBillingController(ingress, timeout),
		Entitlements:   controllers.NewEntitlementController(evaluator, catalog, timeout),
		ServiceToken:   env.GetEnv("INTERNAL_API_TOKEN", ""),
		LimiterStorage: limiterStorage,
		LimiterMax:     env.GetEnvInt("API_RATE_LIMIT", 600),
		LimiterWindow:  env.GetEnvDuration("API_RATE_WINDOW", time.Minute),
		HealthChecks: map[string]controllers.HealthCheck{
			"database": pingDatabase,
			"cache": func(ctx context.Context) error {
				return cache.GetClient().Ping(ctx).Err()
			},
		},
		MetricsUser:     env.GetEnv("METRICS_USER", ""),
		MetricsPassword: env.GetEnv("METRICS_PASSWORD", ""),
		OpenAPIFile:     openAPIFile(),
	})

	return app
}

func pingDatabase(ctx context.Context) error {
	sqlDB, err := database.GetDB().DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// openAPIFile locates the v1 OpenAPI document from the usual working
// directories. A document that fails validation stops startup.
func openAPIFile() string {
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/retailfox to project root
		"../../../", // Fallback
	}
	for _, base := range basePaths {
		path := base + apiv1.SpecFile
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if _, err := apiv1.LoadSpec(context.Background(), path); err != nil {
			panic(err)
		}
		return path
	}
	log.Warn("openapi document not found, /docs/api disabled")
	return ""
}
