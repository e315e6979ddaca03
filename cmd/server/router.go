package main

import (
	"context"
	"fmt"
	"time"

	"geo-users/cmd/server/handlers"
	"geo-users/cmd/server/handlers/httperr"
	usersHandlers "geo-users/cmd/server/handlers/users"
	"geo-users/cmd/server/middlewares"
	"geo-users/internal/clients/mongo"
	"geo-users/internal/config"
	"geo-users/internal/logger"
	"geo-users/internal/services/auth"
	"geo-users/internal/services/users"

	_ "geo-users/docs" // Load swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter builds the users stack on top of the initialised mongo client
// and returns the Fiber app serving it.
func setupRouter(ctx context.Context, cfg config.Config) (*fiber.App, error) {
	usersRepo, err := mongo.NewUsersRepo(ctx, mongo.DB())
	if err != nil {
		return nil, fmt.Errorf("create users repository: %w", err)
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL())
	usersSvc := users.NewService(usersRepo, issuer, cfg, logger.L())

	return newApp(cfg, usersSvc), nil
}

// newApp wires middlewares and routes around svc.
func newApp(cfg config.Config, svc usersHandlers.UsersService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(middlewares.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Content-Type, Authorization, X-Request-ID",
		ExposeHeaders: "X-Request-ID",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, registered before the request logger to avoid noise
	app.Get("/healthz", handlers.Healthz)

	app.Get("/docs/*", swagger.HandlerDefault)

	if cfg.RequestLoggingEnabled {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency} ${respHeader:X-Request-ID}\n",
		}))
		logger.L().Info("request logging enabled")
	} else {
		logger.L().Info("request logging disabled")
	}

	h := usersHandlers.NewHandlers(svc, users.NewValidator())
	jwtMiddleware := middlewares.JWT(cfg.JWTSecret)
	registerLimiter := middlewares.BuildRateLimiter(cfg.RegisterRatePerMin, RateLimitExpiration)

	app.Post("/register", registerLimiter, h.Register)
	app.Patch("/change-status", jwtMiddleware, h.ToggleStatus)
	app.Get("/get-distance", jwtMiddleware, h.GetDistance)
	app.Get("/user-listing", jwtMiddleware, h.ListByWeekday)

	return app
}
