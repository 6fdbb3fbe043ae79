package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recouvrement-service/internal/api/http/handlers"
	"github.com/spec-kit/recouvrement-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/login-json", cfg.Auth.LoginJSON)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Auth.Me)
	protected.Post("/logout", cfg.Auth.Logout)
	protected.Post("/logout-all", cfg.Auth.LogoutAll)
	protected.Post("/change-password", cfg.Auth.ChangePassword)
}
