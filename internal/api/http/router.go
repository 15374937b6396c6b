package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/http/handlers"
	"github.com/spec-kit/incident-service/internal/auth"
	"github.com/spec-kit/incident-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Incidents      *handlers.IncidentsHandler
	Users          *handlers.UsersHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	incidents := app.Group("/incidents", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	incidents.Get("/", cfg.Incidents.List)
	incidents.Post("/", cfg.Incidents.Create)
	incidents.Get("/:id", cfg.Incidents.Get)
	incidents.Put("/:id", auth.RequireRole(domain.RoleTechnician, domain.RoleAdmin), cfg.Incidents.Update)
	incidents.Post("/:id/comments", cfg.Incidents.AddComment)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/incidents", cfg.Incidents.ListFiltered)
	admin.Get("/technicians", cfg.Incidents.ListTechnicians)
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Get("/stats", cfg.Stats.Overview)
}
