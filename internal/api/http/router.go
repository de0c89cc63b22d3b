package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookline/reservation-service/internal/api/http/handlers"
	"github.com/bookline/reservation-service/internal/auth"
	"github.com/bookline/reservation-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reservations   *handlers.ReservationsHandler
	Services       *handlers.ServicesHandler
	Users          *handlers.UsersHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Get("/auth/validate", cfg.Auth.Validate)

	// public booking surface
	app.Post("/reservations", cfg.Reservations.Create)
	app.Get("/services/active", cfg.Services.ListActive)

	staff := app.Group("", cfg.AuthMiddleware.Handle)

	reservations := staff.Group("/reservations")
	reservations.Get("/", cfg.Reservations.List)
	reservations.Get("/:id", cfg.Reservations.Get)
	reservations.Get("/:id/whatsapp-link", cfg.Reservations.NotificationLink)
	reservations.Put("/:id/confirm", cfg.Reservations.Confirm)
	reservations.Put("/:id/reject", cfg.Reservations.Reject)
	reservations.Put("/:id/status", cfg.Reservations.UpdateStatus)

	services := staff.Group("/services")
	services.Get("/", cfg.Services.ListAll)
	services.Get("/:id", cfg.Services.Get)

	adminServices := services.Group("", auth.RequireRole(domain.RoleAdministrator))
	adminServices.Post("/", cfg.Services.Create)
	adminServices.Put("/:id", cfg.Services.Update)
	adminServices.Delete("/:id", cfg.Services.Delete)

	users := staff.Group("/users", auth.RequireRole(domain.RoleAdministrator, domain.RoleSupervisor))
	users.Get("/", cfg.Users.List)
	users.Get("/staff", cfg.Users.ListStaff)
	users.Get("/:id", cfg.Users.Get)

	adminUsers := users.Group("", auth.RequireRole(domain.RoleAdministrator))
	adminUsers.Post("/", cfg.Users.Create)
	adminUsers.Put("/:id", cfg.Users.Update)
	adminUsers.Delete("/:id", cfg.Users.Delete)

	reports := staff.Group("/reports")
	reports.Get("/summary", cfg.Reports.Summary)
	reports.Get("/popular-services", cfg.Reports.PopularServices)
	reports.Get("/monthly", cfg.Reports.Monthly)
}
