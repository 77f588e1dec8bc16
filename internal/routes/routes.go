package routes

import (
	"github.com/gofiber/fiber/v2"

	"linkconnect/internal/handlers"
	"linkconnect/internal/middleware"
	"linkconnect/internal/models"
)

// Handlers groups everything Register needs to wire the HTTP surface.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Links       *handlers.LinkHandler
	Submissions *handlers.SubmissionHandler
	Admin       *handlers.AdminHandler
	Analytics   *handlers.AnalyticsHandler
	Health      *handlers.HealthHandler

	Authenticated fiber.Handler
	RateLimit     fiber.Handler
	VisitCounter  fiber.Handler
}

func Register(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Health)

	api := app.Group("/api", h.RateLimit, h.VisitCounter)

	staff := middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin)
	admin := middleware.RequireRoles(models.RoleAdmin)
	student := middleware.RequireRoles(models.RoleStudent)

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/me", h.Authenticated, h.Auth.Me)

	users := api.Group("/users", h.Authenticated)
	users.Get("/me", h.Users.Me)
	users.Patch("/me", h.Users.UpdateMe)
	users.Post("/me/password", h.Users.ChangePassword)
	users.Get("/me/logins", h.Users.MyLogins)
	users.Get("/", admin, h.Users.List)
	users.Get("/:id", admin, h.Users.Get)
	users.Put("/:id", admin, h.Users.Update)
	users.Delete("/:id", admin, h.Users.Delete)

	links := api.Group("/links", h.Authenticated)
	links.Get("/", staff, h.Links.List)
	links.Get("/catalog", h.Links.Catalog)
	links.Get("/student/my-links", student, h.Links.MyLinks)
	links.Post("/", staff, h.Links.Create)
	links.Get("/:id", h.Links.Get)
	links.Put("/:id", staff, h.Links.Update)
	links.Post("/:id/resync", staff, h.Links.Resync)
	links.Delete("/:id", staff, h.Links.Delete)

	subs := api.Group("/submissions", h.Authenticated)
	subs.Post("/", student, h.Submissions.Create)
	subs.Get("/student/:studentId", h.Submissions.ListByStudent)
	subs.Get("/link/:linkId", staff, h.Submissions.ListByLink)
	subs.Get("/link/:linkId/stats", staff, h.Submissions.Stats)
	subs.Put("/:id/verify", staff, h.Submissions.Verify)

	adm := api.Group("/admin", h.Authenticated, admin)
	adm.Patch("/users/:id/status", h.Admin.ToggleUserStatus)
	adm.Post("/users/:id/reset-password", h.Admin.ResetPassword)
	adm.Post("/users/:id/force-logout", h.Admin.ForceLogout)
	adm.Get("/users/activity/search", h.Admin.SearchActivity)
	adm.Get("/users/:id/activity", h.Admin.UserActivity)
	adm.Post("/users", h.Admin.CreateUser)
	adm.Post("/users/bulk", h.Admin.BulkCreateUsers)
	adm.Patch("/links/:id/active", h.Admin.ToggleLinkActive)
	adm.Get("/rate-limit", h.Admin.GetRateLimit)
	adm.Post("/rate-limit", h.Admin.UpdateRateLimit)
	adm.Get("/divisions", h.Admin.GetDivisions)
	adm.Post("/divisions", h.Admin.SaveDivisions)
	adm.Get("/audit", h.Admin.AuditLogs)

	analytics := api.Group("/analytics", h.Authenticated)
	analytics.Get("/stats", staff, h.Analytics.Stats)
	analytics.Get("/logins", admin, h.Analytics.Logins)
	analytics.Get("/visits", admin, h.Analytics.Visits)
}
