package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"linkconnect/internal/dto"
	"linkconnect/internal/middleware"
	"linkconnect/internal/services"
)

type AdminHandler struct {
	admin   *services.AdminService
	catalog *services.CatalogService
	limiter *services.RateLimiter
	log     zerolog.Logger
}

func NewAdminHandler(admin *services.AdminService, catalog *services.CatalogService, limiter *services.RateLimiter, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog, limiter: limiter, log: log}
}

func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	active, err := h.admin.ToggleUserStatus(c.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ToggleResponse{Success: true, Active: active})
}

func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var req dto.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	if err := h.admin.ResetUserPassword(c.Context(), middleware.CurrentIdentity(c), id, req.NewPassword); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.Message("password reset, existing sessions revoked"))
}

func (h *AdminHandler) ForceLogout(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.admin.ForceLogout(c.Context(), middleware.CurrentIdentity(c), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.Message("user logged out everywhere"))
}

func (h *AdminHandler) UserActivity(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	stats, err := h.admin.UserActivity(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ActivityResponse{Success: true, Activity: stats})
}

func (h *AdminHandler) SearchActivity(c *fiber.Ctx) error {
	users, err := h.admin.SearchUserActivity(c.Context(), c.Query("q"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ActivitySearchResponse{Success: true, Users: users})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	user, err := h.admin.CreateUser(c.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{Success: true, User: user})
}

func (h *AdminHandler) BulkCreateUsers(c *fiber.Ctx) error {
	var req dto.BulkCreateUsersRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	res, err := h.admin.BulkCreateUsers(c.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *AdminHandler) ToggleLinkActive(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	active, err := h.admin.ToggleLinkActive(c.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ToggleResponse{Success: true, Active: active})
}

func (h *AdminHandler) GetRateLimit(c *fiber.Ctx) error {
	return c.JSON(dto.RateLimitResponse{Success: true, Config: h.limiter.Config()})
}

func (h *AdminHandler) UpdateRateLimit(c *fiber.Ctx) error {
	var req dto.UpdateRateLimitRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	actor := middleware.CurrentIdentity(c)
	cfg, err := h.limiter.Update(c.Context(), req.WindowMs, req.Max, actor.ID)
	if err != nil {
		return fail(c, h.log, err)
	}
	h.admin.AuditRateLimitUpdate(c.Context(), actor, cfg.WindowMs, cfg.Max)
	return c.JSON(dto.RateLimitResponse{Success: true, Config: cfg})
}

func (h *AdminHandler) GetDivisions(c *fiber.Ctx) error {
	catalog, err := h.catalog.Effective(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.CatalogResponse{Success: true, Catalog: catalog})
}

func (h *AdminHandler) SaveDivisions(c *fiber.Ctx) error {
	var req dto.SaveCatalogRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	catalog, err := h.admin.SaveCatalog(c.Context(), middleware.CurrentIdentity(c), h.catalog, req.Colleges)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.CatalogResponse{Success: true, Catalog: catalog})
}

func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	logs, err := h.admin.AuditLogs(c.Context(), int64(c.QueryInt("limit")))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.AuditLogsResponse{Success: true, Logs: logs})
}
