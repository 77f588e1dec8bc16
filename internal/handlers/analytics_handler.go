package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"linkconnect/internal/middleware"
	"linkconnect/internal/services"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
	log       zerolog.Logger
}

func NewAnalyticsHandler(analytics *services.AnalyticsService, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, log: log}
}

func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.analytics.Stats(c.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

func (h *AnalyticsHandler) Logins(c *fiber.Ctx) error {
	logins, err := h.analytics.Logins(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "logins": logins})
}

func (h *AnalyticsHandler) Visits(c *fiber.Ctx) error {
	visits, err := h.analytics.Visits(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "visits": visits})
}
