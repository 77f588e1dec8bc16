package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"linkconnect/internal/services"
)

// VisitCounter bumps the global visit counter per request, bucketed by the
// caller's role when one is known. Counting failures never fail the request.
func VisitCounter(analytics *services.AnalyticsService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Counted after the handler chain so the identity set by the auth
		// middleware is available.
		role := CurrentIdentity(c).Role
		if recErr := analytics.RecordVisit(c.Context(), role); recErr != nil {
			log.Warn().Err(recErr).Msg("visit counter update failed")
		}
		return err
	}
}
