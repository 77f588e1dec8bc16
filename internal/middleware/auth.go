package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"linkconnect/internal/dto"
	"linkconnect/internal/services"
)

const identityKey = "identity"

// Authenticated parses the Bearer token, verifies it against the user record
// (tokenVersion included) and stores the resulting identity in Locals.
func Authenticated(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("missing or malformed token"))
		}
		tokenStr := strings.TrimSpace(header[7:])

		ident, err := auth.Authenticate(c.Context(), tokenStr)
		if err != nil {
			if svcErr, ok := services.AsError(err); ok {
				return c.Status(svcErr.Status).JSON(dto.Error(svcErr.Message))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("invalid token"))
		}

		c.Locals(identityKey, ident)
		return c.Next()
	}
}

// RequireRoles rejects authenticated requests whose role is not listed.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := c.Locals(identityKey).(services.Identity)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("unauthorized"))
		}
		for _, role := range roles {
			if ident.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Error("access denied: insufficient role"))
	}
}

// CurrentIdentity returns the identity stored by Authenticated. The zero
// value is returned on unauthenticated routes.
func CurrentIdentity(c *fiber.Ctx) services.Identity {
	ident, _ := c.Locals(identityKey).(services.Identity)
	return ident
}
