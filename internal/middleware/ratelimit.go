package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"linkconnect/internal/dto"
	"linkconnect/internal/models"
	"linkconnect/internal/services"
)

// RateLimit wraps fiber's per-IP limiter around the admin-tunable settings.
// The limiter is rebuilt and swapped when the stored config changes, so an
// admin update takes effect without a restart.
func RateLimit(rl *services.RateLimiter) fiber.Handler {
	var (
		mu       sync.Mutex
		windowMs int64
		max      int
		handler  fiber.Handler
	)

	build := func(cfg models.RateLimitSettings) fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        cfg.Max,
			Expiration: time.Duration(cfg.WindowMs) * time.Millisecond,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).
					JSON(dto.Error("too many requests, please try again later"))
			},
		})
	}

	return func(c *fiber.Ctx) error {
		cfg := rl.Config()

		mu.Lock()
		if handler == nil || cfg.WindowMs != windowMs || cfg.Max != max {
			handler = build(cfg)
			windowMs = cfg.WindowMs
			max = cfg.Max
		}
		h := handler
		mu.Unlock()

		return h(c)
	}
}
