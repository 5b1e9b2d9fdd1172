package middleware

import (
	"time"

	"paylink/internal/logger"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter builds a per-IP fixed-window limiter. Every rejection is
// persisted so abuse patterns survive restarts, and the response carries
// the seconds remaining in the window.
func RateLimiter(max int, window time.Duration, repo repositories.RateLimitRepository) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			retryAfter := int(window.Seconds())

			entry := &models.RateLimitLog{
				IP:         c.IP(),
				Path:       c.Path(),
				RetryAfter: retryAfter,
			}
			if claims, err := utils.GetUserClaims(c); err == nil {
				entry.UserID = &claims.UserID
			}
			if repo != nil {
				if err := repo.Create(entry); err != nil {
					logger.Warnf("failed to record rate limit hit for %s: %v", c.IP(), err)
				}
			}

			c.Set("Retry-After", time.Now().Add(window).UTC().Format(time.RFC1123))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail":      "Too many requests, please try again later",
				"retry_after": retryAfter,
			})
		},
	})
}
