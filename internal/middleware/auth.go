package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/internal/services"
)

type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired resolves the bearer token against the session store and
// stashes the caller's identity in request locals. A session-store
// failure is surfaced as 503, never as 401.
func AuthRequired(sessions sessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		token := parts[1]
		user, err := sessions.Resolve(c.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid or expired session",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Session store unavailable",
			})
		}

		c.Locals("user_id", user.ID)
		c.Locals("role", user.Role)
		c.Locals("session_token", token)

		return c.Next()
	}
}
