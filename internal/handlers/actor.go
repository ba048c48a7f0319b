package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkhosravi/CourseHubBack/internal/authz"
)

// currentActor rebuilds the authenticated identity the auth middleware
// stashed in request locals.
func currentActor(c *fiber.Ctx) (authz.Actor, bool) {
	userID, ok := c.Locals("user_id").(int64)
	if !ok || userID <= 0 {
		return authz.Actor{}, false
	}
	roleValue, ok := c.Locals("role").(string)
	if !ok {
		return authz.Actor{}, false
	}
	role, ok := authz.ParseRole(roleValue)
	if !ok {
		return authz.Actor{}, false
	}
	return authz.Actor{ID: userID, Role: role}, true
}
