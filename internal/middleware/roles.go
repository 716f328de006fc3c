package middleware

// roles.go — role-based access control. The club has three roles: admin,
// manager, member. Routes that mutate shared state gate on one or more of
// them.

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only members whose role
// matches one of the provided roles, responding 403 Forbidden otherwise.
//
//	api.Post("/events", middleware.RequireRole("admin", "manager"), handlers.CreateEvent(db))
//
// RequireRole must run AFTER Auth, because Auth populates "memberRole" in the
// request context.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberRole, ok := c.Locals("memberRole").(string)
		if !ok || memberRole == "" {
			// No role in context: Auth wasn't applied or failed silently.
			// 403 rather than 401 — the member may be authenticated but roleless.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}
		for _, role := range roles {
			if memberRole == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
