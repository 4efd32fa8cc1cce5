package middleware

import (
	"github.com/gofiber/fiber/v2"

	"bakeshop/internal/session"
)

// RequireUser is a Fiber middleware that rejects requests until the session
// provider has resolved an authenticated identity. The resolved user is
// stored in the request context for downstream handlers.
func RequireUser(sess *session.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sess.Ready() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Session is still resolving, try again",
			})
		}

		user := sess.User()
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please log in to continue",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireAdmin is a Fiber middleware that additionally requires the
// administrator role. It must run after RequireUser.
func RequireAdmin(sess *session.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sess.User()
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Administrator access required",
			})
		}
		return c.Next()
	}
}
