package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// LoadSession attaches the session identity, if any, to the request
// locals so handlers and templates can read it. Applied globally.
func LoadSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Next()
		}
		if username, ok := sess.Get("username").(string); ok && username != "" {
			c.Locals("username", username)
			if userID, ok := sess.Get("user_id").(uint); ok {
				c.Locals("user_id", userID)
			}
		}
		return c.Next()
	}
}

// RequireSession redirects anonymous requests to the login page.
// It expects LoadSession to have run earlier in the chain.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("username").(string); !ok {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests whose session identity is not the
// designated admin account. Ordered after RequireSession, so a missing
// session redirects rather than erroring.
func RequireAdmin(adminUsername string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := c.Locals("username").(string)
		if username != adminUsername {
			return c.Status(fiber.StatusForbidden).SendString("Forbidden: admins only")
		}
		return c.Next()
	}
}
