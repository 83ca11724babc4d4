package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weapondb/internal/repositories"
)

// currentUsername returns the session identity set by the session
// middleware, or "" for anonymous requests.
func currentUsername(c *fiber.Ctx) string {
	username, _ := c.Locals("username").(string)
	return username
}

// parseID reads the :id path parameter as a positive integer.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}

// databaseError responds with the fixed persistence-failure message.
func databaseError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString("Database error")
}

// notFound responds 404 with a fixed per-entity message.
func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).SendString(what + " not found")
}

// isNotFound reports whether err is the repository not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}

// withGate prefixes a terminal handler with its guard middleware so a
// route can be registered as router.Get(path, withGate(gate, h)...).
func withGate(gate []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(gate)+1)
	chain = append(chain, gate...)
	return append(chain, handler)
}

// validationMessage flattens validator errors into one line for a 400 body.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Validation failed: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag()))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
