package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"weapondb/internal/services"
)

// AuthHandler handles the login and logout pages.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// RegisterRoutes registers the authentication routes. Logout runs
// behind the supplied session gate.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, sessionGate ...fiber.Handler) {
	router.Get("/login", h.HandleLoginForm)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", withGate(sessionGate, h.HandleLogout)...)
}

// HandleLoginForm renders the login page.
func (h *AuthHandler) HandleLoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title":    "Login",
		"Username": currentUsername(c),
	})
}

// HandleLogin checks the submitted credentials and establishes a
// session. The failure response is identical whether the username is
// unknown or the password is wrong.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.authService.Login(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).SendString("Invalid username or password")
		}
		log.Printf("Login failed for user %s: %v", username, err)
		return databaseError(c)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to open session: %v", err)
		return databaseError(c)
	}
	sess.Set("user_id", user.ID)
	sess.Set("username", user.Username)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session: %v", err)
		return databaseError(c)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLogout destroys the session unconditionally and redirects home.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Printf("Failed to destroy session: %v", err)
		}
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
