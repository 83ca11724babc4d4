package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weapondb/internal/models"
	"weapondb/internal/services"
)

// UserHandler handles the admin-only account management pages.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers user management routes, all behind the
// supplied admin gate.
func (h *UserHandler) RegisterRoutes(router fiber.Router, adminGate ...fiber.Handler) {
	router.Get("/users", withGate(adminGate, h.HandleList)...)
	router.Get("/add/user", withGate(adminGate, h.HandleAddForm)...)
	router.Post("/add/user", withGate(adminGate, h.HandleAdd)...)
	router.Get("/users/:id/edit", withGate(adminGate, h.HandleEditForm)...)
	router.Post("/users/:id/edit", withGate(adminGate, h.HandleEdit)...)
	router.Post("/users/:id/delete", withGate(adminGate, h.HandleDelete)...)
}

// HandleList renders all accounts.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		return databaseError(c)
	}

	return c.Render("users", fiber.Map{
		"Title":    "Users",
		"Users":    users,
		"Username": currentUsername(c),
	})
}

// HandleAddForm renders the account creation form.
func (h *UserHandler) HandleAddForm(c *fiber.Ctx) error {
	return c.Render("add", fiber.Map{
		"Title":    "Add User",
		"Type":     "user",
		"Username": currentUsername(c),
	})
}

// HandleAdd creates an account; the password is hashed before storage.
func (h *UserHandler) HandleAdd(c *fiber.Ctx) error {
	form := models.User{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	if err := h.validate.Struct(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}

	if _, err := h.userService.CreateUser(form.Username, form.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).SendString("Username already taken")
		}
		log.Printf("Failed to create user: %v", err)
		return databaseError(c)
	}
	return c.Redirect("/users", fiber.StatusSeeOther)
}

// HandleEditForm renders a pre-filled account edit form.
func (h *UserHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "User")
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "User")
		}
		log.Printf("Failed to get user %d: %v", id, err)
		return databaseError(c)
	}

	return c.Render("edit", fiber.Map{
		"Title":    "Edit User",
		"Type":     "user",
		"Item":     user,
		"Username": currentUsername(c),
	})
}

// HandleEdit updates an account. Leaving the password blank keeps the
// existing hash; a submitted password is rehashed.
func (h *UserHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "User")
	}

	form := models.User{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	// A blank password means "keep the current one", so it skips the
	// password rules.
	var verr error
	if form.Password == "" {
		verr = h.validate.StructExcept(&form, "Password")
	} else {
		verr = h.validate.Struct(&form)
	}
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(verr))
	}

	if err := h.userService.UpdateUser(id, form.Username, form.Password); err != nil {
		if isNotFound(err) {
			return notFound(c, "User")
		}
		log.Printf("Failed to update user %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/users", fiber.StatusSeeOther)
}

// HandleDelete removes an account. Deleting a missing id still redirects.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "User")
	}

	if err := h.userService.DeleteUser(id); err != nil {
		log.Printf("Failed to delete user %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/users", fiber.StatusSeeOther)
}
