package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weapondb/internal/services"
)

// APIHandler serves the token-authenticated JSON API under /api/v1.
type APIHandler struct {
	catalog     *services.CatalogService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(catalog *services.CatalogService, authService *services.AuthService) *APIHandler {
	return &APIHandler{
		catalog:     catalog,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the API routes under the given router,
// guarding the catalog reads with the JWT middleware.
func (h *APIHandler) RegisterRoutes(router fiber.Router, authGate fiber.Handler) {
	router.Post("/auth/login", h.HandleLogin)
	router.Get("/weapons", authGate, h.HandleWeapons)
	router.Get("/weapons/:id", authGate, h.HandleWeapon)
	router.Get("/gadgets", authGate, h.HandleGadgets)
	router.Get("/specializations", authGate, h.HandleSpecializations)
	router.Get("/maps", authGate, h.HandleMaps)
}

// LoginRequest represents the request body for the API login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles API login and issues a JWT token.
func (h *APIHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err),
		})
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
			})
		}
		log.Printf("API login failed for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database error",
		})
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		log.Printf("Failed to generate token for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleWeapons returns one page of weapons as JSON.
func (h *APIHandler) HandleWeapons(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	class := c.Query("class")

	result, err := h.catalog.ListWeapons(class, page)
	if err != nil {
		log.Printf("Failed to list weapons: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"weapons":     result.Weapons,
		"page":        result.Page,
		"total_pages": result.TotalPages,
		"total":       result.Total,
	})
}

// HandleWeapon returns a single weapon as JSON.
func (h *APIHandler) HandleWeapon(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Weapon not found",
		})
	}

	weapon, err := h.catalog.GetWeapon(id)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Weapon not found",
			})
		}
		log.Printf("Failed to get weapon %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database error",
		})
	}

	return c.JSON(weapon)
}

// HandleGadgets returns gadgets as JSON, optionally filtered by class.
func (h *APIHandler) HandleGadgets(c *fiber.Ctx) error {
	gadgets, err := h.catalog.ListGadgets(c.Query("class"))
	if err != nil {
		log.Printf("Failed to list gadgets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database error",
		})
	}
	return c.JSON(fiber.Map{"gadgets": gadgets})
}

// HandleSpecializations returns specializations as JSON, optionally
// filtered by class.
func (h *APIHandler) HandleSpecializations(c *fiber.Ctx) error {
	specs, err := h.catalog.ListSpecializations(c.Query("class"))
	if err != nil {
		log.Printf("Failed to list specializations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database error",
		})
	}
	return c.JSON(fiber.Map{"specializations": specs})
}

// HandleMaps returns all maps as JSON.
func (h *APIHandler) HandleMaps(c *fiber.Ctx) error {
	maps, err := h.catalog.ListMaps()
	if err != nil {
		log.Printf("Failed to list maps: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database error",
		})
	}
	return c.JSON(fiber.Map{"maps": maps})
}
