package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"weapondb/internal/services"
)

// ClassHandler handles the home page and the cross-entity class overview.
type ClassHandler struct {
	catalog *services.CatalogService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(catalog *services.CatalogService) *ClassHandler {
	return &ClassHandler{
		catalog: catalog,
	}
}

// RegisterRoutes registers the public overview routes.
func (h *ClassHandler) RegisterRoutes(public fiber.Router) {
	public.Get("/", h.HandleHome)
	public.Get("/class/:className", h.HandleOverview)
}

// HandleHome renders the landing page.
func (h *ClassHandler) HandleHome(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title":    "THE FINALS - Weapon Database",
		"Username": currentUsername(c),
	})
}

// HandleOverview renders the weapons, gadgets and specializations of
// one class. The label is free text; an unknown class renders empty.
func (h *ClassHandler) HandleOverview(c *fiber.Ctx) error {
	className := c.Params("className")

	overview, err := h.catalog.ClassOverview(className)
	if err != nil {
		log.Printf("Failed to build class overview for %q: %v", className, err)
		return databaseError(c)
	}

	return c.Render("class", fiber.Map{
		"Title":           className + " Class",
		"ClassName":       className,
		"Weapons":         overview.Weapons,
		"Gadgets":         overview.Gadgets,
		"Specializations": overview.Specializations,
		"Username":        currentUsername(c),
	})
}
