package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weapondb/internal/models"
	"weapondb/internal/services"
)

// GameMapHandler handles the map catalog pages.
type GameMapHandler struct {
	catalog  *services.CatalogService
	uploads  *ImageUploader
	validate *validator.Validate
}

// NewGameMapHandler creates a new GameMapHandler.
func NewGameMapHandler(catalog *services.CatalogService, uploads *ImageUploader) *GameMapHandler {
	return &GameMapHandler{
		catalog:  catalog,
		uploads:  uploads,
		validate: validator.New(),
	}
}

// RegisterRoutes registers map routes. Reads are public; mutations run
// behind the supplied admin gate.
func (h *GameMapHandler) RegisterRoutes(router fiber.Router, adminGate ...fiber.Handler) {
	router.Get("/maps", h.HandleList)
	router.Get("/add/map", withGate(adminGate, h.HandleAddForm)...)
	router.Post("/add/map", withGate(adminGate, h.HandleAdd)...)
	router.Get("/maps/:id/edit", withGate(adminGate, h.HandleEditForm)...)
	router.Post("/maps/:id/edit", withGate(adminGate, h.HandleEdit)...)
	router.Post("/maps/:id/delete", withGate(adminGate, h.HandleDelete)...)
}

// HandleList renders all maps.
func (h *GameMapHandler) HandleList(c *fiber.Ctx) error {
	maps, err := h.catalog.ListMaps()
	if err != nil {
		log.Printf("Failed to list maps: %v", err)
		return databaseError(c)
	}

	return c.Render("maps", fiber.Map{
		"Title":    "Maps",
		"Maps":     maps,
		"Username": currentUsername(c),
	})
}

// HandleAddForm renders the creation form.
func (h *GameMapHandler) HandleAddForm(c *fiber.Ctx) error {
	return c.Render("add", fiber.Map{
		"Title":    "Add Map",
		"Type":     "map",
		"Username": currentUsername(c),
	})
}

// HandleAdd creates a map from the submitted form.
func (h *GameMapHandler) HandleAdd(c *fiber.Ctx) error {
	gameMap, err := h.mapFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	if imageURL != "" {
		gameMap.ImageURL = imageURL
	} else {
		gameMap.ImageURL = c.FormValue("image_url")
	}

	if err := h.catalog.CreateMap(gameMap); err != nil {
		log.Printf("Failed to create map: %v", err)
		return databaseError(c)
	}
	return c.Redirect("/maps", fiber.StatusSeeOther)
}

// HandleEditForm renders a pre-filled edit form.
func (h *GameMapHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Map")
	}

	gameMap, err := h.catalog.GetMap(id)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Map")
		}
		log.Printf("Failed to get map %d: %v", id, err)
		return databaseError(c)
	}

	return c.Render("edit", fiber.Map{
		"Title":    "Edit Map",
		"Type":     "map",
		"Item":     gameMap,
		"Username": currentUsername(c),
	})
}

// HandleEdit updates a map; the image only when freshly uploaded.
func (h *GameMapHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Map")
	}

	gameMap, err := h.mapFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}
	gameMap.ID = id

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	includeImage := imageURL != ""
	gameMap.ImageURL = imageURL

	if err := h.catalog.UpdateMap(gameMap, includeImage); err != nil {
		if isNotFound(err) {
			return notFound(c, "Map")
		}
		log.Printf("Failed to update map %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/maps", fiber.StatusSeeOther)
}

// HandleDelete removes a map. Deleting a missing id still redirects.
func (h *GameMapHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Map")
	}

	if err := h.catalog.DeleteMap(id); err != nil {
		log.Printf("Failed to delete map %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/maps", fiber.StatusSeeOther)
}

// mapFromForm binds and validates the map form fields.
func (h *GameMapHandler) mapFromForm(c *fiber.Ctx) (*models.GameMap, error) {
	gameMap := &models.GameMap{
		Name:        c.FormValue("name"),
		Location:    c.FormValue("location"),
		Description: c.FormValue("description"),
	}
	if err := h.validate.Struct(gameMap); err != nil {
		return nil, err
	}
	return gameMap, nil
}
