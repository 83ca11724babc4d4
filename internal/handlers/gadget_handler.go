package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weapondb/internal/models"
	"weapondb/internal/services"
)

// GadgetHandler handles the gadget catalog pages.
type GadgetHandler struct {
	catalog  *services.CatalogService
	uploads  *ImageUploader
	validate *validator.Validate
}

// NewGadgetHandler creates a new GadgetHandler.
func NewGadgetHandler(catalog *services.CatalogService, uploads *ImageUploader) *GadgetHandler {
	return &GadgetHandler{
		catalog:  catalog,
		uploads:  uploads,
		validate: validator.New(),
	}
}

// RegisterRoutes registers gadget routes. Reads are public; mutations
// run behind the supplied admin gate.
func (h *GadgetHandler) RegisterRoutes(router fiber.Router, adminGate ...fiber.Handler) {
	router.Get("/gadgets", h.HandleList)
	router.Get("/add/gadget", withGate(adminGate, h.HandleAddForm)...)
	router.Post("/add/gadget", withGate(adminGate, h.HandleAdd)...)
	router.Get("/gadgets/:id/edit", withGate(adminGate, h.HandleEditForm)...)
	router.Post("/gadgets/:id/edit", withGate(adminGate, h.HandleEdit)...)
	router.Post("/gadgets/:id/delete", withGate(adminGate, h.HandleDelete)...)
}

// HandleList renders all gadgets, optionally filtered by class.
func (h *GadgetHandler) HandleList(c *fiber.Ctx) error {
	class := c.Query("class")
	gadgets, err := h.catalog.ListGadgets(class)
	if err != nil {
		log.Printf("Failed to list gadgets: %v", err)
		return databaseError(c)
	}

	return c.Render("gadgets", fiber.Map{
		"Title":    "Gadgets",
		"Gadgets":  gadgets,
		"Class":    class,
		"Username": currentUsername(c),
	})
}

// HandleAddForm renders the creation form.
func (h *GadgetHandler) HandleAddForm(c *fiber.Ctx) error {
	return c.Render("add", fiber.Map{
		"Title":     "Add Gadget",
		"Type":      "gadget",
		"ShowClass": true,
		"Username":  currentUsername(c),
	})
}

// HandleAdd creates a gadget from the submitted form.
func (h *GadgetHandler) HandleAdd(c *fiber.Ctx) error {
	gadget, err := h.gadgetFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	if imageURL != "" {
		gadget.ImageURL = imageURL
	} else {
		gadget.ImageURL = c.FormValue("image_url")
	}

	if err := h.catalog.CreateGadget(gadget); err != nil {
		log.Printf("Failed to create gadget: %v", err)
		return databaseError(c)
	}
	return c.Redirect("/gadgets", fiber.StatusSeeOther)
}

// HandleEditForm renders a pre-filled edit form.
func (h *GadgetHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Gadget")
	}

	gadget, err := h.catalog.GetGadget(id)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Gadget")
		}
		log.Printf("Failed to get gadget %d: %v", id, err)
		return databaseError(c)
	}

	return c.Render("edit", fiber.Map{
		"Title":     "Edit Gadget",
		"Type":      "gadget",
		"Item":      gadget,
		"ShowClass": true,
		"Username":  currentUsername(c),
	})
}

// HandleEdit updates a gadget; the image only when freshly uploaded.
func (h *GadgetHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Gadget")
	}

	gadget, err := h.gadgetFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}
	gadget.ID = id

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	includeImage := imageURL != ""
	gadget.ImageURL = imageURL

	if err := h.catalog.UpdateGadget(gadget, includeImage); err != nil {
		if isNotFound(err) {
			return notFound(c, "Gadget")
		}
		log.Printf("Failed to update gadget %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/gadgets", fiber.StatusSeeOther)
}

// HandleDelete removes a gadget. Deleting a missing id still redirects.
func (h *GadgetHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Gadget")
	}

	if err := h.catalog.DeleteGadget(id); err != nil {
		log.Printf("Failed to delete gadget %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/gadgets", fiber.StatusSeeOther)
}

// gadgetFromForm binds and validates the gadget form fields.
func (h *GadgetHandler) gadgetFromForm(c *fiber.Ctx) (*models.Gadget, error) {
	gadget := &models.Gadget{
		Name:        c.FormValue("name"),
		Class:       c.FormValue("class"),
		Description: c.FormValue("description"),
	}
	if err := h.validate.Struct(gadget); err != nil {
		return nil, err
	}
	return gadget, nil
}
