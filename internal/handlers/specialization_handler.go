package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weapondb/internal/models"
	"weapondb/internal/services"
)

// SpecializationHandler handles the specialization catalog pages.
type SpecializationHandler struct {
	catalog  *services.CatalogService
	uploads  *ImageUploader
	validate *validator.Validate
}

// NewSpecializationHandler creates a new SpecializationHandler.
func NewSpecializationHandler(catalog *services.CatalogService, uploads *ImageUploader) *SpecializationHandler {
	return &SpecializationHandler{
		catalog:  catalog,
		uploads:  uploads,
		validate: validator.New(),
	}
}

// RegisterRoutes registers specialization routes. Reads are public;
// mutations run behind the supplied admin gate.
func (h *SpecializationHandler) RegisterRoutes(router fiber.Router, adminGate ...fiber.Handler) {
	router.Get("/specializations", h.HandleList)
	router.Get("/add/specialization", withGate(adminGate, h.HandleAddForm)...)
	router.Post("/add/specialization", withGate(adminGate, h.HandleAdd)...)
	router.Get("/specializations/:id/edit", withGate(adminGate, h.HandleEditForm)...)
	router.Post("/specializations/:id/edit", withGate(adminGate, h.HandleEdit)...)
	router.Post("/specializations/:id/delete", withGate(adminGate, h.HandleDelete)...)
}

// HandleList renders all specializations, optionally filtered by class.
func (h *SpecializationHandler) HandleList(c *fiber.Ctx) error {
	class := c.Query("class")
	specs, err := h.catalog.ListSpecializations(class)
	if err != nil {
		log.Printf("Failed to list specializations: %v", err)
		return databaseError(c)
	}

	return c.Render("specializations", fiber.Map{
		"Title":           "Specializations",
		"Specializations": specs,
		"Class":           class,
		"Username":        currentUsername(c),
	})
}

// HandleAddForm renders the creation form.
func (h *SpecializationHandler) HandleAddForm(c *fiber.Ctx) error {
	return c.Render("add", fiber.Map{
		"Title":     "Add Specialization",
		"Type":      "specialization",
		"ShowClass": true,
		"Username":  currentUsername(c),
	})
}

// HandleAdd creates a specialization from the submitted form.
func (h *SpecializationHandler) HandleAdd(c *fiber.Ctx) error {
	spec, err := h.specFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	if imageURL != "" {
		spec.ImageURL = imageURL
	} else {
		spec.ImageURL = c.FormValue("image_url")
	}

	if err := h.catalog.CreateSpecialization(spec); err != nil {
		log.Printf("Failed to create specialization: %v", err)
		return databaseError(c)
	}
	return c.Redirect("/specializations", fiber.StatusSeeOther)
}

// HandleEditForm renders a pre-filled edit form.
func (h *SpecializationHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Specialization")
	}

	spec, err := h.catalog.GetSpecialization(id)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Specialization")
		}
		log.Printf("Failed to get specialization %d: %v", id, err)
		return databaseError(c)
	}

	return c.Render("edit", fiber.Map{
		"Title":     "Edit Specialization",
		"Type":      "specialization",
		"Item":      spec,
		"ShowClass": true,
		"Username":  currentUsername(c),
	})
}

// HandleEdit updates a specialization; the image only when freshly uploaded.
func (h *SpecializationHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Specialization")
	}

	spec, err := h.specFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}
	spec.ID = id

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	includeImage := imageURL != ""
	spec.ImageURL = imageURL

	if err := h.catalog.UpdateSpecialization(spec, includeImage); err != nil {
		if isNotFound(err) {
			return notFound(c, "Specialization")
		}
		log.Printf("Failed to update specialization %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/specializations", fiber.StatusSeeOther)
}

// HandleDelete removes a specialization. Deleting a missing id still redirects.
func (h *SpecializationHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Specialization")
	}

	if err := h.catalog.DeleteSpecialization(id); err != nil {
		log.Printf("Failed to delete specialization %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/specializations", fiber.StatusSeeOther)
}

// specFromForm binds and validates the specialization form fields.
func (h *SpecializationHandler) specFromForm(c *fiber.Ctx) (*models.Specialization, error) {
	spec := &models.Specialization{
		Name:        c.FormValue("name"),
		Class:       c.FormValue("class"),
		Description: c.FormValue("description"),
	}
	if err := h.validate.Struct(spec); err != nil {
		return nil, err
	}
	return spec, nil
}
