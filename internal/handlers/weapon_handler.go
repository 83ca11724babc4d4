package handlers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weapondb/internal/models"
	"weapondb/internal/services"
)

// WeaponHandler handles the weapon catalog pages.
type WeaponHandler struct {
	catalog  *services.CatalogService
	uploads  *ImageUploader
	validate *validator.Validate
}

// NewWeaponHandler creates a new WeaponHandler.
func NewWeaponHandler(catalog *services.CatalogService, uploads *ImageUploader) *WeaponHandler {
	return &WeaponHandler{
		catalog:  catalog,
		uploads:  uploads,
		validate: validator.New(),
	}
}

// RegisterRoutes registers weapon routes. Reads are public; mutations
// run behind the supplied admin gate.
func (h *WeaponHandler) RegisterRoutes(router fiber.Router, adminGate ...fiber.Handler) {
	router.Get("/weapons", h.HandleList)
	router.Get("/weapons/:id", h.HandleDetail)
	router.Get("/add/weapon", withGate(adminGate, h.HandleAddForm)...)
	router.Post("/add/weapon", withGate(adminGate, h.HandleAdd)...)
	router.Get("/weapons/:id/edit", withGate(adminGate, h.HandleEditForm)...)
	router.Post("/weapons/:id/edit", withGate(adminGate, h.HandleEdit)...)
	router.Post("/weapons/:id/delete", withGate(adminGate, h.HandleDelete)...)
}

// HandleList renders a page of weapons, optionally filtered by class.
func (h *WeaponHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	class := c.Query("class")

	result, err := h.catalog.ListWeapons(class, page)
	if err != nil {
		log.Printf("Failed to list weapons: %v", err)
		return databaseError(c)
	}

	return c.Render("weapons", fiber.Map{
		"Title":      "Weapons",
		"Weapons":    result.Weapons,
		"Page":       result.Page,
		"TotalPages": result.TotalPages,
		"Class":      class,
		"Username":   currentUsername(c),
	})
}

// HandleDetail renders a single weapon.
func (h *WeaponHandler) HandleDetail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Weapon")
	}

	weapon, err := h.catalog.GetWeapon(id)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Weapon")
		}
		log.Printf("Failed to get weapon %d: %v", id, err)
		return databaseError(c)
	}

	return c.Render("weapon-detail", fiber.Map{
		"Title":    weapon.Name,
		"Weapon":   weapon,
		"Username": currentUsername(c),
	})
}

// HandleAddForm renders the creation form.
func (h *WeaponHandler) HandleAddForm(c *fiber.Ctx) error {
	return c.Render("add", fiber.Map{
		"Title":     "Add Weapon",
		"Type":      "weapon",
		"ShowClass": true,
		"Username":  currentUsername(c),
	})
}

// HandleAdd creates a weapon from the submitted form. An attached
// upload overrides any client-supplied image URL.
func (h *WeaponHandler) HandleAdd(c *fiber.Ctx) error {
	weapon, err := h.weaponFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	if imageURL != "" {
		weapon.ImageURL = imageURL
	} else {
		weapon.ImageURL = c.FormValue("image_url")
	}

	if err := h.catalog.CreateWeapon(weapon); err != nil {
		log.Printf("Failed to create weapon: %v", err)
		return databaseError(c)
	}
	return c.Redirect("/weapons", fiber.StatusSeeOther)
}

// HandleEditForm renders a pre-filled edit form.
func (h *WeaponHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Weapon")
	}

	weapon, err := h.catalog.GetWeapon(id)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Weapon")
		}
		log.Printf("Failed to get weapon %d: %v", id, err)
		return databaseError(c)
	}

	return c.Render("edit", fiber.Map{
		"Title":     "Edit Weapon",
		"Type":      "weapon",
		"Item":      weapon,
		"ShowClass": true,
		"Username":  currentUsername(c),
	})
}

// HandleEdit updates all editable fields. The stored image is replaced
// only when a new file was uploaded with this submission.
func (h *WeaponHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Weapon")
	}

	weapon, err := h.weaponFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(validationMessage(err))
	}
	weapon.ID = id

	imageURL, err := h.uploads.Save(c)
	if err != nil {
		return respondUploadError(c, err)
	}
	includeImage := imageURL != ""
	weapon.ImageURL = imageURL

	if err := h.catalog.UpdateWeapon(weapon, includeImage); err != nil {
		if isNotFound(err) {
			return notFound(c, "Weapon")
		}
		log.Printf("Failed to update weapon %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/weapons", fiber.StatusSeeOther)
}

// HandleDelete removes a weapon. Deleting a missing id still redirects.
func (h *WeaponHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Weapon")
	}

	if err := h.catalog.DeleteWeapon(id); err != nil {
		log.Printf("Failed to delete weapon %d: %v", id, err)
		return databaseError(c)
	}
	return c.Redirect("/weapons", fiber.StatusSeeOther)
}

// weaponFromForm binds and validates the weapon form fields.
func (h *WeaponHandler) weaponFromForm(c *fiber.Ctx) (*models.Weapon, error) {
	damage := 0
	if raw := c.FormValue("damage"); raw != "" {
		var err error
		if damage, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("field 'Damage' must be a number")
		}
	}
	weapon := &models.Weapon{
		Name:        c.FormValue("name"),
		Class:       c.FormValue("class"),
		Damage:      damage,
		Description: c.FormValue("description"),
	}
	if err := h.validate.Struct(weapon); err != nil {
		return nil, err
	}
	return weapon, nil
}
