package repositories

import "weapondb/internal/models"

// GadgetRepository defines the interface for gadget data access.
type GadgetRepository interface {
	List(class string) ([]models.Gadget, error)
	GetByID(id uint) (*models.Gadget, error)
	Create(gadget *models.Gadget) error
	Update(gadget *models.Gadget, includeImage bool) error
	Delete(id uint) error
}
