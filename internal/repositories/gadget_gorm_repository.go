package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"weapondb/internal/models"
)

// GORMGadgetRepository is a GORM implementation of GadgetRepository.
type GORMGadgetRepository struct {
	db *gorm.DB
}

// NewGORMGadgetRepository creates a new instance of GORMGadgetRepository.
func NewGORMGadgetRepository(db *gorm.DB) *GORMGadgetRepository {
	return &GORMGadgetRepository{
		db: db,
	}
}

// List retrieves gadgets ordered by id, optionally filtered by class.
func (r *GORMGadgetRepository) List(class string) ([]models.Gadget, error) {
	var gadgets []models.Gadget
	query := r.db.Order("id")
	if class != "" {
		query = query.Where("class = ?", class)
	}
	if err := query.Find(&gadgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list gadgets: %w", err)
	}
	return gadgets, nil
}

// GetByID retrieves a single gadget by its ID.
func (r *GORMGadgetRepository) GetByID(id uint) (*models.Gadget, error) {
	var gadget models.Gadget
	if err := r.db.First(&gadget, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gadget by ID %d: %w", id, err)
	}
	return &gadget, nil
}

// Create inserts a new gadget.
func (r *GORMGadgetRepository) Create(gadget *models.Gadget) error {
	if err := r.db.Create(gadget).Error; err != nil {
		return fmt.Errorf("failed to create gadget: %w", err)
	}
	return nil
}

// Update writes the editable columns; the image column only when
// includeImage is true.
func (r *GORMGadgetRepository) Update(gadget *models.Gadget, includeImage bool) error {
	fields := map[string]interface{}{
		"name":        gadget.Name,
		"class":       gadget.Class,
		"description": gadget.Description,
	}
	if includeImage {
		fields["image_url"] = gadget.ImageURL
	}
	res := r.db.Model(&models.Gadget{}).Where("id = ?", gadget.ID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update gadget: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a gadget by ID. Deleting a missing ID is not an error.
func (r *GORMGadgetRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Gadget{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete gadget: %w", err)
	}
	return nil
}
