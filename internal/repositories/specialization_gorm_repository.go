package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"weapondb/internal/models"
)

// GORMSpecializationRepository is a GORM implementation of SpecializationRepository.
type GORMSpecializationRepository struct {
	db *gorm.DB
}

// NewGORMSpecializationRepository creates a new instance of GORMSpecializationRepository.
func NewGORMSpecializationRepository(db *gorm.DB) *GORMSpecializationRepository {
	return &GORMSpecializationRepository{
		db: db,
	}
}

// List retrieves specializations ordered by id, optionally filtered by class.
func (r *GORMSpecializationRepository) List(class string) ([]models.Specialization, error) {
	var specs []models.Specialization
	query := r.db.Order("id")
	if class != "" {
		query = query.Where("class = ?", class)
	}
	if err := query.Find(&specs).Error; err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	return specs, nil
}

// GetByID retrieves a single specialization by its ID.
func (r *GORMSpecializationRepository) GetByID(id uint) (*models.Specialization, error) {
	var spec models.Specialization
	if err := r.db.First(&spec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get specialization by ID %d: %w", id, err)
	}
	return &spec, nil
}

// Create inserts a new specialization.
func (r *GORMSpecializationRepository) Create(spec *models.Specialization) error {
	if err := r.db.Create(spec).Error; err != nil {
		return fmt.Errorf("failed to create specialization: %w", err)
	}
	return nil
}

// Update writes the editable columns; the image column only when
// includeImage is true.
func (r *GORMSpecializationRepository) Update(spec *models.Specialization, includeImage bool) error {
	fields := map[string]interface{}{
		"name":        spec.Name,
		"class":       spec.Class,
		"description": spec.Description,
	}
	if includeImage {
		fields["image_url"] = spec.ImageURL
	}
	res := r.db.Model(&models.Specialization{}).Where("id = ?", spec.ID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update specialization: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a specialization by ID. Deleting a missing ID is not an error.
func (r *GORMSpecializationRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Specialization{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete specialization: %w", err)
	}
	return nil
}
