package repositories

import "weapondb/internal/models"

// SpecializationRepository defines the interface for specialization data access.
type SpecializationRepository interface {
	List(class string) ([]models.Specialization, error)
	GetByID(id uint) (*models.Specialization, error)
	Create(spec *models.Specialization) error
	Update(spec *models.Specialization, includeImage bool) error
	Delete(id uint) error
}
