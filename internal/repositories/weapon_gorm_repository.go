package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"weapondb/internal/models"
)

// GORMWeaponRepository is a GORM implementation of WeaponRepository.
type GORMWeaponRepository struct {
	db *gorm.DB
}

// NewGORMWeaponRepository creates a new instance of GORMWeaponRepository.
func NewGORMWeaponRepository(db *gorm.DB) *GORMWeaponRepository {
	return &GORMWeaponRepository{
		db: db,
	}
}

// List retrieves weapons ordered by id, optionally filtered by class and paged.
func (r *GORMWeaponRepository) List(class string, limit, offset int) ([]models.Weapon, error) {
	var weapons []models.Weapon
	query := r.db.Order("id")
	if class != "" {
		query = query.Where("class = ?", class)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&weapons).Error; err != nil {
		return nil, fmt.Errorf("failed to list weapons: %w", err)
	}
	return weapons, nil
}

// Count returns the number of weapons, optionally filtered by class.
func (r *GORMWeaponRepository) Count(class string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Weapon{})
	if class != "" {
		query = query.Where("class = ?", class)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count weapons: %w", err)
	}
	return count, nil
}

// GetByID retrieves a single weapon by its ID.
func (r *GORMWeaponRepository) GetByID(id uint) (*models.Weapon, error) {
	var weapon models.Weapon
	if err := r.db.First(&weapon, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get weapon by ID %d: %w", id, err)
	}
	return &weapon, nil
}

// Create inserts a new weapon.
func (r *GORMWeaponRepository) Create(weapon *models.Weapon) error {
	if err := r.db.Create(weapon).Error; err != nil {
		return fmt.Errorf("failed to create weapon: %w", err)
	}
	return nil
}

// Update writes the editable columns of an existing weapon. The image
// column is appended to the column set only when includeImage is true,
// so an edit without a fresh upload preserves the stored image.
func (r *GORMWeaponRepository) Update(weapon *models.Weapon, includeImage bool) error {
	fields := map[string]interface{}{
		"name":        weapon.Name,
		"class":       weapon.Class,
		"damage":      weapon.Damage,
		"description": weapon.Description,
	}
	if includeImage {
		fields["image_url"] = weapon.ImageURL
	}
	res := r.db.Model(&models.Weapon{}).Where("id = ?", weapon.ID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update weapon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a weapon by ID. Deleting a missing ID is not an error.
func (r *GORMWeaponRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Weapon{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete weapon: %w", err)
	}
	return nil
}
