package repositories

import "weapondb/internal/models"

// WeaponRepository defines the interface for weapon data access.
type WeaponRepository interface {
	// List returns weapons ordered by id. An empty class returns all
	// classes; limit <= 0 disables paging.
	List(class string, limit, offset int) ([]models.Weapon, error)
	Count(class string) (int64, error)
	GetByID(id uint) (*models.Weapon, error)
	Create(weapon *models.Weapon) error
	// Update writes all editable columns; the image column is written
	// only when includeImage is true.
	Update(weapon *models.Weapon, includeImage bool) error
	Delete(id uint) error
}
