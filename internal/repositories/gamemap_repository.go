package repositories

import "weapondb/internal/models"

// GameMapRepository defines the interface for map data access.
type GameMapRepository interface {
	List() ([]models.GameMap, error)
	GetByID(id uint) (*models.GameMap, error)
	Create(gameMap *models.GameMap) error
	Update(gameMap *models.GameMap, includeImage bool) error
	Delete(id uint) error
}
