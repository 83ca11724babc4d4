package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"weapondb/internal/models"
)

// GORMGameMapRepository is a GORM implementation of GameMapRepository.
type GORMGameMapRepository struct {
	db *gorm.DB
}

// NewGORMGameMapRepository creates a new instance of GORMGameMapRepository.
func NewGORMGameMapRepository(db *gorm.DB) *GORMGameMapRepository {
	return &GORMGameMapRepository{
		db: db,
	}
}

// List retrieves all maps ordered by id.
func (r *GORMGameMapRepository) List() ([]models.GameMap, error) {
	var maps []models.GameMap
	if err := r.db.Order("id").Find(&maps).Error; err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	return maps, nil
}

// GetByID retrieves a single map by its ID.
func (r *GORMGameMapRepository) GetByID(id uint) (*models.GameMap, error) {
	var gameMap models.GameMap
	if err := r.db.First(&gameMap, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get map by ID %d: %w", id, err)
	}
	return &gameMap, nil
}

// Create inserts a new map.
func (r *GORMGameMapRepository) Create(gameMap *models.GameMap) error {
	if err := r.db.Create(gameMap).Error; err != nil {
		return fmt.Errorf("failed to create map: %w", err)
	}
	return nil
}

// Update writes the editable columns; the image column only when
// includeImage is true.
func (r *GORMGameMapRepository) Update(gameMap *models.GameMap, includeImage bool) error {
	fields := map[string]interface{}{
		"name":        gameMap.Name,
		"location":    gameMap.Location,
		"description": gameMap.Description,
	}
	if includeImage {
		fields["image_url"] = gameMap.ImageURL
	}
	res := r.db.Model(&models.GameMap{}).Where("id = ?", gameMap.ID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update map: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a map by ID. Deleting a missing ID is not an error.
func (r *GORMGameMapRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.GameMap{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}
	return nil
}
