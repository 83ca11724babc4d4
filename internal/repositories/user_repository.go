package repositories

import "weapondb/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	List() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error
}
