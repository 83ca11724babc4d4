package models

import "time"

// GameMap represents a playable map. Maps have a location instead of a class.
type GameMap struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=2,max=100"`
	Location    string    `json:"location" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	ImageURL    string    `json:"image_url" gorm:"column:image_url;type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the table named "maps" as in the original schema.
func (GameMap) TableName() string {
	return "maps"
}
