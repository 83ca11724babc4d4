package models

import "time"

// Gadget represents a gadget in the catalog. Gadgets share the class
// domain with weapons and specializations but have no damage value.
type Gadget struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=2,max=100"`
	Class       string    `json:"class" gorm:"type:varchar(20);not null;index" validate:"required,oneof=Light Medium Heavy"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	ImageURL    string    `json:"image_url" gorm:"column:image_url;type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
