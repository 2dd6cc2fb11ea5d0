package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Phone    string `gorm:"size:30" json:"phone"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
