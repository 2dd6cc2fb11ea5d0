package models

import "time"

// User is a registered customer, identified by a digits-only phone number.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PhoneNumber  string  `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	Name         string  `gorm:"size:100" json:"name"`
	PasswordHash *string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
