package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BarberID *uint   `gorm:"index" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber,omitempty"`

	ServiceID uint     `gorm:"not null;index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	CustomerName  string  `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone *string `gorm:"size:20;index" json:"customer_phone"`
	CustomerEmail *string `gorm:"size:120" json:"customer_email"`

	StartTime time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	Notes  string `gorm:"size:500" json:"notes"`
	Status string `gorm:"size:20;default:'booked';index" json:"status"`

	BookingCode *string `gorm:"size:64;uniqueIndex" json:"booking_code,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
