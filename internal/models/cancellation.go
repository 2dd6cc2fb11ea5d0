package models

import "time"

// Cancellation is written once, when a customer cancels through the
// self-service API, and never updated afterwards.
type Cancellation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint  `gorm:"not null;index" json:"booking_id"`
	UserID    *uint `json:"user_id"`

	BarberID   *uint  `json:"barber_id"`
	BarberName string `gorm:"size:100" json:"barber_name"`

	ServiceID   uint   `json:"service_id"`
	ServiceName string `gorm:"size:120" json:"service_name"`

	CustomerName  string  `gorm:"size:100" json:"customer_name"`
	CustomerPhone *string `gorm:"size:20" json:"customer_phone"`
	CustomerEmail *string `gorm:"size:120" json:"customer_email"`

	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Notes       string     `gorm:"size:500" json:"notes"`
	BookingCode *string    `gorm:"size:64" json:"booking_code"`

	CancelledAt time.Time `gorm:"not null" json:"cancelled_at"`
	CancelledBy string    `gorm:"size:20;not null" json:"cancelled_by"`
}
