package models

import "gorm.io/gorm"

// Instants are persisted in UTC so that range filters compare correctly
// on every backend.

func (a *Appointment) BeforeSave(_ *gorm.DB) error {
	a.StartTime = a.StartTime.UTC()
	if a.EndTime != nil {
		end := a.EndTime.UTC()
		a.EndTime = &end
	}
	if a.CancelledAt != nil {
		at := a.CancelledAt.UTC()
		a.CancelledAt = &at
	}
	return nil
}

func (c *Cancellation) BeforeCreate(_ *gorm.DB) error {
	c.StartTime = c.StartTime.UTC()
	c.CancelledAt = c.CancelledAt.UTC()
	if c.EndTime != nil {
		end := c.EndTime.UTC()
		c.EndTime = &end
	}
	return nil
}

func (r *PasswordResetRequest) BeforeSave(_ *gorm.DB) error {
	r.ExpiresAt = r.ExpiresAt.UTC()
	if r.UsedAt != nil {
		at := r.UsedAt.UTC()
		r.UsedAt = &at
	}
	return nil
}
