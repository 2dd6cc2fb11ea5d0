package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	CancelledByCustomer = "customer"
	CancelledByAdmin    = "admin"

	// SelfCancelCutoff customers cannot cancel closer than this to the start.
	SelfCancelCutoff = 30 * time.Minute
)

// ===============================
// Domain Actions
// ===============================

// Cancel marks the appointment cancelled and keeps the row.
func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// CanSelfCancel applies the customer-facing cancellation window.
func CanSelfCancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	if ap.StartTime.Before(now) {
		return httperr.Reject(CodeCancelPast, "This appointment is in the past and can no longer be cancelled.")
	}
	if ap.StartTime.Sub(now) < SelfCancelCutoff {
		return httperr.Reject(CodeCancelCutoff,
			"Appointments cannot be cancelled online within 30 minutes of the start time. Please call the shop.")
	}
	return nil
}

// Snapshot copies the appointment into an immutable cancellation record.
func Snapshot(ap *models.Appointment, by string, now time.Time) models.Cancellation {
	end := EffectiveEnd(*ap)

	c := models.Cancellation{
		BookingID:     ap.ID,
		UserID:        ap.UserID,
		BarberID:      ap.BarberID,
		ServiceID:     ap.ServiceID,
		CustomerName:  ap.CustomerName,
		CustomerPhone: ap.CustomerPhone,
		CustomerEmail: ap.CustomerEmail,
		StartTime:     ap.StartTime,
		EndTime:       &end,
		Notes:         ap.Notes,
		BookingCode:   ap.BookingCode,
		CancelledAt:   now,
		CancelledBy:   by,
	}
	if ap.Barber != nil {
		c.BarberName = ap.Barber.Name
	}
	if ap.Service != nil {
		c.ServiceName = ap.Service.Name
	}
	return c
}
