package dto

import (
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	ServiceID     uint      `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	BarberID      *uint     `json:"barber_id"`
	BarberName    string    `json:"barber_name,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	BookingCode   string    `json:"booking_code,omitempty"`
	Guest         bool      `json:"guest"`
}

// FromAppointment renders times in loc.
func FromAppointment(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.StartTime.In(loc),
		EndTime:      domain.EffectiveEnd(ap).In(loc),
		Status:       ap.Status,
		CustomerName: ap.CustomerName,
		ServiceID:    ap.ServiceID,
		BarberID:     ap.BarberID,
		Notes:        ap.Notes,
		Guest:        ap.UserID == nil,
	}
	if ap.CustomerPhone != nil {
		out.CustomerPhone = *ap.CustomerPhone
	}
	if ap.CustomerEmail != nil {
		out.CustomerEmail = *ap.CustomerEmail
	}
	if ap.BookingCode != nil {
		out.BookingCode = *ap.BookingCode
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	if ap.Barber != nil {
		out.BarberName = ap.Barber.Name
	}
	return out
}

func FromAppointments(aps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap, loc))
	}
	return out
}
