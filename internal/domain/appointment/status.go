package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanEdit only booked appointments accept changes.
func CanEdit(current Status) error {
	if current != StatusBooked {
		return httperr.Reject(CodeInvalidState, "Only booked appointments can be changed.")
	}
	return nil
}

// CanCancel cancelled is terminal.
func CanCancel(current Status) error {
	if current != StatusBooked {
		return httperr.Reject(CodeInvalidState, "This appointment is already cancelled.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusBooked
}
