package appointment

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var ErrNotFound = errors.New("not found")

const (
	CodeMissingDateTime = "missing_date_time"
	CodeInvalidDateTime = "invalid_date_time"
	CodeInvalidState    = "invalid_state"

	CodeClosedDay     = "closed_day"
	CodeOffGrid       = "off_grid"
	CodeOutsideHours  = "outside_hours"
	CodeLastEnd       = "last_end_exceeded"
	CodePast          = "past"
	CodeDoubleBooked  = "double_booked"
	CodeDailyLimit    = "daily_limit"
	CodeBarberBooked  = "barber_booked"
	CodeFullyBooked   = "fully_booked"
	CodeContactDenied = "contact_mismatch"
	CodeCancelCutoff  = "cancel_cutoff"
	CodeCancelPast    = "cancel_past"
)

func errClosedDay(h ShopHours) error {
	return httperr.Reject(CodeClosedDay, fmt.Sprintf("The shop is closed on %ss.", h.ClosedDay))
}

func errOffGrid(h ShopHours) error {
	return httperr.Reject(CodeOffGrid, fmt.Sprintf(
		"Appointments start every %d minutes from %s.", int(h.Step.Minutes()), h.Open,
	))
}

func errOutsideHours(h ShopHours) error {
	return httperr.Reject(CodeOutsideHours, fmt.Sprintf("Outside shop hours (%s-%s).", h.Open, h.Close))
}

func errLastEnd(h ShopHours, end timezone.TimeOfDay) error {
	return httperr.Reject(CodeLastEnd, fmt.Sprintf(
		"Booking ends at %s, but last appointment must end by %s", end, h.LastEnd,
	))
}

var (
	errPast         = httperr.Reject(CodePast, "Cannot book in the past.")
	errDoubleBooked = httperr.Reject(CodeDoubleBooked, "You already have an appointment at this time. Cannot double-book.")
	errBarberBooked = httperr.Reject(CodeBarberBooked, "This barber is already booked at this time. Please pick another time or barber.")
	errFullyBooked  = httperr.Reject(CodeFullyBooked, "This time slot is fully booked. Please pick another time.")
)

func errDailyLimit(limit int) error {
	return httperr.Reject(CodeDailyLimit, fmt.Sprintf(
		"You can book at most %d appointments per day. Please contact the shop directly to book more.", limit,
	))
}

// ErrDateTime converts a timezone parse failure into a user-input rejection.
func ErrDateTime(err error) error {
	if errors.Is(err, timezone.ErrMissing) {
		return httperr.Reject(CodeMissingDateTime, "Missing date/time.")
	}
	return httperr.Reject(CodeInvalidDateTime, "Invalid date/time.")
}
