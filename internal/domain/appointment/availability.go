package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	ReasonPast      = "Past"
	ReasonTooLate   = "Too late"
	ReasonFull      = "Full"
	ReasonBooked    = "Booked"
	ReasonNoBarbers = "No barbers"
)

type AvailabilityInput struct {
	Day             time.Time
	ServiceDuration time.Duration
	Barbers         []models.Barber
	BarberID        *uint
	Bookings        []models.Appointment
	Now             time.Time
	Capacity        int
	// PerSegment counts capacity per grid step instead of over the whole slot.
	PerSegment bool
}

type Slot struct {
	Time        string  `json:"time"`
	IsAvailable bool    `json:"is_available"`
	Reason      *string `json:"reason"`
}

func closedReason(h ShopHours) string {
	return fmt.Sprintf("Closed (%s)", h.ClosedDay)
}

// BuildSlots returns one descriptor per grid tick from open to close.
func BuildSlots(h ShopHours, in AvailabilityInput) []Slot {
	ticks := h.Ticks(in.Day)
	slots := make([]Slot, 0, len(ticks))

	mark := func(t time.Time, reason string) {
		s := Slot{Time: t.Format(timezone.TimeLayout)}
		if reason == "" {
			s.IsAvailable = true
		} else {
			r := reason
			s.Reason = &r
		}
		slots = append(slots, s)
	}

	// --------------------------------------------------
	// Whole-day outcomes
	// --------------------------------------------------
	dayReason := ""
	switch {
	case h.IsClosed(in.Day):
		dayReason = closedReason(h)
	case len(in.Barbers) == 0:
		dayReason = ReasonNoBarbers
	}
	if dayReason != "" {
		for _, t := range ticks {
			mark(t, dayReason)
		}
		return slots
	}

	duration := in.ServiceDuration
	if duration <= 0 {
		duration = FallbackDuration
	}

	load := NewDayLoad(in.Bookings)
	capacity := EffectiveCapacity(in.Capacity, len(in.Barbers))
	lastEnd := h.LastEndAt(in.Day)
	now := timezone.FloorToMinute(in.Now)

	// --------------------------------------------------
	// Per tick
	// --------------------------------------------------
	for _, start := range ticks {
		end := start.Add(duration)

		switch {
		case start.Before(now):
			mark(start, ReasonPast)
		case end.After(lastEnd):
			mark(start, ReasonTooLate)
		case concurrent(load, h, in.PerSegment, start, end) >= capacity:
			mark(start, ReasonFull)
		case !anyBarberFree(load, in.Barbers, in.BarberID, start, end):
			mark(start, ReasonBooked)
		default:
			mark(start, "")
		}
	}

	return slots
}

func concurrent(load DayLoad, h ShopHours, perSegment bool, start, end time.Time) int {
	if perSegment {
		return load.PeakConcurrency(start, end, h.Step)
	}
	return len(load.Overlapping(start, end))
}

func anyBarberFree(load DayLoad, barbers []models.Barber, selected *uint, start, end time.Time) bool {
	if selected != nil {
		return !load.BarberBusy(*selected, start, end)
	}
	for _, b := range barbers {
		if !load.BarberBusy(b.ID, start, end) {
			return true
		}
	}
	return false
}
