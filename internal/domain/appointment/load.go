package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// FallbackDuration is used for rows with neither end_time nor a service.
const FallbackDuration = 30 * time.Minute

func EffectiveEnd(ap models.Appointment) time.Time {
	if ap.EndTime != nil {
		return *ap.EndTime
	}
	if ap.Service != nil && ap.Service.DurationMin > 0 {
		return ap.StartTime.Add(ap.Service.Duration())
	}
	return ap.StartTime.Add(FallbackDuration)
}

// Busy is one occupied interval of the day.
type Busy struct {
	ID       uint
	BarberID *uint
	UserID   *uint
	Phone    string
	Email    string
	Start    time.Time
	End      time.Time
}

func (b Busy) Overlaps(start, end time.Time) bool {
	return timezone.Overlaps(b.Start, b.End, start, end)
}

// DayLoad is the set of non-cancelled bookings of one day.
type DayLoad []Busy

func NewDayLoad(aps []models.Appointment) DayLoad {
	load := make(DayLoad, 0, len(aps))
	for _, ap := range aps {
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		b := Busy{
			ID:       ap.ID,
			BarberID: ap.BarberID,
			UserID:   ap.UserID,
			Start:    ap.StartTime,
			End:      EffectiveEnd(ap),
		}
		if ap.CustomerPhone != nil {
			b.Phone = *ap.CustomerPhone
		}
		if ap.CustomerEmail != nil {
			b.Email = strings.ToLower(*ap.CustomerEmail)
		}
		load = append(load, b)
	}
	return load
}

// Without drops the booking being edited.
func (d DayLoad) Without(id *uint) DayLoad {
	if id == nil {
		return d
	}
	out := make(DayLoad, 0, len(d))
	for _, b := range d {
		if b.ID != *id {
			out = append(out, b)
		}
	}
	return out
}

func (d DayLoad) Overlapping(start, end time.Time) DayLoad {
	var out DayLoad
	for _, b := range d {
		if b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out
}

// PeakConcurrency is the highest number of bookings sharing any
// step-sized segment of [start, end).
func (d DayLoad) PeakConcurrency(start, end time.Time, step time.Duration) int {
	if step <= 0 || end.Sub(start) <= step {
		return len(d.Overlapping(start, end))
	}

	peak := 0
	for seg := start; seg.Before(end); seg = seg.Add(step) {
		segEnd := seg.Add(step)
		if segEnd.After(end) {
			segEnd = end
		}
		if n := len(d.Overlapping(seg, segEnd)); n > peak {
			peak = n
		}
	}
	return peak
}

func (d DayLoad) BarberBusy(barberID uint, start, end time.Time) bool {
	for _, b := range d {
		if b.BarberID != nil && *b.BarberID == barberID && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func (d DayLoad) ForIdentity(id Identity) DayLoad {
	var out DayLoad
	for _, b := range d {
		if id.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// Identity is who a booking belongs to: a registered user or a guest
// reachable by phone or email.
type Identity struct {
	UserID *uint
	Phone  string
	Email  string
}

func (i Identity) IsZero() bool {
	return i.UserID == nil && i.Phone == "" && i.Email == ""
}

func (i Identity) Matches(b Busy) bool {
	if i.UserID != nil && b.UserID != nil && *i.UserID == *b.UserID {
		return true
	}
	if i.Phone != "" && b.Phone == i.Phone {
		return true
	}
	if i.Email != "" && b.Email == strings.ToLower(i.Email) {
		return true
	}
	return false
}

// EffectiveCapacity is the configured ceiling bounded by the active roster.
func EffectiveCapacity(ceiling, activeBarbers int) int {
	if activeBarbers < ceiling {
		return activeBarbers
	}
	return ceiling
}
