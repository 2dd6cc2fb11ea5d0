package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissing     = errors.New("missing date or time")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate parses YYYY-MM-DD as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissing
	}
	if len(s) != len(DateLayout) {
		return time.Time{}, ErrInvalidDate
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this wall-clock time on day's calendar date.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func OfDay(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeHHMM accepts exactly HH:MM in 24h form.
func ParseTimeHHMM(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, ErrMissing
	}
	if len(s) != len(TimeLayout) {
		return TimeOfDay{}, ErrInvalidTime
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTime
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func MustParseTimeHHMM(s string) TimeOfDay {
	t, err := ParseTimeHHMM(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDateTime combines ParseDate and ParseTimeHHMM.
func ParseDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTimeHHMM(hm)
	if err != nil {
		return time.Time{}, err
	}
	return t.On(d), nil
}

// --------------------------------------------------
// Calendar grid boundaries
// --------------------------------------------------

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayBounds returns the half-open window [midnight, next midnight).
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

func WeekStartMonday(t time.Time) time.Time {
	d := StartOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func MonthEndExclusive(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// --------------------------------------------------
// Overlap
// --------------------------------------------------

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
