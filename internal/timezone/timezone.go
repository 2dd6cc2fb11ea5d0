package timezone

import "time"

const DefaultTimezone = "America/Toronto"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return FloorToMinute(time.Now().In(Location(DefaultTimezone)))
}

func NowIn(tz string) time.Time {
	return FloorToMinute(time.Now().In(Location(tz)))
}

// FloorToMinute drops seconds and sub-second precision.
func FloorToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// --------------------------------------------------
// Clock
// --------------------------------------------------

type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Loc *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	return SystemClock{Loc: loc}
}

func (c SystemClock) Now() time.Time {
	return FloorToMinute(time.Now().In(c.Loc))
}
