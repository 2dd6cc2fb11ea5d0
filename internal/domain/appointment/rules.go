package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// DailyLimit is the number of bookings one identity may hold per day.
const DailyLimit = 2

// Candidate is a booking request resolved to concrete instants.
// Load must already exclude the appointment being edited.
type Candidate struct {
	Start         time.Time
	Duration      time.Duration
	BarberID      *uint
	Identity      Identity
	Now           time.Time
	ActiveBarbers int
	Load          DayLoad
}

func (c Candidate) End() time.Time {
	return c.Start.Add(c.Duration)
}

type Rule func(h ShopHours, c Candidate) error

// --------------------------------------------------
// Rules
// --------------------------------------------------

func RuleClosedDay(h ShopHours, c Candidate) error {
	if h.IsClosed(c.Start) {
		return errClosedDay(h)
	}
	return nil
}

func RuleGridAligned(h ShopHours, c Candidate) error {
	if !h.OnGrid(c.Start) {
		return errOffGrid(h)
	}
	return nil
}

func RuleShopHours(h ShopHours, c Candidate) error {
	if c.Start.Before(h.OpenAt(c.Start)) || !c.Start.Before(h.CloseAt(c.Start)) {
		return errOutsideHours(h)
	}
	return nil
}

func RuleLastEnd(h ShopHours, c Candidate) error {
	if c.End().After(h.LastEndAt(c.Start)) {
		return errLastEnd(h, timezone.OfDay(c.End().In(h.Location)))
	}
	return nil
}

func RuleNotPast(_ ShopHours, c Candidate) error {
	if timezone.FloorToMinute(c.Start).Before(timezone.FloorToMinute(c.Now)) {
		return errPast
	}
	return nil
}

func RuleIdentityOverlap(_ ShopHours, c Candidate) error {
	if c.Identity.IsZero() {
		return nil
	}
	if len(c.Load.ForIdentity(c.Identity).Overlapping(c.Start, c.End())) > 0 {
		return errDoubleBooked
	}
	return nil
}

func RuleDailyCap(limit int) Rule {
	return func(_ ShopHours, c Candidate) error {
		if c.Identity.IsZero() {
			return nil
		}
		if len(c.Load.ForIdentity(c.Identity)) >= limit {
			return errDailyLimit(limit)
		}
		return nil
	}
}

func RuleBarberFree(_ ShopHours, c Candidate) error {
	if c.BarberID == nil {
		return nil
	}
	if c.Load.BarberBusy(*c.BarberID, c.Start, c.End()) {
		return errBarberBooked
	}
	return nil
}

// RuleCapacity counts every booking overlapping the whole candidate interval.
func RuleCapacity(ceiling int) Rule {
	return func(_ ShopHours, c Candidate) error {
		capacity := EffectiveCapacity(ceiling, c.ActiveBarbers)
		if len(c.Load.Overlapping(c.Start, c.End())) >= capacity {
			return errFullyBooked
		}
		return nil
	}
}

// RuleSegmentCapacity counts per grid segment, so bookings that never
// run together do not add up.
func RuleSegmentCapacity(ceiling int) Rule {
	return func(h ShopHours, c Candidate) error {
		capacity := EffectiveCapacity(ceiling, c.ActiveBarbers)
		if c.Load.PeakConcurrency(c.Start, c.End(), h.Step) >= capacity {
			return errFullyBooked
		}
		return nil
	}
}

// --------------------------------------------------
// Policies
// --------------------------------------------------

// Policy is an ordered rule chain; the first failing rule wins.
type Policy struct {
	Name  string
	Rules []Rule
}

func (p Policy) Validate(h ShopHours, c Candidate) (time.Time, time.Time, error) {
	for _, rule := range p.Rules {
		if err := rule(h, c); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return c.Start, c.End(), nil
}

// PublicPolicy guest self-booking.
func PublicPolicy(capacity int) Policy {
	return Policy{
		Name: "public",
		Rules: []Rule{
			RuleClosedDay,
			RuleGridAligned,
			RuleShopHours,
			RuleLastEnd,
			RuleNotPast,
			RuleIdentityOverlap,
			RuleDailyCap(DailyLimit),
			RuleBarberFree,
			RuleCapacity(capacity),
		},
	}
}

// CustomerPolicy logged-in customers; the past check runs first.
func CustomerPolicy(capacity int) Policy {
	return Policy{
		Name: "customer",
		Rules: []Rule{
			RuleNotPast,
			RuleClosedDay,
			RuleGridAligned,
			RuleShopHours,
			RuleLastEnd,
			RuleIdentityOverlap,
			RuleDailyCap(DailyLimit),
			RuleBarberFree,
			RuleSegmentCapacity(capacity),
		},
	}
}

// AdminPolicy admins may override overlap and capacity.
func AdminPolicy() Policy {
	return Policy{
		Name: "admin",
		Rules: []Rule{
			RuleClosedDay,
			RuleShopHours,
			RuleLastEnd,
		},
	}
}
