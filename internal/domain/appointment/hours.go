package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ShopHours describes the single weekly schedule of the shop.
// LastEnd is the latest allowed end of an appointment and sits
// before Close.
type ShopHours struct {
	Location  *time.Location
	Open      timezone.TimeOfDay
	Close     timezone.TimeOfDay
	LastEnd   timezone.TimeOfDay
	ClosedDay time.Weekday
	Step      time.Duration
}

func DefaultShopHours(loc *time.Location) ShopHours {
	return ShopHours{
		Location:  loc,
		Open:      timezone.TimeOfDay{Hour: 11},
		Close:     timezone.TimeOfDay{Hour: 19},
		LastEnd:   timezone.TimeOfDay{Hour: 18, Minute: 30},
		ClosedDay: time.Monday,
		Step:      30 * time.Minute,
	}
}

func (h ShopHours) local(t time.Time) time.Time {
	return t.In(h.Location)
}

func (h ShopHours) IsClosed(day time.Time) bool {
	return h.local(day).Weekday() == h.ClosedDay
}

func (h ShopHours) OpenAt(day time.Time) time.Time {
	return h.Open.On(h.local(day))
}

func (h ShopHours) CloseAt(day time.Time) time.Time {
	return h.Close.On(h.local(day))
}

func (h ShopHours) LastEndAt(day time.Time) time.Time {
	return h.LastEnd.On(h.local(day))
}

// SlotCount is the number of grid ticks between open and close.
func (h ShopHours) SlotCount() int {
	return int(time.Duration(h.Close.Minutes()-h.Open.Minutes()) * time.Minute / h.Step)
}

// Ticks lists every slot start in [open, close) for day.
func (h ShopHours) Ticks(day time.Time) []time.Time {
	open := h.OpenAt(day)
	ticks := make([]time.Time, 0, h.SlotCount())
	for i := 0; i < h.SlotCount(); i++ {
		ticks = append(ticks, open.Add(time.Duration(i)*h.Step))
	}
	return ticks
}

// OnGrid reports whether t falls exactly on a slot boundary.
func (h ShopHours) OnGrid(t time.Time) bool {
	lt := h.local(t)
	if lt.Second() != 0 || lt.Nanosecond() != 0 {
		return false
	}
	step := int(h.Step.Minutes())
	if step <= 0 {
		return true
	}
	diff := timezone.OfDay(lt).Minutes() - h.Open.Minutes()
	return ((diff%step)+step)%step == 0
}
