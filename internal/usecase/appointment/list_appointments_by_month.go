package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type MonthView struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

type ListAppointmentsByMonth struct {
	repo  domain.Repository
	hours domain.ShopHours
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	hours domain.ShopHours,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:  repo,
		hours: hours,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) (*MonthView, error) {

	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, httperr.Reject("invalid_month", "Invalid month.")
	}

	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.hours.Location)
	start := timezone.MonthStart(ref)
	end := timezone.MonthEndExclusive(ref)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &MonthView{
		Year:  year,
		Month: month,
		Days:  groupByDay(appointments, start, end, uc.hours),
	}, nil
}
