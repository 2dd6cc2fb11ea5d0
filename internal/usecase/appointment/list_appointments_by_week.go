package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CalendarDay struct {
	Date         string                   `json:"date"`
	Closed       bool                     `json:"closed"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
}

type WeekView struct {
	Start string        `json:"start"`
	Days  []CalendarDay `json:"days"`
}

type ListAppointmentsByWeek struct {
	repo  domain.Repository
	hours domain.ShopHours
}

func NewListAppointmentsByWeek(
	repo domain.Repository,
	hours domain.ShopHours,
) *ListAppointmentsByWeek {
	return &ListAppointmentsByWeek{
		repo:  repo,
		hours: hours,
	}
}

func (uc *ListAppointmentsByWeek) Execute(
	ctx context.Context,
	date string,
) (*WeekView, error) {

	day, err := timezone.ParseDate(date, uc.hours.Location)
	if err != nil {
		return nil, domain.ErrDateTime(err)
	}

	start := timezone.WeekStartMonday(day)
	end := start.AddDate(0, 0, 7)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &WeekView{
		Start: start.Format(timezone.DateLayout),
		Days:  groupByDay(appointments, start, end, uc.hours),
	}, nil
}

// groupByDay emits one entry per calendar day in [start, end).
func groupByDay(
	appointments []models.Appointment,
	start time.Time,
	end time.Time,
	hours domain.ShopHours,
) []CalendarDay {

	byDate := make(map[string][]dto.AppointmentListDTO)
	for _, ap := range appointments {
		key := ap.StartTime.In(hours.Location).Format(timezone.DateLayout)
		byDate[key] = append(byDate[key], dto.FromAppointment(ap, hours.Location))
	}

	var days []CalendarDay
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(timezone.DateLayout)
		list := byDate[key]
		if list == nil {
			list = []dto.AppointmentListDTO{}
		}
		days = append(days, CalendarDay{
			Date:         key,
			Closed:       hours.IsClosed(d),
			Appointments: list,
		})
	}
	return days
}
