package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// DaySnapshot is what the admin day view polls. Version combines the
// latest update, the row count and the ids, so edits, inserts and hard
// deletes all change it.
type DaySnapshot struct {
	Date         string                   `json:"date"`
	Version      string                   `json:"version"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
}

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) (*DaySnapshot, error) {

	day, err := timezone.ParseDate(date, uc.loc)
	if err != nil {
		return nil, domain.ErrDateTime(err)
	}

	start, end := timezone.DayBounds(day)
	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	snap := &DaySnapshot{
		Date:         day.Format(timezone.DateLayout),
		Appointments: dto.FromAppointments(appointments, uc.loc),
	}
	snap.Version = dayVersion(appointments)
	return snap, nil
}

func dayVersion(appointments []models.Appointment) string {
	var latest int64
	var ids uint64
	for _, ap := range appointments {
		if v := ap.UpdatedAt.UnixNano(); v > latest {
			latest = v
		}
		ids += uint64(ap.ID)
	}
	return fmt.Sprintf("%d-%d-%d", latest, len(appointments), ids)
}
