package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailabilityInput struct {
	Actor     Actor
	Date      string
	ServiceID uint
	BarberID  *uint
}

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
}

func NewGetAvailability(
	repo domain.Repository,
	settings Settings,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: settings,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]domain.Slot, error) {

	hours := uc.settings.Hours

	day, err := timezone.ParseDate(in.Date, hours.Location)
	if err != nil {
		return nil, domain.ErrDateTime(err)
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, fmt.Errorf("service %d: %w", service.ID, domain.ErrNotFound)
	}

	if in.BarberID != nil {
		barber, err := uc.repo.GetBarber(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}
		if !barber.IsActive {
			return nil, fmt.Errorf("barber %d: %w", barber.ID, domain.ErrNotFound)
		}
	}

	barbers, err := uc.repo.ListActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	start, end := timezone.DayBounds(day)
	bookings, err := uc.repo.ListBookingsForDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return domain.BuildSlots(hours, domain.AvailabilityInput{
		Day:             day,
		ServiceDuration: service.Duration(),
		Barbers:         barbers,
		BarberID:        in.BarberID,
		Bookings:        bookings,
		Now:             uc.settings.Clock.Now(),
		Capacity:        uc.settings.GridCapacity(in.Actor),
		PerSegment:      in.Actor == ActorCustomer,
	}), nil
}
