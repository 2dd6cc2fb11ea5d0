package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ValidateBookingInput struct {
	Actor     Actor
	ServiceID uint
	BarberID  *uint
	Date      string
	Time      string
	Identity  domain.Identity
	ExcludeID *uint
}

type ValidatedBooking struct {
	Start   time.Time
	End     time.Time
	Service *models.Service
	Barber  *models.Barber
}

// ======================================================
// USE CASE
// ======================================================

type ValidateBooking struct {
	repo     domain.Repository
	settings Settings
}

func NewValidateBooking(
	repo domain.Repository,
	settings Settings,
) *ValidateBooking {
	return &ValidateBooking{
		repo:     repo,
		settings: settings,
	}
}

func (uc *ValidateBooking) Execute(
	ctx context.Context,
	in ValidateBookingInput,
) (*ValidatedBooking, error) {
	return uc.run(ctx, uc.repo, in)
}

// run validates against repo, which may be bound to a transaction.
func (uc *ValidateBooking) run(
	ctx context.Context,
	repo domain.Repository,
	in ValidateBookingInput,
) (*ValidatedBooking, error) {

	hours := uc.settings.Hours

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time, hours.Location)
	if err != nil {
		return nil, domain.ErrDateTime(err)
	}

	service, err := repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive && in.Actor != ActorAdmin {
		return nil, fmt.Errorf("service %d: %w", service.ID, domain.ErrNotFound)
	}

	var barber *models.Barber
	if in.BarberID != nil {
		barber, err = repo.GetBarber(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}
		if !barber.IsActive && in.Actor != ActorAdmin {
			return nil, fmt.Errorf("barber %d: %w", barber.ID, domain.ErrNotFound)
		}
	}

	// --------------------------------------------------
	// Day load
	// --------------------------------------------------
	barbers, err := repo.ListActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := timezone.DayBounds(start)
	bookings, err := repo.ListBookingsForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Rule chain
	// --------------------------------------------------
	policy := uc.settings.Policy(in.Actor)
	from, to, err := policy.Validate(hours, domain.Candidate{
		Start:         start,
		Duration:      service.Duration(),
		BarberID:      in.BarberID,
		Identity:      in.Identity,
		Now:           uc.settings.Clock.Now(),
		ActiveBarbers: len(barbers),
		Load:          domain.NewDayLoad(bookings).Without(in.ExcludeID),
	})
	if err != nil {
		if be, ok := httperr.AsBusiness(err); ok {
			metrics.BookingsRejected.WithLabelValues(string(in.Actor), be.Code).Inc()
		}
		return nil, err
	}

	return &ValidatedBooking{
		Start:   from,
		End:     to,
		Service: service,
		Barber:  barber,
	}, nil
}
