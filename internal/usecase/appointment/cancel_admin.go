package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// CancelBookingAdmin keeps the row and marks it cancelled so the
// calendar history survives.
type CancelBookingAdmin struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewCancelBookingAdmin(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *CancelBookingAdmin {
	return &CancelBookingAdmin{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *CancelBookingAdmin) Execute(
	ctx context.Context,
	appointmentID uint,
	adminID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.WithLabelValues(domain.CancelledByAdmin).Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:   adminID,
		ActorRole: string(ActorAdmin),
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
