package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type EditBookingInput struct {
	ID      uint
	Actor   Actor
	ActorID *uint
	// UserID must own the appointment when Actor is ActorCustomer.
	UserID *uint

	ServiceID uint
	BarberID  *uint
	Date      string
	Time      string

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Notes         string
}

type EditBooking struct {
	repo      domain.Repository
	validator *ValidateBooking
	locks     *DayLocks
	audit     *audit.Dispatcher
	logger    *slog.Logger
}

func NewEditBooking(
	repo domain.Repository,
	validator *ValidateBooking,
	locks *DayLocks,
	audit *audit.Dispatcher,
	logger *slog.Logger,
) *EditBooking {
	return &EditBooking{
		repo:      repo,
		validator: validator,
		locks:     locks,
		audit:     audit,
		logger:    logger.With("usecase", "edit_booking"),
	}
}

func (uc *EditBooking) Execute(
	ctx context.Context,
	in EditBookingInput,
) (*models.Appointment, error) {

	c, err := normalizeContact(
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
		in.Actor == ActorPublic,
	)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(strings.TrimSpace(in.Date))
	defer unlock()

	var ap *models.Appointment
	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		ap, err = tx.GetAppointment(ctx, in.ID)
		if err != nil {
			return err
		}

		if in.Actor == ActorCustomer && !ownedBy(ap, in.UserID) {
			return fmt.Errorf("appointment %d: %w", in.ID, domain.ErrNotFound)
		}
		if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
			return err
		}

		identity := domain.Identity{UserID: ap.UserID, Phone: c.phone, Email: c.email}

		vb, err := uc.validator.run(ctx, tx, ValidateBookingInput{
			Actor:     in.Actor,
			ServiceID: in.ServiceID,
			BarberID:  in.BarberID,
			Date:      in.Date,
			Time:      in.Time,
			Identity:  identity,
			ExcludeID: &ap.ID,
		})
		if err != nil {
			return err
		}

		end := vb.End
		ap.ServiceID = vb.Service.ID
		ap.Service = vb.Service
		ap.BarberID = in.BarberID
		ap.Barber = vb.Barber
		ap.StartTime = vb.Start
		ap.EndTime = &end
		ap.CustomerName = c.name
		ap.CustomerPhone = optional(c.phone)
		ap.CustomerEmail = optional(c.email)
		ap.Notes = strings.TrimSpace(in.Notes)

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "booking edited", "appointment_id", ap.ID, "actor", in.Actor)

	if in.Actor == ActorAdmin {
		uc.audit.Dispatch(audit.Event{
			ActorID:   in.ActorID,
			ActorRole: string(ActorAdmin),
			Action:    "appointment_updated",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}

func ownedBy(ap *models.Appointment, userID *uint) bool {
	return userID != nil && ap.UserID != nil && *ap.UserID == *userID
}
