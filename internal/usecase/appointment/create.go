package appointment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/bookingcode"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor   Actor
	ActorID *uint
	UserID  *uint

	ServiceID uint
	BarberID  *uint
	Date      string
	Time      string

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo      domain.Repository
	validator *ValidateBooking
	codes     *bookingcode.Generator
	locks     *DayLocks
	audit     *audit.Dispatcher
	logger    *slog.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	validator *ValidateBooking,
	codes *bookingcode.Generator,
	locks *DayLocks,
	audit *audit.Dispatcher,
	logger *slog.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:      repo,
		validator: validator,
		codes:     codes,
		locks:     locks,
		audit:     audit,
		logger:    logger.With("usecase", "create_booking"),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Contact
	// --------------------------------------------------
	c, err := normalizeContact(
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
		in.Actor == ActorPublic,
	)
	if err != nil {
		return nil, err
	}

	identity := domain.Identity{UserID: in.UserID, Phone: c.phone, Email: c.email}

	// --------------------------------------------------
	// Check then insert, one day at a time
	// --------------------------------------------------
	unlock := uc.locks.Lock(strings.TrimSpace(in.Date))
	defer unlock()

	var ap *models.Appointment
	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		vb, err := uc.validator.run(ctx, tx, ValidateBookingInput{
			Actor:     in.Actor,
			ServiceID: in.ServiceID,
			BarberID:  in.BarberID,
			Date:      in.Date,
			Time:      in.Time,
			Identity:  identity,
		})
		if err != nil {
			return err
		}

		code, err := uc.codes.Generate(ctx, tx)
		if err != nil {
			return err
		}

		end := vb.End
		ap = &models.Appointment{
			UserID:        in.UserID,
			BarberID:      in.BarberID,
			ServiceID:     vb.Service.ID,
			CustomerName:  c.name,
			CustomerPhone: optional(c.phone),
			CustomerEmail: optional(c.email),
			StartTime:     vb.Start,
			EndTime:       &end,
			Notes:         strings.TrimSpace(in.Notes),
			Status:        string(domain.InitialStatus()),
			BookingCode:   &code,
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		ap.Service = vb.Service
		ap.Barber = vb.Barber
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(string(in.Actor)).Inc()
	uc.logger.InfoContext(ctx, "booking created",
		"appointment_id", ap.ID,
		"actor", in.Actor,
		"start", ap.StartTime,
	)

	if in.Actor == ActorAdmin {
		uc.audit.Dispatch(audit.Event{
			ActorID:   in.ActorID,
			ActorRole: string(ActorAdmin),
			Action:    "appointment_created",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}
