package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	ListActiveBarbers(
		ctx context.Context,
	) ([]models.Barber, error)

	// -------- Day load --------
	ListBookingsForDay(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	BookingCodeExists(
		ctx context.Context,
		code string,
	) (bool, error)

	// -------- Cancellation audit --------
	CreateCancellation(
		ctx context.Context,
		c *models.Cancellation,
	) error

	// -------- Lookup --------
	FindByContactAndCode(
		ctx context.Context,
		phone string,
		email string,
		code string,
	) ([]models.Appointment, error)

	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ClaimGuestBookings(
		ctx context.Context,
		userID uint,
		phone string,
	) (int64, error)

	// -------- Calendar --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// WithinTx runs fn against a repository bound to one transaction.
	WithinTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
