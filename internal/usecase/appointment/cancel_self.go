package appointment

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type CancelSelfServiceInput struct {
	ID    uint
	Phone string
	Email string
	Code  string
	// UserID lets a logged-in owner cancel without the code.
	UserID *uint
}

// CancelBookingSelfService writes a cancellation record and then
// removes the appointment.
type CancelBookingSelfService struct {
	repo   domain.Repository
	clock  timezone.Clock
	logger *slog.Logger
}

func NewCancelBookingSelfService(
	repo domain.Repository,
	clock timezone.Clock,
	logger *slog.Logger,
) *CancelBookingSelfService {
	return &CancelBookingSelfService{
		repo:   repo,
		clock:  clock,
		logger: logger.With("usecase", "cancel_self_service"),
	}
}

var errContactMismatch = httperr.Reject(domain.CodeContactDenied,
	"The phone/email or booking code does not match this appointment.")

func (uc *CancelBookingSelfService) Execute(
	ctx context.Context,
	in CancelSelfServiceInput,
) (*models.Cancellation, error) {

	var record models.Cancellation
	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, in.ID)
		if err != nil {
			return err
		}

		if !ownedBy(ap, in.UserID) && !contactMatches(ap, in) {
			return errContactMismatch
		}

		now := uc.clock.Now()
		if err := domain.CanSelfCancel(ap, now); err != nil {
			return err
		}

		record = domain.Snapshot(ap, domain.CancelledByCustomer, now)
		if err := tx.CreateCancellation(ctx, &record); err != nil {
			return err
		}
		return tx.DeleteAppointment(ctx, ap.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.WithLabelValues(domain.CancelledByCustomer).Inc()
	uc.logger.InfoContext(ctx, "booking cancelled by customer",
		"appointment_id", in.ID,
		"cancellation_id", record.ID,
	)
	return &record, nil
}

func contactMatches(ap *models.Appointment, in CancelSelfServiceInput) bool {
	code := strings.TrimSpace(in.Code)
	if code == "" || ap.BookingCode == nil {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(*ap.BookingCode)) != 1 {
		return false
	}

	if phone := validators.NormalizePhone(in.Phone); phone != "" &&
		ap.CustomerPhone != nil && *ap.CustomerPhone == phone {
		return true
	}
	if email, ok := validators.NormalizeEmail(in.Email); ok &&
		ap.CustomerEmail != nil && strings.EqualFold(*ap.CustomerEmail, email) {
		return true
	}
	return false
}
