package appointment

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ClaimGuestBookings attaches guest bookings made with the user's phone.
// Rows already owned by someone are never touched, so it is safe to
// run on every login.
type ClaimGuestBookings struct {
	repo   domain.Repository
	logger *slog.Logger
}

func NewClaimGuestBookings(repo domain.Repository, logger *slog.Logger) *ClaimGuestBookings {
	return &ClaimGuestBookings{repo: repo, logger: logger.With("usecase", "claim_guest_bookings")}
}

func (uc *ClaimGuestBookings) Execute(
	ctx context.Context,
	userID uint,
	phone string,
) (int64, error) {

	phone = validators.NormalizePhone(phone)
	if phone == "" {
		return 0, nil
	}

	n, err := uc.repo.ClaimGuestBookings(ctx, userID, phone)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.logger.InfoContext(ctx, "guest bookings claimed", "user_id", userID, "count", n)
	}
	return n, nil
}
