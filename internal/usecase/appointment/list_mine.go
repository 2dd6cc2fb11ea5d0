package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ListMyAppointments claims matching guest bookings first so a
// customer sees everything booked with their phone.
type ListMyAppointments struct {
	repo  domain.Repository
	claim *ClaimGuestBookings
}

func NewListMyAppointments(
	repo domain.Repository,
	claim *ClaimGuestBookings,
) *ListMyAppointments {
	return &ListMyAppointments{
		repo:  repo,
		claim: claim,
	}
}

func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	userID uint,
	phone string,
) ([]models.Appointment, error) {

	if _, err := uc.claim.Execute(ctx, userID, phone); err != nil {
		return nil, err
	}
	return uc.repo.ListForUser(ctx, userID)
}
