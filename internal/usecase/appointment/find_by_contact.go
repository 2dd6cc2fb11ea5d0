package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type FindBookingsByContactInput struct {
	Phone string
	Email string
	Code  string
}

type FindBookingsByContact struct {
	repo domain.Repository
}

func NewFindBookingsByContact(repo domain.Repository) *FindBookingsByContact {
	return &FindBookingsByContact{repo: repo}
}

func (uc *FindBookingsByContact) Execute(
	ctx context.Context,
	in FindBookingsByContactInput,
) ([]models.Appointment, error) {

	code := strings.TrimSpace(in.Code)
	phone := validators.NormalizePhone(in.Phone)
	email, _ := validators.NormalizeEmail(in.Email)

	if code == "" || (phone == "" && email == "") {
		return nil, httperr.Reject("missing_lookup",
			"Enter your booking code and the phone number or email used to book.")
	}

	return uc.repo.FindByContactAndCode(ctx, phone, email, code)
}
