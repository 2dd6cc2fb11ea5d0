package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const MinPasswordLength = 6

var (
	errInvalidPhone = httperr.Reject("invalid_phone", "Please enter a valid phone number.")
	errWeakPassword = httperr.Reject("weak_password", "Password must be at least 6 characters.")
)

// GuestClaimer attaches guest bookings to a freshly identified customer.
type GuestClaimer interface {
	Execute(ctx context.Context, userID uint, phone string) (int64, error)
}

type CustomerLoginInput struct {
	Phone    string
	Name     string
	Password string
}

// CustomerLogin identifies a customer by phone, creating the account
// on first visit. A password is optional until one is set.
type CustomerLogin struct {
	repo   domain.Repository
	claim  GuestClaimer
	logger *slog.Logger
}

func NewCustomerLogin(
	repo domain.Repository,
	claim GuestClaimer,
	logger *slog.Logger,
) *CustomerLogin {
	return &CustomerLogin{
		repo:   repo,
		claim:  claim,
		logger: logger.With("usecase", "customer_login"),
	}
}

func (uc *CustomerLogin) Execute(
	ctx context.Context,
	in CustomerLoginInput,
) (*models.User, error) {

	phone := validators.NormalizePhone(in.Phone)
	if !validators.IsPhone(phone) {
		return nil, errInvalidPhone
	}
	name := strings.TrimSpace(in.Name)

	user, err := uc.repo.FindUserByPhone(ctx, phone)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user, err = uc.signup(ctx, phone, name, in.Password)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := uc.login(ctx, user, name, in.Password); err != nil {
			return nil, err
		}
	}

	if _, err := uc.claim.Execute(ctx, user.ID, user.PhoneNumber); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *CustomerLogin) signup(
	ctx context.Context,
	phone, name, password string,
) (*models.User, error) {

	user := &models.User{PhoneNumber: phone, Name: name}
	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "customer created", "user_id", user.ID)
	return user, nil
}

func (uc *CustomerLogin) login(
	ctx context.Context,
	user *models.User,
	name, password string,
) error {

	changed := false

	if user.PasswordHash != nil {
		if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
			return domain.ErrInvalidCredentials
		}
	} else if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		user.PasswordHash = &hash
		changed = true
	}

	if user.Name == "" && name != "" {
		user.Name = name
		changed = true
	}

	if !changed {
		return nil
	}
	return uc.repo.UpdateUser(ctx, user)
}

func hashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", errWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
