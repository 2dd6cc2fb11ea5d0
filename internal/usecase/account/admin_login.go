package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AdminLogin struct {
	repo domain.Repository
}

func NewAdminLogin(repo domain.Repository) *AdminLogin {
	return &AdminLogin{repo: repo}
}

// Execute never tells an unknown username apart from a bad password.
func (uc *AdminLogin) Execute(
	ctx context.Context,
	username string,
	password string,
) (*models.AdminUser, error) {

	admin, err := uc.repo.FindAdminByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return admin, nil
}
