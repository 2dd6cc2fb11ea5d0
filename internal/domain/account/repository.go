package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Repository interface {
	// -------- Customers --------
	FindUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error

	// -------- Admins --------
	FindAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	GetAdmin(ctx context.Context, id uint) (*models.AdminUser, error)
	UpdateAdmin(ctx context.Context, a *models.AdminUser) error

	// -------- Password reset --------
	CreateResetRequest(ctx context.Context, r *models.PasswordResetRequest) error
	ListActiveResetRequests(ctx context.Context, adminID uint, now time.Time) ([]models.PasswordResetRequest, error)
	UpdateResetRequest(ctx context.Context, r *models.PasswordResetRequest) error
	GetRateLimit(ctx context.Context, adminID uint, channel string) (*models.AdminResetRateLimit, error)
	TouchRateLimit(ctx context.Context, adminID uint, channel string, at time.Time) error
}
