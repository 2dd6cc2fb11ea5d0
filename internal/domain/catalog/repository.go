package catalog

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
)

type Repository interface {
	// -------- Services --------
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error

	// -------- Barbers --------
	ListBarbers(ctx context.Context, activeOnly bool) ([]models.Barber, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error
	UpdateBarber(ctx context.Context, b *models.Barber) error
}
