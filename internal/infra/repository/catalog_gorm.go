package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func translateWrite(err error, name string) error {
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return fmt.Errorf("%q: %w", name, catalog.ErrDuplicateName)
	}
	return err
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := q.Order("sort_order ASC").Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("service %d: %w", id, catalog.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return translateWrite(r.db.WithContext(ctx).Create(s).Error, s.Name)
}

func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {
	return translateWrite(r.db.WithContext(ctx).Save(s).Error, s.Name)
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CatalogGormRepository) ListBarbers(
	ctx context.Context,
	activeOnly bool,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *CatalogGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("barber %d: %w", id, catalog.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *CatalogGormRepository) CreateBarber(
	ctx context.Context,
	b *models.Barber,
) error {
	return translateWrite(r.db.WithContext(ctx).Create(b).Error, b.Name)
}

func (r *CatalogGormRepository) UpdateBarber(
	ctx context.Context,
	b *models.Barber,
) error {
	return translateWrite(r.db.WithContext(ctx).Save(b).Error, b.Name)
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
