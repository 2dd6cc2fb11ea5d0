package catalog

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Menu is the public booking page's service list.
type Menu struct {
	Popular []dto.ServiceDTO `json:"popular"`
	Other   []dto.ServiceDTO `json:"other"`
	Barbers []models.Barber  `json:"barbers"`
}

type ListCatalog struct {
	repo domain.Repository
}

func NewListCatalog(repo domain.Repository) *ListCatalog {
	return &ListCatalog{repo: repo}
}

func (uc *ListCatalog) Menu(ctx context.Context) (*Menu, error) {
	services, err := uc.repo.ListServices(ctx, true)
	if err != nil {
		return nil, err
	}
	barbers, err := uc.repo.ListBarbers(ctx, true)
	if err != nil {
		return nil, err
	}

	menu := &Menu{
		Popular: []dto.ServiceDTO{},
		Other:   []dto.ServiceDTO{},
		Barbers: barbers,
	}
	for _, s := range services {
		if s.IsPopular {
			menu.Popular = append(menu.Popular, dto.FromService(s))
		} else {
			menu.Other = append(menu.Other, dto.FromService(s))
		}
	}
	return menu, nil
}

// Services lists every service, inactive ones included, for the admin.
func (uc *ListCatalog) Services(ctx context.Context) ([]models.Service, error) {
	return uc.repo.ListServices(ctx, false)
}

func (uc *ListCatalog) Barbers(ctx context.Context, activeOnly bool) ([]models.Barber, error) {
	return uc.repo.ListBarbers(ctx, activeOnly)
}
