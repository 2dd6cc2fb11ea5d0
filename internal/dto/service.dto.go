package dto

import "github.com/BruksfildServices01/barber-booking/internal/models"

type ServiceDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	DurationMin  int    `json:"duration_min"`
	Price        string `json:"price"`
	DisplayPrice string `json:"display_price"`
	IsPopular    bool   `json:"is_popular"`
	IsActive     bool   `json:"is_active"`
}

func FromService(s models.Service) ServiceDTO {
	return ServiceDTO{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		DurationMin:  s.DurationMin,
		Price:        s.Price.StringFixed(2),
		DisplayPrice: s.DisplayPrice(),
		IsPopular:    s.IsPopular,
		IsActive:     s.IsActive,
	}
}

func FromServices(list []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, FromService(s))
	}
	return out
}
