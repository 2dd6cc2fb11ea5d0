package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryHomme   = "Homme"
	CategoryFemme   = "Femme"
	CategoryGeneral = "General"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Category    string `gorm:"size:20;default:'General';not null" json:"category"`
	DurationMin int    `gorm:"not null" json:"duration_min"`

	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	PriceIsFrom bool            `gorm:"default:false" json:"price_is_from"`
	PriceLabel  *string         `gorm:"size:60" json:"price_label"`

	IsActive  bool `gorm:"default:true;index" json:"is_active"`
	IsPopular bool `gorm:"default:false" json:"is_popular"`
	SortOrder int  `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

// DisplayPrice is what the booking page shows next to the service name.
func (s Service) DisplayPrice() string {
	if s.PriceLabel != nil && *s.PriceLabel != "" {
		return *s.PriceLabel
	}
	p := "$" + s.Price.StringFixed(2)
	if s.PriceIsFrom {
		return "from " + p
	}
	return p
}
