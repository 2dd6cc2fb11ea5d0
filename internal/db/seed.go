package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type seedService struct {
	name     string
	category string
	minutes  int
	price    string
	from     bool
	popular  bool
	order    int
}

var starterServices = []seedService{
	{"Coupe (Homme)", models.CategoryHomme, 30, "15.00", false, true, 1},
	{"Teinture (Homme)", models.CategoryHomme, 60, "35.00", true, false, 2},
	{"Coupe (Femme)", models.CategoryFemme, 60, "18.00", true, true, 10},
	{"Coupe + Placer (Femme)", models.CategoryFemme, 60, "25.00", true, false, 11},
	{"Laver + Placer (Femme)", models.CategoryFemme, 60, "20.00", false, false, 12},
	{"Teinture (Femme)", models.CategoryFemme, 120, "70.00", false, false, 13},
	{"Permanent", models.CategoryFemme, 120, "60.00", false, false, 14},
	{"Highlight", models.CategoryFemme, 150, "120.00", true, false, 15},
	{"Lissage", models.CategoryFemme, 180, "150.00", true, false, 16},
}

var starterBarbers = []models.Barber{
	{Name: "Mr Thien", Phone: "5142773585", IsActive: true},
	{Name: "Barber B", Phone: "5142222222", IsActive: true},
	{Name: "Barber C", Phone: "5143333333", IsActive: true},
}

// Seed fills empty tables on first run. Tables that already hold rows
// are left untouched.
func Seed(ctx context.Context, db *gorm.DB, adminUsername, adminPassword string, logger *slog.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64

		if err := tx.Model(&models.Service{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			for _, s := range starterServices {
				svc := models.Service{
					Name:        s.name,
					Category:    s.category,
					DurationMin: s.minutes,
					Price:       decimal.RequireFromString(s.price),
					PriceIsFrom: s.from,
					IsActive:    true,
					IsPopular:   s.popular,
					SortOrder:   s.order,
				}
				if err := tx.Create(&svc).Error; err != nil {
					return fmt.Errorf("seed service %q: %w", s.name, err)
				}
			}
			logger.Info("seeded services", "count", len(starterServices))
		}

		if err := tx.Model(&models.Barber{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			barbers := make([]models.Barber, len(starterBarbers))
			copy(barbers, starterBarbers)
			if err := tx.Create(&barbers).Error; err != nil {
				return fmt.Errorf("seed barbers: %w", err)
			}
			logger.Info("seeded barbers", "count", len(barbers))
		}

		if err := tx.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := models.AdminUser{Username: adminUsername, PasswordHash: string(hash)}
			if err := tx.Create(&admin).Error; err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			logger.Warn("default admin account created, change its password before going live",
				"username", adminUsername)
		}

		return nil
	})
}
