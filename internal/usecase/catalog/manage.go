package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type ServiceInput struct {
	Name        string
	Category    string
	DurationMin int
	Price       string
	PriceIsFrom bool
	PriceLabel  string
	IsPopular   bool
	SortOrder   int
}

type BarberInput struct {
	Name  string
	Phone string
}

// ManageCatalog holds the admin write operations on services and barbers.
type ManageCatalog struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManageCatalog(repo domain.Repository, audit *audit.Dispatcher) *ManageCatalog {
	return &ManageCatalog{repo: repo, audit: audit}
}

// ======================================================
// SERVICES
// ======================================================

func (uc *ManageCatalog) CreateService(
	ctx context.Context,
	adminID uint,
	in ServiceInput,
) (*models.Service, error) {

	s := &models.Service{IsActive: true}
	if err := applyService(s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}

	uc.record(adminID, "service_created", "service", s.ID, map[string]any{"name": s.Name})
	return s, nil
}

func (uc *ManageCatalog) UpdateService(
	ctx context.Context,
	adminID uint,
	id uint,
	in ServiceInput,
) (*models.Service, error) {

	s, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyService(s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateService(ctx, s); err != nil {
		return nil, err
	}

	uc.record(adminID, "service_updated", "service", s.ID, map[string]any{"name": s.Name})
	return s, nil
}

func (uc *ManageCatalog) SetServiceActive(
	ctx context.Context,
	adminID uint,
	id uint,
	active bool,
) (*models.Service, error) {

	s, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	s.IsActive = active
	if err := uc.repo.UpdateService(ctx, s); err != nil {
		return nil, err
	}

	uc.record(adminID, activeAction("service", active), "service", s.ID, nil)
	return s, nil
}

func applyService(s *models.Service, in ServiceInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httperr.Reject("missing_name", "Service name is required.")
	}

	category := in.Category
	if category == "" {
		category = models.CategoryGeneral
	}
	switch category {
	case models.CategoryHomme, models.CategoryFemme, models.CategoryGeneral:
	default:
		return httperr.Reject("invalid_category", "Category must be Homme, Femme or General.")
	}

	if in.DurationMin <= 0 {
		return httperr.Reject("invalid_duration", "Duration must be a positive number of minutes.")
	}

	price := decimal.Zero
	if strings.TrimSpace(in.Price) != "" {
		p, err := decimal.NewFromString(strings.TrimSpace(in.Price))
		if err != nil || p.IsNegative() {
			return httperr.Reject("invalid_price", "Price must be a non-negative amount.")
		}
		price = p.Round(2)
	}

	s.Name = name
	s.Category = category
	s.DurationMin = in.DurationMin
	s.Price = price
	s.PriceIsFrom = in.PriceIsFrom
	s.PriceLabel = nil
	if label := strings.TrimSpace(in.PriceLabel); label != "" {
		s.PriceLabel = &label
	}
	s.IsPopular = in.IsPopular
	s.SortOrder = in.SortOrder
	return nil
}

// ======================================================
// BARBERS
// ======================================================

func (uc *ManageCatalog) CreateBarber(
	ctx context.Context,
	adminID uint,
	in BarberInput,
) (*models.Barber, error) {

	b := &models.Barber{IsActive: true}
	if err := applyBarber(b, in); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.record(adminID, "barber_created", "barber", b.ID, map[string]any{"name": b.Name})
	return b, nil
}

func (uc *ManageCatalog) UpdateBarber(
	ctx context.Context,
	adminID uint,
	id uint,
	in BarberInput,
) (*models.Barber, error) {

	b, err := uc.repo.GetBarber(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyBarber(b, in); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.record(adminID, "barber_updated", "barber", b.ID, map[string]any{"name": b.Name})
	return b, nil
}

func (uc *ManageCatalog) SetBarberActive(
	ctx context.Context,
	adminID uint,
	id uint,
	active bool,
) (*models.Barber, error) {

	b, err := uc.repo.GetBarber(ctx, id)
	if err != nil {
		return nil, err
	}
	b.IsActive = active
	if err := uc.repo.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.record(adminID, activeAction("barber", active), "barber", b.ID, nil)
	return b, nil
}

func applyBarber(b *models.Barber, in BarberInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httperr.Reject("missing_name", "Barber name is required.")
	}

	phone := validators.NormalizePhone(in.Phone)
	if phone != "" && !validators.IsPhone(phone) {
		return httperr.Reject("invalid_phone", "Please enter a valid phone number.")
	}

	b.Name = name
	b.Phone = phone
	return nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func activeAction(entity string, active bool) string {
	if active {
		return entity + "_activated"
	}
	return entity + "_deactivated"
}

func (uc *ManageCatalog) record(adminID uint, action, entity string, id uint, meta map[string]any) {
	ev := audit.Event{
		ActorID:   &adminID,
		ActorRole: "admin",
		Action:    action,
		Entity:    entity,
		EntityID:  &id,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	uc.audit.Dispatch(ev)
}
