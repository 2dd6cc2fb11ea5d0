package appointment

import (
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// Actor is who originates a booking change.
type Actor string

const (
	ActorPublic   Actor = "public"
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
)

// Settings is the shop configuration shared by every booking use case.
// Each actor gets its own rule chain and capacity ceiling.
type Settings struct {
	Hours            domain.ShopHours
	Clock            timezone.Clock
	PublicCapacity   int
	CustomerCapacity int
}

func (s Settings) Policy(a Actor) domain.Policy {
	switch a {
	case ActorAdmin:
		return domain.AdminPolicy()
	case ActorCustomer:
		return domain.CustomerPolicy(s.CustomerCapacity)
	default:
		return domain.PublicPolicy(s.PublicCapacity)
	}
}

// GridCapacity is the ceiling used when rendering the slot grid.
func (s Settings) GridCapacity(a Actor) int {
	if a == ActorCustomer {
		return s.CustomerCapacity
	}
	return s.PublicCapacity
}

// --------------------------------------------------
// Contact normalization
// --------------------------------------------------

type contact struct {
	name  string
	phone string
	email string
}

func normalizeContact(name, phone, email string, requireContact bool) (contact, error) {
	c := contact{name: strings.TrimSpace(name)}
	if c.name == "" {
		return c, httperr.Reject("missing_name", "Please enter your name.")
	}

	if strings.TrimSpace(phone) != "" {
		c.phone = validators.NormalizePhone(phone)
		if !validators.IsPhone(c.phone) {
			return c, httperr.Reject("invalid_phone", "Please enter a valid phone number.")
		}
	}
	if strings.TrimSpace(email) != "" {
		e, ok := validators.NormalizeEmail(email)
		if !ok {
			return c, httperr.Reject("invalid_email", "Please enter a valid email address.")
		}
		c.email = e
	}

	if requireContact && c.phone == "" && c.email == "" {
		return c, httperr.Reject("missing_contact", "Please enter a phone number or an email address.")
	}
	return c, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
