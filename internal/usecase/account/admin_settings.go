package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// UpdateAdminSettingsInput leaves a field unchanged when it is nil.
type UpdateAdminSettingsInput struct {
	AdminID         uint
	CurrentPassword string

	Username    *string
	Email       *string
	Phone       *string
	NewPassword *string
}

type UpdateAdminSettings struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAdminSettings(repo domain.Repository, audit *audit.Dispatcher) *UpdateAdminSettings {
	return &UpdateAdminSettings{repo: repo, audit: audit}
}

func (uc *UpdateAdminSettings) Execute(
	ctx context.Context,
	in UpdateAdminSettingsInput,
) (*models.AdminUser, error) {

	admin, err := uc.repo.GetAdmin(ctx, in.AdminID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	changed := []string{}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, httperr.Reject("missing_username", "Username cannot be empty.")
		}
		if username != admin.Username {
			admin.Username = username
			changed = append(changed, "username")
		}
	}

	if in.Email != nil {
		email := ""
		if strings.TrimSpace(*in.Email) != "" {
			normalized, ok := validators.NormalizeEmail(*in.Email)
			if !ok {
				return nil, httperr.Reject("invalid_email", "Please enter a valid email address.")
			}
			email = normalized
		}
		admin.Email = email
		changed = append(changed, "email")
	}

	if in.Phone != nil {
		phone := validators.NormalizePhone(*in.Phone)
		if phone != "" && !validators.IsPhone(phone) {
			return nil, errInvalidPhone
		}
		admin.Phone = phone
		changed = append(changed, "phone")
	}

	if in.NewPassword != nil {
		hash, err := hashPassword(*in.NewPassword)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
		changed = append(changed, "password")
	}

	if err := uc.repo.UpdateAdmin(ctx, admin); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &admin.ID,
		ActorRole: "admin",
		Action:    "admin_settings_updated",
		Entity:    "admin_user",
		EntityID:  &admin.ID,
		Metadata:  map[string]any{"fields": changed},
	})

	return admin, nil
}
