package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func notFoundAs(err error, what string) error {
	if isNotFound(err) {
		return fmt.Errorf("%s: %w", what, account.ErrNotFound)
	}
	return err
}

// --------------------------------------------------
// Customers
// --------------------------------------------------

func (r *AccountGormRepository) FindUserByPhone(
	ctx context.Context,
	phone string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("phone_number = ?", phone).
		First(&u).Error; err != nil {
		return nil, notFoundAs(err, "user")
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFoundAs(err, "user")
	}
	return &u, nil
}

func (r *AccountGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *AccountGormRepository) UpdateUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// --------------------------------------------------
// Admins
// --------------------------------------------------

func (r *AccountGormRepository) FindAdminByUsername(
	ctx context.Context,
	username string,
) (*models.AdminUser, error) {

	var a models.AdminUser
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&a).Error; err != nil {
		return nil, notFoundAs(err, "admin")
	}
	return &a, nil
}

func (r *AccountGormRepository) GetAdmin(
	ctx context.Context,
	id uint,
) (*models.AdminUser, error) {

	var a models.AdminUser
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFoundAs(err, "admin")
	}
	return &a, nil
}

func (r *AccountGormRepository) UpdateAdmin(
	ctx context.Context,
	a *models.AdminUser,
) error {
	err := r.db.WithContext(ctx).Save(a).Error
	if isDuplicate(err) {
		return fmt.Errorf("admin %q: %w", a.Username, account.ErrUsernameTaken)
	}
	return err
}

// --------------------------------------------------
// Password reset
// --------------------------------------------------

func (r *AccountGormRepository) CreateResetRequest(
	ctx context.Context,
	req *models.PasswordResetRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// ListActiveResetRequests newest first.
func (r *AccountGormRepository) ListActiveResetRequests(
	ctx context.Context,
	adminID uint,
	now time.Time,
) ([]models.PasswordResetRequest, error) {

	var reqs []models.PasswordResetRequest
	if err := r.db.WithContext(ctx).
		Where("admin_user_id = ? AND used_at IS NULL AND expires_at > ?", adminID, now.UTC()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *AccountGormRepository) UpdateResetRequest(
	ctx context.Context,
	req *models.PasswordResetRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *AccountGormRepository) GetRateLimit(
	ctx context.Context,
	adminID uint,
	channel string,
) (*models.AdminResetRateLimit, error) {

	var rl models.AdminResetRateLimit
	if err := r.db.WithContext(ctx).
		Where("admin_user_id = ? AND channel = ?", adminID, channel).
		First(&rl).Error; err != nil {
		return nil, notFoundAs(err, "rate limit")
	}
	return &rl, nil
}

func (r *AccountGormRepository) TouchRateLimit(
	ctx context.Context,
	adminID uint,
	channel string,
	at time.Time,
) error {

	rl := models.AdminResetRateLimit{
		AdminUserID: adminID,
		Channel:     channel,
		LastSentAt:  at.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "admin_user_id"}, {Name: "channel"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_sent_at"}),
		}).
		Create(&rl).Error
}

var _ account.Repository = (*AccountGormRepository)(nil)
