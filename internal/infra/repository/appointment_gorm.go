package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("barber %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *AppointmentGormRepository) ListActiveBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// --------------------------------------------------
// Day load
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookingsForDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"status <> ? AND start_time >= ? AND start_time < ?",
			string(domain.StatusCancelled),
			start.UTC(),
			end.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		First(&ap, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("User", "Barber", "Service").Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("User", "Barber", "Service").Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *AppointmentGormRepository) BookingCodeExists(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("booking_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Cancellation audit
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateCancellation(
	ctx context.Context,
	c *models.Cancellation,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *AppointmentGormRepository) FindByContactAndCode(
	ctx context.Context,
	phone string,
	email string,
	code string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Where("booking_code = ?", code)

	email = strings.ToLower(email)
	switch {
	case phone != "" && email != "":
		q = q.Where("customer_phone = ? OR LOWER(customer_email) = ?", phone, email)
	case phone != "":
		q = q.Where("customer_phone = ?", phone)
	case email != "":
		q = q.Where("LOWER(customer_email) = ?", email)
	default:
		return []models.Appointment{}, nil
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ClaimGuestBookings only touches rows without an owner.
func (r *AppointmentGormRepository) ClaimGuestBookings(
	ctx context.Context,
	userID uint,
	phone string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("user_id IS NULL AND customer_phone = ?", phone).
		Update("user_id", userID)
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Where("start_time >= ? AND start_time < ?", start.UTC(), end.UTC()).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {

	var opts []*sql.TxOptions
	if r.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	}, opts...)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
