package appointment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/bookingcode"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

const day = "2026-03-10" // a Tuesday

type env struct {
	ctx      context.Context
	db       *gorm.DB
	loc      *time.Location
	clock    *testutil.Clock
	settings Settings

	cut     models.Service
	long    models.Service
	barbers []models.Barber

	availability *GetAvailability
	validate     *ValidateBooking
	create       *CreateBooking
	edit         *EditBooking
	cancelAdmin  *CancelBookingAdmin
	cancelSelf   *CancelBookingSelfService
	find         *FindBookingsByContact
	claim        *ClaimGuestBookings
	mine         *ListMyAppointments
	byDate       *ListAppointmentsByDate
	byWeek       *ListAppointmentsByWeek
	byMonth      *ListAppointmentsByMonth
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.OpenDB(t)
	loc := testutil.Toronto(t)
	clock := testutil.NewClock(time.Date(2026, 3, 10, 9, 0, 0, 0, loc))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	settings := Settings{
		Hours:            domain.DefaultShopHours(loc),
		Clock:            clock,
		PublicCapacity:   3,
		CustomerCapacity: 2,
	}

	repo := repository.NewAppointmentGormRepository(db)
	validator := NewValidateBooking(repo, settings)
	locks := NewDayLocks()
	claim := NewClaimGuestBookings(repo, logger)

	return &env{
		ctx:      context.Background(),
		db:       db,
		loc:      loc,
		clock:    clock,
		settings: settings,

		cut:     testutil.CreateService(t, db, "Coupe (Homme)", 30),
		long:    testutil.CreateService(t, db, "Teinture (Femme)", 120),
		barbers: testutil.CreateBarbers(t, db, "Barber A", "Barber B", "Barber C"),

		availability: NewGetAvailability(repo, settings),
		validate:     validator,
		create:       NewCreateBooking(repo, validator, bookingcode.New(), locks, nil, logger),
		edit:         NewEditBooking(repo, validator, locks, nil, logger),
		cancelAdmin:  NewCancelBookingAdmin(repo, clock, nil),
		cancelSelf:   NewCancelBookingSelfService(repo, clock, logger),
		find:         NewFindBookingsByContact(repo),
		claim:        claim,
		mine:         NewListMyAppointments(repo, claim),
		byDate:       NewListAppointmentsByDate(repo, loc),
		byWeek:       NewListAppointmentsByWeek(repo, settings.Hours),
		byMonth:      NewListAppointmentsByMonth(repo, settings.Hours),
	}
}

func (e *env) at(hh, mm int) time.Time {
	return time.Date(2026, 3, 10, hh, mm, 0, 0, e.loc)
}

func (e *env) guest(phone, hm string) CreateBookingInput {
	return CreateBookingInput{
		Actor:         ActorPublic,
		ServiceID:     e.cut.ID,
		Date:          day,
		Time:          hm,
		CustomerName:  "Guest",
		CustomerPhone: phone,
	}
}

func (e *env) mustCreate(t *testing.T, in CreateBookingInput) *models.Appointment {
	t.Helper()
	ap, err := e.create.Execute(e.ctx, in)
	require.NoError(t, err)
	return ap
}

func uintPtr(v uint) *uint { return &v }
