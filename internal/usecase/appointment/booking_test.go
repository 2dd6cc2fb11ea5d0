package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCreateGuestBooking(t *testing.T) {
	e := newEnv(t)

	in := e.guest("(514) 555-0000", "12:00")
	in.CustomerEmail = "Guest@Example.ca"
	in.BarberID = &e.barbers[0].ID
	ap := e.mustCreate(t, in)

	require.NotNil(t, ap.BookingCode)
	assert.NotEmpty(t, *ap.BookingCode)
	assert.Equal(t, "5145550000", *ap.CustomerPhone)
	assert.Equal(t, "guest@example.ca", *ap.CustomerEmail)
	assert.Equal(t, string(domain.StatusBooked), ap.Status)
	assert.True(t, e.at(12, 0).Equal(ap.StartTime))
	assert.True(t, e.at(12, 30).Equal(*ap.EndTime))
	assert.Nil(t, ap.UserID)

	var stored models.Appointment
	require.NoError(t, e.db.First(&stored, ap.ID).Error)
	assert.True(t, e.at(12, 0).Equal(stored.StartTime))
}

func TestCreateRequiresContactForGuests(t *testing.T) {
	e := newEnv(t)

	in := e.guest("", "12:00")
	_, err := e.create.Execute(e.ctx, in)
	assert.True(t, httperr.IsBusiness(err, "missing_contact"))

	in = e.guest("555", "12:00")
	_, err = e.create.Execute(e.ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))

	in = e.guest("5145550000", "12:00")
	in.CustomerName = "  "
	_, err = e.create.Execute(e.ctx, in)
	assert.True(t, httperr.IsBusiness(err, "missing_name"))
}

func TestCreateDateTimeErrors(t *testing.T) {
	e := newEnv(t)

	in := e.guest("5145550000", "")
	_, err := e.create.Execute(e.ctx, in)
	assert.True(t, httperr.IsBusiness(err, domain.CodeMissingDateTime))

	in = e.guest("5145550000", "25:00")
	_, err = e.create.Execute(e.ctx, in)
	require.True(t, httperr.IsBusiness(err, domain.CodeInvalidDateTime))
	assert.Equal(t, "Invalid date/time.", err.Error())

	in = e.guest("5145550000", "12:00")
	in.ServiceID = 999
	_, err = e.create.Execute(e.ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRejectsPast(t *testing.T) {
	e := newEnv(t)
	e.clock.Set(e.at(13, 5).Add(20 * time.Second))

	_, err := e.create.Execute(e.ctx, e.guest("5145550000", "13:00"))
	assert.True(t, httperr.IsBusiness(err, domain.CodePast))

	e.mustCreate(t, e.guest("5145550000", "13:30"))
}

func TestGuestDailyCap(t *testing.T) {
	e := newEnv(t)

	e.mustCreate(t, e.guest("5145550000", "11:00"))
	e.mustCreate(t, e.guest("514-555-0000", "14:00"))

	_, err := e.create.Execute(e.ctx, e.guest("5145550000", "16:00"))
	require.True(t, httperr.IsBusiness(err, domain.CodeDailyLimit))
	assert.Contains(t, err.Error(), "at most 2")

	// another contact is unaffected
	e.mustCreate(t, e.guest("4385550000", "16:00"))
}

func TestGuestDoubleBooking(t *testing.T) {
	e := newEnv(t)

	e.mustCreate(t, e.guest("5145550000", "12:00"))
	_, err := e.create.Execute(e.ctx, e.guest("5145550000", "12:00"))
	assert.True(t, httperr.IsBusiness(err, domain.CodeDoubleBooked))
}

func TestShopCapacity(t *testing.T) {
	e := newEnv(t)

	e.mustCreate(t, e.guest("5140000001", "15:00"))
	e.mustCreate(t, e.guest("5140000002", "15:00"))
	// N-1 existing: accepted
	e.mustCreate(t, e.guest("5140000003", "15:00"))

	// N existing: rejected
	_, err := e.create.Execute(e.ctx, e.guest("5140000004", "15:00"))
	assert.True(t, httperr.IsBusiness(err, domain.CodeFullyBooked))

	// the admin chain does not check capacity
	admin := e.guest("", "15:00")
	admin.Actor = ActorAdmin
	e.mustCreate(t, admin)
}

func TestBarberSpecificOverlap(t *testing.T) {
	e := newEnv(t)

	first := e.guest("5140000001", "12:00")
	first.ServiceID = e.long.ID
	first.BarberID = &e.barbers[1].ID
	e.mustCreate(t, first)

	second := e.guest("5140000002", "13:00")
	second.BarberID = &e.barbers[1].ID
	_, err := e.create.Execute(e.ctx, second)
	assert.True(t, httperr.IsBusiness(err, domain.CodeBarberBooked))

	second.BarberID = &e.barbers[2].ID
	e.mustCreate(t, second)
}

func TestInactiveBarberIsNotBookable(t *testing.T) {
	e := newEnv(t)

	b := e.barbers[0]
	require.NoError(t, e.db.Model(&b).Update("is_active", false).Error)

	in := e.guest("5145550000", "12:00")
	in.BarberID = &b.ID
	_, err := e.create.Execute(e.ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// admins can still book an inactive barber
	admin := e.guest("", "12:00")
	admin.Actor = ActorAdmin
	admin.BarberID = &b.ID
	e.mustCreate(t, admin)
}

func TestCustomerCapacityIsLower(t *testing.T) {
	e := newEnv(t)

	e.mustCreate(t, e.guest("5140000001", "17:00"))
	e.mustCreate(t, e.guest("5140000002", "17:00"))

	user := models.User{PhoneNumber: "5149990000", Name: "Reg"}
	require.NoError(t, e.db.Create(&user).Error)

	_, err := e.create.Execute(e.ctx, CreateBookingInput{
		Actor:         ActorCustomer,
		UserID:        &user.ID,
		ServiceID:     e.cut.ID,
		Date:          day,
		Time:          "17:00",
		CustomerName:  "Reg",
		CustomerPhone: user.PhoneNumber,
	})
	assert.True(t, httperr.IsBusiness(err, domain.CodeFullyBooked))
}

func TestEditExcludesItself(t *testing.T) {
	e := newEnv(t)

	ap := e.mustCreate(t, e.guest("5145550000", "12:00"))
	e.mustCreate(t, e.guest("5145550000", "14:00"))

	edited, err := e.edit.Execute(e.ctx, EditBookingInput{
		ID:            ap.ID,
		Actor:         ActorPublic,
		ServiceID:     e.cut.ID,
		Date:          day,
		Time:          "12:30",
		CustomerName:  "Guest",
		CustomerPhone: "5145550000",
		Notes:         "moved",
	})
	require.NoError(t, err)
	assert.True(t, e.at(12, 30).Equal(edited.StartTime))
	assert.Equal(t, *ap.BookingCode, *edited.BookingCode)
	assert.Equal(t, "moved", edited.Notes)
}

func TestEditByCustomerRequiresOwnership(t *testing.T) {
	e := newEnv(t)
	ap := e.mustCreate(t, e.guest("5145550000", "12:00"))

	_, err := e.edit.Execute(e.ctx, EditBookingInput{
		ID:           ap.ID,
		Actor:        ActorCustomer,
		UserID:       uintPtr(77),
		ServiceID:    e.cut.ID,
		Date:         day,
		Time:         "13:00",
		CustomerName: "Someone",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminCancelIsSoft(t *testing.T) {
	e := newEnv(t)
	ap := e.mustCreate(t, e.guest("5145550000", "12:00"))

	cancelled, err := e.cancelAdmin.Execute(e.ctx, ap.ID, uintPtr(1))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	var stored models.Appointment
	require.NoError(t, e.db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)

	// terminal
	_, err = e.cancelAdmin.Execute(e.ctx, ap.ID, uintPtr(1))
	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidState))

	_, err = e.edit.Execute(e.ctx, EditBookingInput{
		ID: ap.ID, Actor: ActorAdmin, ServiceID: e.cut.ID, Date: day, Time: "13:00", CustomerName: "Guest",
	})
	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidState))

	// the slot and the daily quota are free again
	e.mustCreate(t, e.guest("5145550000", "12:00"))

	var count int64
	require.NoError(t, e.db.Model(&models.Cancellation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSelfServiceCancelWindow(t *testing.T) {
	e := newEnv(t)

	in := e.guest("5145550000", "12:00")
	in.CustomerEmail = "guest@example.ca"
	in.BarberID = &e.barbers[0].ID
	in.Notes = "beard too"
	ap := e.mustCreate(t, in)

	// 20 minutes before
	e.clock.Set(e.at(11, 40))
	_, err := e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{
		ID: ap.ID, Phone: "514 555 0000", Code: *ap.BookingCode,
	})
	require.True(t, httperr.IsBusiness(err, domain.CodeCancelCutoff))
	assert.Contains(t, err.Error(), "within 30 minutes")

	var count int64
	require.NoError(t, e.db.Model(&models.Cancellation{}).Count(&count).Error)
	assert.Zero(t, count)

	// 40 minutes before
	e.clock.Set(e.at(11, 20))
	record, err := e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{
		ID: ap.ID, Phone: "514 555 0000", Code: *ap.BookingCode,
	})
	require.NoError(t, err)

	var rows []models.Cancellation
	require.NoError(t, e.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, record.ID, row.ID)
	assert.Equal(t, ap.ID, row.BookingID)
	assert.Equal(t, "Guest", row.CustomerName)
	assert.Equal(t, "5145550000", *row.CustomerPhone)
	assert.Equal(t, "guest@example.ca", *row.CustomerEmail)
	assert.Equal(t, e.barbers[0].ID, *row.BarberID)
	assert.Equal(t, "Barber A", row.BarberName)
	assert.Equal(t, e.cut.ID, row.ServiceID)
	assert.Equal(t, "Coupe (Homme)", row.ServiceName)
	assert.True(t, e.at(12, 0).Equal(row.StartTime))
	assert.True(t, e.at(12, 30).Equal(*row.EndTime))
	assert.Equal(t, "beard too", row.Notes)
	assert.Equal(t, *ap.BookingCode, *row.BookingCode)
	assert.Equal(t, domain.CancelledByCustomer, row.CancelledBy)

	err = e.db.First(&models.Appointment{}, ap.ID).Error
	assert.Error(t, err, "appointment is hard-deleted")
}

func TestSelfServiceCancelChecksContactAndCode(t *testing.T) {
	e := newEnv(t)
	ap := e.mustCreate(t, e.guest("5145550000", "15:00"))

	_, err := e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{ID: ap.ID, Phone: "5145550000", Code: "nope"})
	assert.True(t, httperr.IsBusiness(err, domain.CodeContactDenied))

	_, err = e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{ID: ap.ID, Phone: "4385550000", Code: *ap.BookingCode})
	assert.True(t, httperr.IsBusiness(err, domain.CodeContactDenied))

	_, err = e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{ID: 9999, Phone: "5145550000", Code: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	e.clock.Set(e.at(15, 10))
	_, err = e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{ID: ap.ID, Phone: "5145550000", Code: *ap.BookingCode})
	assert.True(t, httperr.IsBusiness(err, domain.CodeCancelPast))
}

func TestFindBookingsByContact(t *testing.T) {
	e := newEnv(t)

	in := e.guest("5145550000", "12:00")
	in.CustomerEmail = "guest@example.ca"
	ap := e.mustCreate(t, in)

	found, err := e.find.Execute(e.ctx, FindBookingsByContactInput{Phone: "(514) 555-0000", Code: *ap.BookingCode})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ap.ID, found[0].ID)
	require.NotNil(t, found[0].Service)
	assert.Equal(t, "Coupe (Homme)", found[0].Service.Name)

	found, err = e.find.Execute(e.ctx, FindBookingsByContactInput{Email: "GUEST@example.ca", Code: *ap.BookingCode})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = e.find.Execute(e.ctx, FindBookingsByContactInput{Phone: "4385550000", Code: *ap.BookingCode})
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = e.find.Execute(e.ctx, FindBookingsByContactInput{Phone: "5145550000"})
	assert.True(t, httperr.IsBusiness(err, "missing_lookup"))
}
