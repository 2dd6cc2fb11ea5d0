package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestGetAvailability(t *testing.T) {
	e := newEnv(t)

	in := e.guest("5145550000", "12:00")
	in.BarberID = &e.barbers[0].ID
	e.mustCreate(t, in)

	slots, err := e.availability.Execute(e.ctx, GetAvailabilityInput{
		Actor:     ActorPublic,
		Date:      day,
		ServiceID: e.cut.ID,
		BarberID:  &e.barbers[0].ID,
	})
	require.NoError(t, err)
	require.Len(t, slots, 16)

	byTime := map[string]domain.Slot{}
	for _, s := range slots {
		byTime[s.Time] = s
	}
	assert.False(t, byTime["12:00"].IsAvailable)
	assert.Equal(t, domain.ReasonBooked, *byTime["12:00"].Reason)
	assert.True(t, byTime["12:30"].IsAvailable)

	monday, err := e.availability.Execute(e.ctx, GetAvailabilityInput{
		Actor: ActorPublic, Date: "2026-03-09", ServiceID: e.cut.ID,
	})
	require.NoError(t, err)
	require.Len(t, monday, 16)
	for _, s := range monday {
		assert.Equal(t, "Closed (Monday)", *s.Reason)
	}

	_, err = e.availability.Execute(e.ctx, GetAvailabilityInput{Actor: ActorPublic, Date: "03/10", ServiceID: e.cut.ID})
	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidDateTime))

	_, err = e.availability.Execute(e.ctx, GetAvailabilityInput{Actor: ActorPublic, Date: day, ServiceID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidateBookingDoesNotPersist(t *testing.T) {
	e := newEnv(t)

	vb, err := e.validate.Execute(e.ctx, ValidateBookingInput{
		Actor:     ActorPublic,
		ServiceID: e.long.ID,
		Date:      day,
		Time:      "16:30",
		Identity:  domain.Identity{Phone: "5145550000"},
	})
	require.NoError(t, err)
	assert.True(t, e.at(16, 30).Equal(vb.Start))
	assert.True(t, e.at(18, 30).Equal(vb.End))

	_, err = e.validate.Execute(e.ctx, ValidateBookingInput{
		Actor:     ActorPublic,
		ServiceID: e.long.ID,
		Date:      day,
		Time:      "17:00",
		Identity:  domain.Identity{Phone: "5145550000"},
	})
	require.True(t, httperr.IsBusiness(err, domain.CodeLastEnd))
	assert.Equal(t, "Booking ends at 19:00, but last appointment must end by 18:30", err.Error())

	var count int64
	require.NoError(t, e.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestClaimGuestBookingsIsIdempotent(t *testing.T) {
	e := newEnv(t)

	owner := models.User{PhoneNumber: "5145550000", Name: "Owner"}
	other := models.User{PhoneNumber: "4380000000", Name: "Other"}
	require.NoError(t, e.db.Create(&owner).Error)
	require.NoError(t, e.db.Create(&other).Error)

	guestAp := e.mustCreate(t, e.guest("5145550000", "12:00"))

	// same phone, but already attached to a different account
	foreign := e.guest("5145550000", "14:00")
	foreign.Actor = ActorCustomer
	foreign.UserID = &other.ID
	foreignAp := e.mustCreate(t, foreign)

	n, err := e.claim.Execute(e.ctx, owner.ID, "(514) 555-0000")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = e.claim.Execute(e.ctx, owner.ID, "5145550000")
	require.NoError(t, err)
	assert.Zero(t, n)

	var reloaded models.Appointment
	require.NoError(t, e.db.First(&reloaded, guestAp.ID).Error)
	assert.Equal(t, owner.ID, *reloaded.UserID)

	require.NoError(t, e.db.First(&reloaded, foreignAp.ID).Error)
	assert.Equal(t, other.ID, *reloaded.UserID)

	mine, err := e.mine.Execute(e.ctx, owner.ID, owner.PhoneNumber)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, guestAp.ID, mine[0].ID)
}

func TestCustomerCancelsOwnBookingWithoutCode(t *testing.T) {
	e := newEnv(t)

	user := models.User{PhoneNumber: "5145550000", Name: "Reg"}
	require.NoError(t, e.db.Create(&user).Error)

	in := e.guest("5145550000", "15:00")
	in.Actor = ActorCustomer
	in.UserID = &user.ID
	ap := e.mustCreate(t, in)

	_, err := e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{ID: ap.ID, UserID: uintPtr(user.ID + 1)})
	assert.True(t, httperr.IsBusiness(err, domain.CodeContactDenied))

	_, err = e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{ID: ap.ID, UserID: &user.ID})
	require.NoError(t, err)
}

func TestCalendarViews(t *testing.T) {
	e := newEnv(t)

	first := e.mustCreate(t, e.guest("5140000001", "12:00"))
	second := e.mustCreate(t, e.guest("5140000002", "13:00"))
	_, err := e.cancelAdmin.Execute(e.ctx, second.ID, nil)
	require.NoError(t, err)

	next := e.guest("5140000003", "11:00")
	next.Date = "2026-03-12"
	e.mustCreate(t, next)

	snap, err := e.byDate.Execute(e.ctx, day)
	require.NoError(t, err)
	assert.Equal(t, day, snap.Date)
	require.Len(t, snap.Appointments, 2, "cancelled rows stay on the calendar")
	assert.Equal(t, "Coupe (Homme)", snap.Appointments[0].ServiceName)
	assert.Equal(t, "cancelled", snap.Appointments[1].Status)
	assert.NotEmpty(t, snap.Version)

	again, err := e.byDate.Execute(e.ctx, day)
	require.NoError(t, err)
	assert.Equal(t, snap.Version, again.Version)

	week, err := e.byWeek.Execute(e.ctx, "2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", week.Start)
	require.Len(t, week.Days, 7)
	assert.True(t, week.Days[0].Closed)
	assert.Len(t, week.Days[1].Appointments, 2)
	assert.Len(t, week.Days[3].Appointments, 1)
	assert.Empty(t, week.Days[6].Appointments)

	month, err := e.byMonth.Execute(e.ctx, 2026, 3)
	require.NoError(t, err)
	assert.Len(t, month.Days, 31)

	// hard-deleting an older row still changes the stamp
	_, err = e.cancelSelf.Execute(e.ctx, CancelSelfServiceInput{
		ID: first.ID, Phone: "5140000001", Code: *first.BookingCode,
	})
	require.NoError(t, err)
	afterDelete, err := e.byDate.Execute(e.ctx, day)
	require.NoError(t, err)
	require.Len(t, afterDelete.Appointments, 1)
	assert.NotEqual(t, snap.Version, afterDelete.Version)

	_, err = e.byMonth.Execute(e.ctx, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}
