package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func candidate(h ShopHours, start time.Time, bookings ...models.Appointment) Candidate {
	return Candidate{
		Start:         start,
		Duration:      30 * time.Minute,
		Identity:      Identity{Phone: "5145550000"},
		Now:           at(h, 9, 0),
		ActiveBarbers: 3,
		Load:          NewDayLoad(bookings),
	}
}

func guest(b models.Appointment, phone string) models.Appointment {
	b.CustomerPhone = strPtr(phone)
	return b
}

func TestLastEndCutoff(t *testing.T) {
	h := shop(t)
	p := PublicPolicy(3)

	_, _, err := p.Validate(h, Candidate{
		Start: at(h, 18, 15), Duration: 30 * time.Minute, Now: at(h, 9, 0), ActiveBarbers: 3,
	})
	// off grid fires first in the public chain
	assert.True(t, httperr.IsBusiness(err, CodeOffGrid))

	_, _, err = AdminPolicy().Validate(h, Candidate{
		Start: at(h, 18, 15), Duration: 30 * time.Minute, Now: at(h, 9, 0),
	})
	require.True(t, httperr.IsBusiness(err, CodeLastEnd))
	assert.Equal(t, "Booking ends at 18:45, but last appointment must end by 18:30", err.Error())

	start, end, err := p.Validate(h, candidate(h, at(h, 18, 0)))
	require.NoError(t, err)
	assert.Equal(t, at(h, 18, 0), start)
	assert.Equal(t, at(h, 18, 30), end)
}

func TestClosedDayAndHours(t *testing.T) {
	h := shop(t)
	p := PublicPolicy(3)

	monday := at(h, 12, 0).AddDate(0, 0, -1)
	_, _, err := p.Validate(h, candidate(h, monday))
	assert.True(t, httperr.IsBusiness(err, CodeClosedDay))

	_, _, err = p.Validate(h, candidate(h, at(h, 10, 30)))
	assert.True(t, httperr.IsBusiness(err, CodeOutsideHours))

	_, _, err = p.Validate(h, candidate(h, at(h, 19, 0)))
	assert.True(t, httperr.IsBusiness(err, CodeOutsideHours))
}

func TestPastAndHoursStayDistinguishable(t *testing.T) {
	h := shop(t)

	c := candidate(h, at(h, 10, 0))
	c.Now = at(h, 15, 0)

	// public: hours before past
	_, _, err := PublicPolicy(3).Validate(h, c)
	assert.True(t, httperr.IsBusiness(err, CodeOutsideHours))

	// customer: past before hours
	_, _, err = CustomerPolicy(2).Validate(h, c)
	assert.True(t, httperr.IsBusiness(err, CodePast))
	assert.Equal(t, "Cannot book in the past.", err.Error())

	// same minute is not past
	c = candidate(h, at(h, 15, 0))
	c.Now = at(h, 15, 0).Add(42 * time.Second)
	_, _, err = CustomerPolicy(2).Validate(h, c)
	assert.NoError(t, err)
}

func TestIdentityOverlap(t *testing.T) {
	h := shop(t)

	existing := guest(booking(1, uintPtr(1), at(h, 13, 0), 60), "5145550000")
	_, _, err := PublicPolicy(3).Validate(h, candidate(h, at(h, 13, 30), existing))
	assert.True(t, httperr.IsBusiness(err, CodeDoubleBooked))

	// touching is fine
	_, _, err = PublicPolicy(3).Validate(h, candidate(h, at(h, 14, 0), existing))
	assert.NoError(t, err)

	// a registered user matches on user id even with another phone
	owned := booking(2, uintPtr(2), at(h, 15, 0), 30)
	owned.UserID = uintPtr(7)
	c := candidate(h, at(h, 15, 0), owned)
	c.Identity = Identity{UserID: uintPtr(7), Phone: "5149999999"}
	_, _, err = CustomerPolicy(2).Validate(h, c)
	assert.True(t, httperr.IsBusiness(err, CodeDoubleBooked))
}

func TestDailyCap(t *testing.T) {
	h := shop(t)
	p := PublicPolicy(3)

	one := guest(booking(1, uintPtr(1), at(h, 11, 0), 30), "5145550000")
	two := guest(booking(2, uintPtr(2), at(h, 13, 0), 30), "5145550000")

	_, _, err := p.Validate(h, candidate(h, at(h, 15, 0), one))
	assert.NoError(t, err)

	_, _, err = p.Validate(h, candidate(h, at(h, 15, 0), one, two))
	require.True(t, httperr.IsBusiness(err, CodeDailyLimit))
	assert.Contains(t, err.Error(), "contact the shop directly")

	// editing one of the two frees the slot again
	c := candidate(h, at(h, 15, 0), one, two)
	c.Load = c.Load.Without(uintPtr(2))
	_, _, err = p.Validate(h, c)
	assert.NoError(t, err)
}

func TestBarberOverlap(t *testing.T) {
	h := shop(t)

	c := candidate(h, at(h, 12, 0), booking(1, uintPtr(2), at(h, 11, 30), 60))
	c.BarberID = uintPtr(2)
	_, _, err := PublicPolicy(3).Validate(h, c)
	assert.True(t, httperr.IsBusiness(err, CodeBarberBooked))

	c.BarberID = uintPtr(3)
	_, _, err = PublicPolicy(3).Validate(h, c)
	assert.NoError(t, err)
}

func TestCapacityCeiling(t *testing.T) {
	h := shop(t)

	for _, tc := range []struct {
		name     string
		ceiling  int
		barbers  int
		existing int
		wantFull bool
	}{
		{"public at N-1", 3, 3, 2, false},
		{"public at N", 3, 3, 3, true},
		{"customer at N-1", 2, 3, 1, false},
		{"customer at N", 2, 3, 2, true},
		{"roster below ceiling", 3, 2, 2, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var bookings []models.Appointment
			for i := 0; i < tc.existing; i++ {
				bookings = append(bookings, booking(uint(i+1), nil, at(h, 16, 0), 30))
			}
			c := candidate(h, at(h, 16, 0), bookings...)
			c.ActiveBarbers = tc.barbers

			_, _, err := PublicPolicy(tc.ceiling).Validate(h, c)
			if tc.wantFull {
				require.Error(t, err)
				assert.True(t, httperr.IsBusiness(err, CodeFullyBooked))
				assert.Equal(t, "This time slot is fully booked. Please pick another time.", err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCapacityCountsConcurrentSegmentsOnly(t *testing.T) {
	h := shop(t)

	// 11:00 and 12:00 never run together, so a 2h booking sees at most one
	bookings := []models.Appointment{
		booking(1, nil, at(h, 11, 0), 30),
		booking(2, nil, at(h, 12, 0), 30),
	}
	c := candidate(h, at(h, 11, 0), bookings...)
	c.Identity = Identity{}
	c.Duration = 2 * time.Hour

	_, _, err := CustomerPolicy(2).Validate(h, c)
	assert.NoError(t, err)
}

func TestPublicCapacityCountsTheWholeInterval(t *testing.T) {
	h := shop(t)

	bookings := []models.Appointment{
		booking(1, nil, at(h, 11, 0), 30),
		booking(2, nil, at(h, 12, 0), 30),
	}
	c := candidate(h, at(h, 11, 0), bookings...)
	c.Identity = Identity{}
	c.Duration = 2 * time.Hour
	c.ActiveBarbers = 2

	_, _, err := PublicPolicy(3).Validate(h, c)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, CodeFullyBooked))

	_, _, err = CustomerPolicy(3).Validate(h, c)
	assert.NoError(t, err)
}

func TestAdminPolicyIgnoresOverlapAndCapacity(t *testing.T) {
	h := shop(t)

	var bookings []models.Appointment
	for i := 0; i < 3; i++ {
		bookings = append(bookings, guest(booking(uint(i+1), uintPtr(1), at(h, 12, 0), 30), "5145550000"))
	}
	c := candidate(h, at(h, 12, 10), bookings...)
	c.BarberID = uintPtr(1)
	c.Now = at(h, 18, 0)

	_, _, err := AdminPolicy().Validate(h, c)
	assert.NoError(t, err)
}
