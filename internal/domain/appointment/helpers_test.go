package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func shop(t *testing.T) ShopHours {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	return DefaultShopHours(loc)
}

// tuesday 2026-03-10 at hh:mm shop time
func at(h ShopHours, hh, mm int) time.Time {
	return time.Date(2026, 3, 10, hh, mm, 0, 0, h.Location)
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func booking(id uint, barberID *uint, start time.Time, minutes int) models.Appointment {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return models.Appointment{
		ID:           id,
		BarberID:     barberID,
		CustomerName: "Client",
		StartTime:    start,
		EndTime:      &end,
		Status:       string(StatusBooked),
	}
}

func roster(ids ...uint) []models.Barber {
	out := make([]models.Barber, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Barber{ID: id, Name: "Barber", IsActive: true})
	}
	return out
}
