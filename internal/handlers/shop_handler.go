package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// ShopHandler exposes the fixed shop configuration the booking page
// needs to draw its calendar.
type ShopHandler struct {
	hours domain.ShopHours
}

func NewShopHandler(hours domain.ShopHours) *ShopHandler {
	return &ShopHandler{hours: hours}
}

func (h *ShopHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timezone":     h.hours.Location.String(),
		"open":         h.hours.Open.String(),
		"close":        h.hours.Close.String(),
		"last_end":     h.hours.LastEnd.String(),
		"closed_day":   h.hours.ClosedDay.String(),
		"slot_minutes": int(h.hours.Step.Minutes()),
	})
}
