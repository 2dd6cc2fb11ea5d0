package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the admin calendar.
type AppointmentHandler struct {
	byDate       *appointment.ListAppointmentsByDate
	byWeek       *appointment.ListAppointmentsByWeek
	byMonth      *appointment.ListAppointmentsByMonth
	availability *appointment.GetAvailability
	create       *appointment.CreateBooking
	edit         *appointment.EditBooking
	cancel       *appointment.CancelBookingAdmin
	loc          *time.Location
	logger       *slog.Logger
}

func NewAppointmentHandler(
	byDate *appointment.ListAppointmentsByDate,
	byWeek *appointment.ListAppointmentsByWeek,
	byMonth *appointment.ListAppointmentsByMonth,
	availability *appointment.GetAvailability,
	create *appointment.CreateBooking,
	edit *appointment.EditBooking,
	cancel *appointment.CancelBookingAdmin,
	loc *time.Location,
	logger *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		byDate:       byDate,
		byWeek:       byWeek,
		byMonth:      byMonth,
		availability: availability,
		create:       create,
		edit:         edit,
		cancel:       cancel,
		loc:          loc,
		logger:       logger,
	}
}

// ======================================================
// CALENDAR
// ======================================================

// ListByDate is polled by the day view; clients compare the version.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	snap, err := h.byDate.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, h.logger, err, "list_failed")
		return
	}
	httpresp.OK(c, snap)
}

func (h *AppointmentHandler) ListByWeek(c *gin.Context) {
	week, err := h.byWeek.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, h.logger, err, "list_failed")
		return
	}
	httpresp.OK(c, week)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}

	view, err := h.byMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, h.logger, err, "list_failed")
		return
	}
	httpresp.OK(c, view)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		return
	}
	if serviceID == nil {
		httperr.BadRequest(c, "missing_service_id", "Please choose a service.")
		return
	}
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		Actor:     appointment.ActorAdmin,
		Date:      c.Query("date"),
		ServiceID: *serviceID,
		BarberID:  barberID,
	})
	if err != nil {
		writeError(c, h.logger, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}

// ======================================================
// WRITE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateBookingInput{
		Actor:         appointment.ActorAdmin,
		ActorID:       &adminID,
		ServiceID:     req.ServiceID,
		BarberID:      req.BarberID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err, "booking_failed")
		return
	}
	httpresp.Created(c, dto.FromAppointment(*ap, h.loc))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	adminID, _ := middleware.UserID(c)

	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.edit.Execute(c.Request.Context(), appointment.EditBookingInput{
		ID:            id,
		Actor:         appointment.ActorAdmin,
		ActorID:       &adminID,
		ServiceID:     req.ServiceID,
		BarberID:      req.BarberID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err, "update_failed")
		return
	}
	httpresp.OK(c, dto.FromAppointment(*ap, h.loc))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	adminID, _ := middleware.UserID(c)

	ap, err := h.cancel.Execute(c.Request.Context(), id, &adminID)
	if err != nil {
		writeError(c, h.logger, err, "cancel_failed")
		return
	}
	httpresp.OK(c, dto.FromAppointment(*ap, h.loc))
}
