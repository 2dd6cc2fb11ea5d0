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
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	catalog      *catalog.ListCatalog
	availability *appointment.GetAvailability
	create       *appointment.CreateBooking
	find         *appointment.FindBookingsByContact
	cancel       *appointment.CancelBookingSelfService
	loc          *time.Location
	logger       *slog.Logger
}

func NewPublicHandler(
	catalog *catalog.ListCatalog,
	availability *appointment.GetAvailability,
	create *appointment.CreateBooking,
	find *appointment.FindBookingsByContact,
	cancel *appointment.CancelBookingSelfService,
	loc *time.Location,
	logger *slog.Logger,
) *PublicHandler {
	return &PublicHandler{
		catalog:      catalog,
		availability: availability,
		create:       create,
		find:         find,
		cancel:       cancel,
		loc:          loc,
		logger:       logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookingRequest struct {
	ServiceID     uint   `json:"service_id" binding:"required"`
	BarberID      *uint  `json:"barber_id"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // HH:MM
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
}

type ContactRequest struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) Services(c *gin.Context) {
	menu, err := h.catalog.Menu(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "catalog_failed")
		return
	}
	httpresp.OK(c, menu)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
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

	actor := appointment.ActorPublic
	if middleware.Role(c) == session.RoleCustomer {
		actor = appointment.ActorCustomer
	}

	slots, err := h.availability.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		Actor:     actor,
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
// BOOK
// ======================================================

// Create books as a guest, or as the signed-in customer when a
// customer session is present.
func (h *PublicHandler) Create(c *gin.Context) {
	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	in := appointment.CreateBookingInput{
		Actor:         appointment.ActorPublic,
		ServiceID:     req.ServiceID,
		BarberID:      req.BarberID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	}
	if id, ok := middleware.UserID(c); ok && middleware.Role(c) == session.RoleCustomer {
		in.Actor = appointment.ActorCustomer
		in.UserID = &id
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err, "booking_failed")
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap, h.loc))
}

// ======================================================
// LOOKUP / CANCEL
// ======================================================

func (h *PublicHandler) Lookup(c *gin.Context) {
	var req ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.find.Execute(c.Request.Context(), appointment.FindBookingsByContactInput{
		Phone: req.Phone,
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		writeError(c, h.logger, err, "lookup_failed")
		return
	}

	httpresp.List(c, dto.FromAppointments(list, h.loc))
}

func (h *PublicHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	in := appointment.CancelSelfServiceInput{
		ID:    id,
		Phone: req.Phone,
		Email: req.Email,
		Code:  req.Code,
	}
	if uid, ok := middleware.UserID(c); ok && middleware.Role(c) == session.RoleCustomer {
		in.UserID = &uid
	}

	record, err := h.cancel.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err, "cancel_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cancelled":       true,
		"cancellation_id": record.ID,
	})
}
