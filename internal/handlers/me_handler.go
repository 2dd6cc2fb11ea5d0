package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// MeHandler is the signed-in customer's portal.
type MeHandler struct {
	users  account.Repository
	mine   *appointment.ListMyAppointments
	create *appointment.CreateBooking
	edit   *appointment.EditBooking
	cancel *appointment.CancelBookingSelfService
	loc    *time.Location
	logger *slog.Logger
}

func NewMeHandler(
	users account.Repository,
	mine *appointment.ListMyAppointments,
	create *appointment.CreateBooking,
	edit *appointment.EditBooking,
	cancel *appointment.CancelBookingSelfService,
	loc *time.Location,
	logger *slog.Logger,
) *MeHandler {
	return &MeHandler{
		users:  users,
		mine:   mine,
		create: create,
		edit:   edit,
		cancel: cancel,
		loc:    loc,
		logger: logger,
	}
}

func (h *MeHandler) currentUser(c *gin.Context) (*models.User, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Please sign in.")
		return nil, false
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, "user_lookup_failed")
		return nil, false
	}
	return user, true
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	httpresp.OK(c, user)
}

func (h *MeHandler) ListAppointments(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	list, err := h.mine.Execute(c.Request.Context(), user.ID, user.PhoneNumber)
	if err != nil {
		writeError(c, h.logger, err, "list_failed")
		return
	}
	httpresp.List(c, dto.FromAppointments(list, h.loc))
}

func (h *MeHandler) CreateAppointment(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	fillFromUser(&req, user)

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateBookingInput{
		Actor:         appointment.ActorCustomer,
		UserID:        &user.ID,
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

func (h *MeHandler) UpdateAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	fillFromUser(&req, user)

	ap, err := h.edit.Execute(c.Request.Context(), appointment.EditBookingInput{
		ID:            id,
		Actor:         appointment.ActorCustomer,
		UserID:        &user.ID,
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

func (h *MeHandler) CancelAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	uid, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Please sign in.")
		return
	}

	record, err := h.cancel.Execute(c.Request.Context(), appointment.CancelSelfServiceInput{
		ID:     id,
		UserID: &uid,
	})
	if err != nil {
		writeError(c, h.logger, err, "cancel_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cancelled":       true,
		"cancellation_id": record.ID,
	})
}

// fillFromUser defaults the contact fields to the account's own.
func fillFromUser(req *BookingRequest, user *models.User) {
	if req.CustomerName == "" {
		req.CustomerName = user.Name
	}
	if req.CustomerPhone == "" {
		req.CustomerPhone = user.PhoneNumber
	}
}
