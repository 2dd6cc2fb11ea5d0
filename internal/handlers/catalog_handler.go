package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

type CatalogHandler struct {
	list   *catalog.ListCatalog
	manage *catalog.ManageCatalog
	logger *slog.Logger
}

func NewCatalogHandler(
	list *catalog.ListCatalog,
	manage *catalog.ManageCatalog,
	logger *slog.Logger,
) *CatalogHandler {
	return &CatalogHandler{list: list, manage: manage, logger: logger}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
	Price       string `json:"price"`
	PriceIsFrom bool   `json:"price_is_from"`
	PriceLabel  string `json:"price_label"`
	IsPopular   bool   `json:"is_popular"`
	SortOrder   int    `json:"sort_order"`
}

func (r ServiceRequest) input() catalog.ServiceInput {
	return catalog.ServiceInput{
		Name:        r.Name,
		Category:    r.Category,
		DurationMin: r.DurationMin,
		Price:       r.Price,
		PriceIsFrom: r.PriceIsFrom,
		PriceLabel:  r.PriceLabel,
		IsPopular:   r.IsPopular,
		SortOrder:   r.SortOrder,
	}
}

type BarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type ActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// --------- Services ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.list.Services(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "list_failed")
		return
	}
	httpresp.List(c, dto.FromServices(services))
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.manage.CreateService(c.Request.Context(), adminID, req.input())
	if err != nil {
		writeError(c, h.logger, err, "create_failed")
		return
	}
	httpresp.Created(c, dto.FromService(*s))
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	adminID, _ := middleware.UserID(c)

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.manage.UpdateService(c.Request.Context(), adminID, id, req.input())
	if err != nil {
		writeError(c, h.logger, err, "update_failed")
		return
	}
	httpresp.OK(c, dto.FromService(*s))
}

func (h *CatalogHandler) SetServiceActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	adminID, _ := middleware.UserID(c)

	var req ActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.manage.SetServiceActive(c.Request.Context(), adminID, id, *req.Active)
	if err != nil {
		writeError(c, h.logger, err, "update_failed")
		return
	}
	httpresp.OK(c, dto.FromService(*s))
}

// --------- Barbers ---------

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.list.Barbers(c.Request.Context(), false)
	if err != nil {
		writeError(c, h.logger, err, "list_failed")
		return
	}
	httpresp.List(c, barbers)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.manage.CreateBarber(c.Request.Context(), adminID, catalog.BarberInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(c, h.logger, err, "create_failed")
		return
	}
	httpresp.Created(c, b)
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	adminID, _ := middleware.UserID(c)

	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.manage.UpdateBarber(c.Request.Context(), adminID, id, catalog.BarberInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(c, h.logger, err, "update_failed")
		return
	}
	httpresp.OK(c, b)
}

func (h *CatalogHandler) SetBarberActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	adminID, _ := middleware.UserID(c)

	var req ActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.manage.SetBarberActive(c.Request.Context(), adminID, id, *req.Active)
	if err != nil {
		writeError(c, h.logger, err, "update_failed")
		return
	}
	httpresp.OK(c, b)
}
