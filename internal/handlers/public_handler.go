package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/schedule"
	usecase "github.com/mesalibre/reserva-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	createUC       *usecase.CreateBooking
	availabilityUC *usecase.ListAvailability
	suggestUC      *usecase.SuggestSlot
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *usecase.CreateBooking,
	availabilityUC *usecase.ListAvailability,
	suggestUC *usecase.SuggestSlot,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
		suggestUC:      suggestUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`  // YYYY-MM-DD
	Start       string `json:"start" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	biz, ok := h.loadBusinessBySlug(c, slug)
	if !ok {
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("business_id = ? AND active = true", biz.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar los servicios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": gin.H{
			"id":      biz.ID,
			"name":    biz.Name,
			"slug":    biz.Slug,
			"phone":   biz.Phone,
			"address": biz.Address,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y servicio son obligatorios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	biz, ok := h.loadBusinessBySlug(c, slug)
	if !ok {
		return
	}

	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		biz.ID,
		uint(serviceID),
		date,
		0,
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "availability_failed", "Error al calcular los horarios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// SUGGESTION
////////////////////////////////////////////////////////

func (h *PublicHandler) Suggest(c *gin.Context) {
	slug := c.Param("slug")

	serviceIDStr := c.Query("service_id")
	if serviceIDStr == "" {
		httperr.BadRequest(c, "missing_service_id", "El servicio es obligatorio.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	biz, ok := h.loadBusinessBySlug(c, slug)
	if !ok {
		return
	}

	in := schedule.SuggestInput{
		ServiceID: uint(serviceID),
		From:      todayInBusiness(biz),
	}

	if dateStr := c.Query("from"); dateStr != "" {
		from, err := parseDateInBusiness(biz, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		in.From = from
	}

	if p := c.Query("preferred"); p != "" {
		min, err := schedule.ClockToMinutes(p)
		if err != nil {
			httperr.BadRequest(c, "invalid_preferred_time", "Hora preferida inválida.")
			return
		}
		in.PreferredMin = &min
	}

	suggestion, err := h.suggestUC.Execute(c.Request.Context(), biz.ID, in)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "suggestion_failed", "Error al buscar un horario.")
		return
	}

	if suggestion == nil {
		httperr.Conflict(c, "no_availability", "No hay horarios disponibles en los próximos días.")
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

// CreateBooking registers a pending booking for a walk-in client. When the
// requested slot is full the response carries the next suggestion so the
// client can retry without a second round trip.
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	biz, ok := h.loadBusinessBySlug(c, slug)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), usecase.CreateBookingInput{
		BusinessID:  biz.ID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Start:       req.Start,
		Notes:       req.Notes,
	})

	if err != nil {
		if httperr.IsBusiness(err, "no_table_available") {
			h.respondWithSuggestion(c, biz, req)
			return
		}
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// respondWithSuggestion answers the failed create with 409 plus the closest
// alternative slot, preferring the time the client originally asked for.
func (h *PublicHandler) respondWithSuggestion(
	c *gin.Context,
	biz *models.Business,
	req PublicCreateBookingRequest,
) {
	in := schedule.SuggestInput{
		ServiceID: req.ServiceID,
		From:      todayInBusiness(biz),
	}

	if from, err := parseDateInBusiness(biz, req.Date); err == nil {
		in.From = from
	}
	if min, err := schedule.ClockToMinutes(req.Start); err == nil {
		in.PreferredMin = &min
	}

	suggestion, err := h.suggestUC.Execute(c.Request.Context(), biz.ID, in)
	if err != nil || suggestion == nil {
		httperr.Conflict(c, "no_table_available", "No hay mesas disponibles en ese horario.")
		return
	}

	c.JSON(http.StatusConflict, gin.H{
		"error_code": "no_table_available",
		"message":    "No hay mesas disponibles en ese horario.",
		"suggestion": suggestion,
	})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) loadBusinessBySlug(c *gin.Context, slug string) (*models.Business, bool) {
	var biz models.Business
	if err := h.db.
		Where("slug = ? AND active = true", slug).
		First(&biz).Error; err != nil {

		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return nil, false
	}
	return &biz, true
}
