package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/middleware"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/schedule"
	usecase "github.com/mesalibre/reserva-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	createUC       *usecase.CreateBooking
	confirmUC      *usecase.ConfirmBooking
	cancelUC       *usecase.CancelBooking
	completeUC     *usecase.CompleteBooking
	listByDateUC   *usecase.ListBookingsByDate
	listByMonthUC  *usecase.ListBookingsByMonth
	availabilityUC *usecase.ListAvailability
	suggestUC      *usecase.SuggestSlot
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *usecase.CreateBooking,
	confirmUC *usecase.ConfirmBooking,
	cancelUC *usecase.CancelBooking,
	completeUC *usecase.CompleteBooking,
	listByDateUC *usecase.ListBookingsByDate,
	listByMonthUC *usecase.ListBookingsByMonth,
	availabilityUC *usecase.ListAvailability,
	suggestUC *usecase.SuggestSlot,
) *BookingHandler {
	return &BookingHandler{
		db:             db,
		createUC:       createUC,
		confirmUC:      confirmUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
		availabilityUC: availabilityUC,
		suggestUC:      suggestUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`  // YYYY-MM-DD
	Start       string `json:"start" binding:"required"` // HH:MM
	End         string `json:"end"`
	Confirmed   bool   `json:"confirmed"`
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), usecase.CreateBookingInput{
		BusinessID:  businessID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Start:       req.Start,
		End:         req.End,
		Confirmed:   req.Confirmed,
		Notes:       req.Notes,
	})

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "business_inactive"):
		httperr.BadRequest(c, "business_inactive", "El negocio no está activo.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
	case httperr.IsBusiness(err, "date_in_past"):
		httperr.BadRequest(c, "date_in_past", "La fecha no puede ser en el pasado.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Hora inválida.")
	case httperr.IsBusiness(err, "end_before_start"):
		httperr.BadRequest(c, "end_before_start", "La hora final debe ser mayor a la inicial.")
	case httperr.IsBusiness(err, "outside_business_hours"):
		httperr.BadRequest(c, "outside_business_hours", "Fuera del horario de atención.")
	case httperr.IsBusiness(err, "client_already_booked"):
		httperr.BadRequest(c, "client_already_booked", "El cliente ya tiene una reserva activa.")
	case httperr.IsBusiness(err, "no_table_available"):
		httperr.Conflict(c, "no_table_available", "No hay mesas disponibles en ese horario.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Error al crear la reserva.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es obligatoria.")
		return
	}

	biz, ok := h.loadBusiness(c, businessID)
	if !ok {
		return
	}

	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	bookings, err := h.listByDateUC.Execute(c.Request.Context(), businessID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Error al listar las reservas.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Año y mes son obligatorios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	bookings, err := h.listByMonthUC.Execute(
		c.Request.Context(),
		businessID,
		year,
		time.Month(month),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Error al listar las reservas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.changeState(c, func(businessID, userID, bookingID uint) (*models.Booking, error) {
		return h.confirmUC.Execute(c.Request.Context(), businessID, userID, bookingID)
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.changeState(c, func(businessID, userID, bookingID uint) (*models.Booking, error) {
		return h.cancelUC.Execute(c.Request.Context(), businessID, userID, bookingID)
	})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.changeState(c, func(businessID, userID, bookingID uint) (*models.Booking, error) {
		return h.completeUC.Execute(c.Request.Context(), businessID, userID, bookingID)
	})
}

func (h *BookingHandler) changeState(
	c *gin.Context,
	fn func(businessID, userID, bookingID uint) (*models.Booking, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Reserva inválida.")
		return
	}

	b, err := fn(businessID, userID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Reserva no encontrada.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "La reserva no permite ese cambio de estado.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Error al actualizar la reserva.")
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// AVAILABILITY + SUGGESTION
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

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

	biz, ok := h.loadBusiness(c, businessID)
	if !ok {
		return
	}

	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	durationMin := 0
	if d := c.Query("duration_min"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			durationMin = v
		}
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		businessID,
		uint(serviceID),
		date,
		durationMin,
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

func (h *BookingHandler) Suggest(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

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

	biz, ok := h.loadBusiness(c, businessID)
	if !ok {
		return
	}

	in := schedule.SuggestInput{ServiceID: uint(serviceID)}

	if dateStr := c.Query("from"); dateStr != "" {
		from, err := parseDateInBusiness(biz, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		in.From = from
	} else {
		in.From = todayInBusiness(biz)
	}

	if d := c.Query("duration_min"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			in.DurationMin = v
		}
	}

	if p := c.Query("preferred"); p != "" {
		min, err := schedule.ClockToMinutes(p)
		if err != nil {
			httperr.BadRequest(c, "invalid_preferred_time", "Hora preferida inválida.")
			return
		}
		in.PreferredMin = &min
	}

	suggestion, err := h.suggestUC.Execute(c.Request.Context(), businessID, in)
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

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) loadBusiness(c *gin.Context, businessID uint) (*models.Business, bool) {
	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		respondBusinessLookupError(c, err)
		return nil, false
	}
	return &biz, true
}

func respondBusinessLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}
	httperr.Internal(c, "failed_to_get_business", "No se pudo obtener el negocio.")
}
