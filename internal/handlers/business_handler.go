package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/httpresp"
	"github.com/mesalibre/reserva-api/internal/middleware"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Error al consultar el negocio.")
		return
	}

	httpresp.OK(c, biz)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Error al consultar el negocio.")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		biz.Name = *req.Name
	}
	if req.Phone != nil {
		biz.Phone = *req.Phone
	}
	if req.Address != nil {
		biz.Address = *req.Address
	}
	if req.ContactEmail != nil {
		biz.ContactEmail = strings.ToLower(strings.TrimSpace(*req.ContactEmail))
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida.")
			return
		}
		biz.Timezone = *req.Timezone
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Error al guardar el negocio.")
		return
	}

	httpresp.OK(c, biz)
}
