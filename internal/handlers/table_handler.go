package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mesalibre/reserva-api/internal/httpresp"
	"github.com/mesalibre/reserva-api/internal/middleware"
	"github.com/mesalibre/reserva-api/internal/models"
)

type TableHandler struct {
	db *gorm.DB
}

func NewTableHandler(db *gorm.DB) *TableHandler {
	return &TableHandler{db: db}
}

// --------- Requests ---------

type CreateTableRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type"`
	CapacityMin int    `json:"capacity_min"`
	CapacityMax int    `json:"capacity_max"`
}

type UpdateTableRequest struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	CapacityMin *int    `json:"capacity_min,omitempty"`
	CapacityMax *int    `json:"capacity_max,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func validTableType(t string) bool {
	switch t {
	case models.TableTypeNormal2, models.TableTypeNormal4,
		models.TableTypeVIP2, models.TableTypeVIPLarge:
		return true
	}
	return false
}

// --------- Handlers ---------

func (h *TableHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	activeStr := strings.TrimSpace(c.Query("active"))
	serviceID := strings.TrimSpace(c.Query("service_id"))

	q := h.db.Where("business_id = ?", businessID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}

	var tables []models.Table
	if err := q.
		Order("id ASC").
		Find(&tables).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_tables"})
		return
	}

	httpresp.List(c, tables)
}

func (h *TableHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	tableType := req.Type
	if tableType == "" {
		tableType = models.TableTypeNormal2
	}
	if !validTableType(tableType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_table_type"})
		return
	}

	var svcCount int64
	h.db.Model(&models.Service{}).
		Where("id = ? AND business_id = ?", req.ServiceID, businessID).
		Count(&svcCount)
	if svcCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_not_found"})
		return
	}

	capMin := req.CapacityMin
	if capMin <= 0 {
		capMin = 1
	}
	capMax := req.CapacityMax
	if capMax < capMin {
		capMax = capMin
	}

	table := models.Table{
		BusinessID:  businessID,
		ServiceID:   req.ServiceID,
		Name:        req.Name,
		Type:        tableType,
		CapacityMin: capMin,
		CapacityMax: capMax,
		Active:      true,
	}

	if err := h.db.Create(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_table"})
		return
	}

	c.JSON(http.StatusCreated, table)
}

func (h *TableHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	id := c.Param("id")

	var table models.Table
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&table).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "table_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_table"})
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		table.Name = *req.Name
	}
	if req.Type != nil {
		if !validTableType(*req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_table_type"})
			return
		}
		table.Type = *req.Type
	}
	if req.CapacityMin != nil && *req.CapacityMin > 0 {
		table.CapacityMin = *req.CapacityMin
	}
	if req.CapacityMax != nil && *req.CapacityMax >= table.CapacityMin {
		table.CapacityMax = *req.CapacityMax
	}
	if req.Active != nil {
		table.Active = *req.Active
	}

	if err := h.db.Save(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_table"})
		return
	}

	httpresp.OK(c, table)
}
