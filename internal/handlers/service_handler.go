package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamadospro/field-scheduler/internal/middleware"
	"github.com/chamadospro/field-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Price         string `json:"price" binding:"required"`
	DurationHours int    `json:"duration" binding:"required,min=1"`
	Warranty      string `json:"warranty"`
	BillingUnit   string `json:"billing_unit"`
	ImageURL      string `json:"image_url"`
	PublicBooking *bool  `json:"public_booking,omitempty"`
}

type UpdateServiceRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Price         *string `json:"price,omitempty"`
	DurationHours *int    `json:"duration,omitempty"`
	Warranty      *string `json:"warranty,omitempty"`
	BillingUnit   *string `json:"billing_unit,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	Active        *bool   `json:"active,omitempty"`
	PublicBooking *bool   `json:"public_booking,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("user_id = ?", userID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	service := models.Service{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationHours: req.DurationHours,
		Warranty:      req.Warranty,
		BillingUnit:   req.BillingUnit,
		ImageURL:      req.ImageURL,
		Active:        true,
		PublicBooking: true,
	}

	if req.PublicBooking != nil {
		service.PublicBooking = *req.PublicBooking
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	serviceID := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND user_id = ?", serviceID, userID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationHours != nil {
		service.DurationHours = *req.DurationHours
	}
	if req.Warranty != nil {
		service.Warranty = *req.Warranty
	}
	if req.BillingUnit != nil {
		service.BillingUnit = *req.BillingUnit
	}
	if req.ImageURL != nil {
		service.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.PublicBooking != nil {
		service.PublicBooking = *req.PublicBooking
	}

	if err := h.db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, service)
}
