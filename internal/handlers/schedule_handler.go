package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamadospro/field-scheduler/internal/middleware"
	"github.com/chamadospro/field-scheduler/internal/models"
)

// ScheduleHandler cuida do expediente semanal e dos parâmetros de
// agenda (antecedência, buffer, deslocamento) do técnico.
type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

type ScheduleSettingsUpdateRequest struct {
	LeadTimeMinutes      *int `json:"lead_time_minutes,omitempty"`
	BufferMinutes        *int `json:"buffer_minutes,omitempty"`
	TravelMinutes        *int `json:"travel_minutes,omitempty"`
	DefaultDurationHours *int `json:"default_duration_hours,omitempty"`
	SlotIntervalMinutes  *int `json:"slot_interval_minutes,omitempty"`
}

// ======================================================
// WORKING HOURS
// ======================================================

func (h *ScheduleHandler) GetWorkingHours(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var hours []models.WorkingHours
	if err := h.db.
		Where("user_id = ?", userID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *ScheduleHandler) UpdateWorkingHours(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ?", userID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, day := range req.Days {
			wh := models.WorkingHours{
				UserID:     userID,
				Weekday:    day.Weekday,
				Active:     day.Active,
				StartTime:  day.StartTime,
				EndTime:    day.EndTime,
				BreakStart: day.BreakStart,
				BreakEnd:   day.BreakEnd,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_working_hours"})
		return
	}

	h.GetWorkingHours(c)
}

// ======================================================
// SCHEDULE SETTINGS
// ======================================================

func (h *ScheduleHandler) GetSettings(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var settings models.ScheduleSettings
	if err := h.db.
		Where("user_id = ?", userID).
		First(&settings).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, models.ScheduleSettings{
				UserID:               userID,
				LeadTimeMinutes:      30,
				BufferMinutes:        15,
				TravelMinutes:        30,
				DefaultDurationHours: 3,
				SlotIntervalMinutes:  30,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *ScheduleHandler) UpdateSettings(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ScheduleSettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var settings models.ScheduleSettings
	if err := h.db.
		Where("user_id = ?", userID).
		First(&settings).Error; err != nil {

		settings = models.ScheduleSettings{
			UserID:               userID,
			LeadTimeMinutes:      30,
			BufferMinutes:        15,
			TravelMinutes:        30,
			DefaultDurationHours: 3,
			SlotIntervalMinutes:  30,
		}
	}

	apply := func(dst *int, src *int) bool {
		if src == nil {
			return true
		}
		if *src < 0 {
			return false
		}
		*dst = *src
		return true
	}

	ok := apply(&settings.LeadTimeMinutes, req.LeadTimeMinutes) &&
		apply(&settings.BufferMinutes, req.BufferMinutes) &&
		apply(&settings.TravelMinutes, req.TravelMinutes) &&
		apply(&settings.DefaultDurationHours, req.DefaultDurationHours)

	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_settings"})
		return
	}

	if req.SlotIntervalMinutes != nil {
		if *req.SlotIntervalMinutes <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_settings"})
			return
		}
		settings.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}

	if err := h.db.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
