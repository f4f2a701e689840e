package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamadospro/field-scheduler/internal/httpresp"
	"github.com/chamadospro/field-scheduler/internal/middleware"
	"github.com/chamadospro/field-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (TÉCNICO)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	clientType := strings.ToUpper(strings.TrimSpace(c.Query("type")))

	q := h.db.Where("user_id = ?", userID)

	if clientType == "PF" || clientType == "PJ" {
		q = q.Where("type = ?", clientType)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	httpresp.List(c, clients)
}
