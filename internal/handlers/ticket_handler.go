package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/httpresp"
	"github.com/chamadospro/field-scheduler/internal/middleware"
	"github.com/chamadospro/field-scheduler/internal/models"
	ucbooking "github.com/chamadospro/field-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type TicketHandler struct {
	db *gorm.DB

	createUC      *ucbooking.CreateBooking
	cancelUC      *ucbooking.CancelTicket
	transitionUC  *ucbooking.TransitionTicket
	listByDateUC  *ucbooking.ListTicketsByDate
	listByMonthUC *ucbooking.ListTicketsByMonth
}

func NewTicketHandler(
	db *gorm.DB,
	createUC *ucbooking.CreateBooking,
	cancelUC *ucbooking.CancelTicket,
	transitionUC *ucbooking.TransitionTicket,
	listByDateUC *ucbooking.ListTicketsByDate,
	listByMonthUC *ucbooking.ListTicketsByMonth,
) *TicketHandler {
	return &TicketHandler{
		db:            db,
		createUC:      createUC,
		cancelUC:      cancelUC,
		transitionUC:  transitionUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTicketRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientType  string `json:"client_type"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Description string `json:"description"`
}

type CancelTicketRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE (API PRIVADA)
// ======================================================

func (h *TicketHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Técnico não encontrado.")
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTimeForUser(&user, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ticket, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		UserID:        userID,
		ServiceID:     req.ServiceID,
		ScheduledDate: start.Format(time.RFC3339),
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientType:    req.ClientType,
		Description:   req.Description,
		Source:        "private",
	})

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// ======================================================
// LISTS
// ======================================================

func (h *TicketHandler) ListByDate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Técnico não encontrado.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDateForUser(&user, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	tickets, err := h.listByDateUC.Execute(c.Request.Context(), userID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_tickets", "Erro ao listar chamados.")
		return
	}

	httpresp.List(c, tickets)
}

func (h *TicketHandler) ListByMonth(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválido.")
		return
	}

	tickets, err := h.listByMonthUC.Execute(c.Request.Context(), userID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_tickets", "Erro ao listar chamados.")
		return
	}

	httpresp.List(c, tickets)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *TicketHandler) ticketID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_ticket_id", "Chamado inválido.")
		return 0, false
	}
	return uint(id), true
}

func (h *TicketHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ticketID, ok := h.ticketID(c)
	if !ok {
		return
	}

	var req CancelTicketRequest
	_ = c.ShouldBindJSON(&req)

	ticket, err := h.cancelUC.Execute(c.Request.Context(), userID, ticketID, req.Reason)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Start(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ticketID, ok := h.ticketID(c)
	if !ok {
		return
	}

	ticket, err := h.transitionUC.Start(c.Request.Context(), userID, ticketID)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ticketID, ok := h.ticketID(c)
	if !ok {
		return
	}

	ticket, err := h.transitionUC.Complete(c.Request.Context(), userID, ticketID)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) NoShow(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ticketID, ok := h.ticketID(c)
	if !ok {
		return
	}

	ticket, err := h.transitionUC.MarkNoShow(c.Request.Context(), userID, ticketID)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingErrors(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "booking_failed", "Erro ao processar o chamado.")
		return
	}

	switch code {
	case "service_not_found":
		httperr.BadRequest(c, code, "Serviço não encontrado.")
	case "invalid_date":
		httperr.BadRequest(c, code, "Data inválida.")
	case "invalid_range":
		httperr.BadRequest(c, code, "Período inválido.")
	case "too_soon":
		httperr.BadRequest(c, code, "Horário muito próximo; escolha outro.")
	case "missing_required_fields":
		httperr.BadRequest(c, code, "Nome, e-mail e telefone são obrigatórios.")
	case "invalid_client_state":
		httperr.BadRequest(c, code, "UF inválida (use 2 letras).")
	case "invalid_client_type":
		httperr.BadRequest(c, code, "Tipo de cliente inválido (PF ou PJ).")
	case "slot_unavailable":
		httperr.Conflict(c, code, "Este horário acabou de ser ocupado. Escolha outro horário.")
	case "ticket_not_found":
		httperr.NotFound(c, code, "Chamado não encontrado.")
	case "invalid_state":
		httperr.BadRequest(c, code, "Transição de status inválida.")
	default:
		httperr.BadRequest(c, code, "Não foi possível concluir a operação.")
	}
}
