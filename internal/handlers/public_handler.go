package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamadospro/field-scheduler/internal/cache"
	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/models"
	"github.com/chamadospro/field-scheduler/internal/timezone"
	ucbooking "github.com/chamadospro/field-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler atende a página pública de agendamento (/:slug).
// Nenhuma rota aqui exige autenticação.
type PublicHandler struct {
	db *gorm.DB

	slotsUC  *ucbooking.GetAvailableSlots
	createUC *ucbooking.CreateBooking
	cache    *cache.SlotCache
}

func NewPublicHandler(
	db *gorm.DB,
	slotsUC *ucbooking.GetAvailableSlots,
	createUC *ucbooking.CreateBooking,
	slotCache *cache.SlotCache,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		slotsUC:  slotsUC,
		createUC: createUC,
		cache:    slotCache,
	}
}

func (h *PublicHandler) technicianBySlug(c *gin.Context) (*models.User, bool) {
	slug := c.Param("slug")

	var user models.User
	err := h.db.Where("public_slug = ?", slug).First(&user).Error
	if err != nil {
		httperr.NotFound(c, "technician_not_found", "Página de agendamento não encontrada.")
		return nil, false
	}

	return &user, true
}

// ======================================================
// CARTÃO DO TÉCNICO
// ======================================================

type publicTechnicianResponse struct {
	Name       string `json:"name"`
	PublicSlug string `json:"public_slug"`
	Phone      string `json:"phone"`
}

func (h *PublicHandler) GetTechnician(c *gin.Context) {
	user, ok := h.technicianBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, publicTechnicianResponse{
		Name:       user.Name,
		PublicSlug: user.PublicSlug,
		Phone:      user.Phone,
	})
}

// ======================================================
// SERVIÇOS PÚBLICOS
// ======================================================

type publicServiceResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    int    `json:"duration"`
	Warranty    string `json:"warranty"`
	BillingUnit string `json:"billing_unit"`
	ImageURL    string `json:"image_url"`
}

func toPublicService(s models.Service) publicServiceResponse {
	return publicServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.DurationHours,
		Warranty:    s.Warranty,
		BillingUnit: s.BillingUnit,
		ImageURL:    s.ImageURL,
	}
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	user, ok := h.technicianBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	err := h.db.
		Where("user_id = ? AND active = ? AND public_booking = ?", user.ID, true, true).
		Order("name asc").
		Find(&services).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	out := make([]publicServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toPublicService(s))
	}

	c.JSON(http.StatusOK, gin.H{"services": out})
}

func (h *PublicHandler) GetService(c *gin.Context) {
	user, ok := h.technicianBySlug(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var service models.Service
	err = h.db.
		Where("id = ? AND user_id = ? AND active = ? AND public_booking = ?", id, user.ID, true, true).
		First(&service).Error
	if err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	c.JSON(http.StatusOK, toPublicService(service))
}

// ======================================================
// DISPONIBILIDADE
// ======================================================

// monthWindow devolve o intervalo carregado para um mês exibido no
// calendário: do primeiro dia do mês até o último dia do mês seguinte,
// para que a virada de mês já chegue pré-carregada.
func monthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 2, -1)
	return start, end
}

func (h *PublicHandler) GetAvailability(c *gin.Context) {
	user, ok := h.technicianBySlug(c)
	if !ok {
		return
	}

	loc := locationForUser(user)

	var from, to time.Time

	startStr := c.Query("start")
	endStr := c.Query("end")

	switch {
	case startStr != "" && endStr != "":
		// range explícito (YYYY-MM-DD, dias inclusivos)
		start, errS := time.ParseInLocation(domain.DateLayout, startStr, loc)
		end, errE := time.ParseInLocation(domain.DateLayout, endStr, loc)
		if errS != nil || errE != nil {
			httperr.BadRequest(c, "invalid_range", "Período inválido (use YYYY-MM-DD).")
			return
		}
		from, to = start, end

	default:
		monthStr := c.Query("month")
		var year int
		var month time.Month
		if monthStr == "" {
			now := timezone.NowIn(user.Timezone)
			year, month = now.Year(), now.Month()
		} else {
			parsed, err := time.ParseInLocation("2006-01", monthStr, loc)
			if err != nil {
				httperr.BadRequest(c, "invalid_month", "Mês inválido (use YYYY-MM).")
				return
			}
			year, month = parsed.Year(), parsed.Month()
		}
		from, to = monthWindow(year, month, loc)
	}

	var serviceID uint
	if raw := c.Query("service_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
			return
		}
		serviceID = uint(id)
	}

	ctx := c.Request.Context()

	if slots, hit := h.cache.Get(ctx, user.ID, serviceID, from, to); hit {
		c.JSON(http.StatusOK, gin.H{"slots": slots})
		return
	}

	slots, err := h.slotsUC.Execute(ctx, ucbooking.AvailabilityInput{
		UserID:    user.ID,
		ServiceID: serviceID,
		From:      from,
		To:        to,
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	if slots == nil {
		slots = []domain.AvailableSlot{}
	}

	h.cache.Set(ctx, user.ID, serviceID, from, to, slots)

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// AGENDAMENTO PÚBLICO
// ======================================================

type PublicBookingRequest struct {
	ServiceID     uint   `json:"service_id" binding:"required"`
	ScheduledDate string `json:"scheduled_date" binding:"required"` // RFC3339

	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`

	ClientAddress string `json:"client_address"`
	ClientCity    string `json:"client_city"`
	ClientState   string `json:"client_state"`
	ClientType    string `json:"client_type"`

	Description string `json:"description"`
}

type publicBookingResponse struct {
	Reference     string `json:"reference"`
	ScheduledDate string `json:"scheduled_date"`
	ServiceName   string `json:"service_name"`
	Status        string `json:"status"`
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	user, ok := h.technicianBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_required_fields", "Nome, e-mail e telefone são obrigatórios.")
		return
	}

	ctx := c.Request.Context()

	ticket, err := h.createUC.Execute(ctx, ucbooking.CreateBookingInput{
		UserID:        user.ID,
		ServiceID:     req.ServiceID,
		ScheduledDate: req.ScheduledDate,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		ClientCity:    req.ClientCity,
		ClientState:   req.ClientState,
		ClientType:    req.ClientType,
		Description:   req.Description,
		Source:        "public",
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	h.cache.Invalidate(ctx, user.ID)

	var service models.Service
	serviceName := ""
	if err := h.db.First(&service, ticket.ServiceID).Error; err == nil {
		serviceName = service.Name
	}

	c.JSON(http.StatusCreated, publicBookingResponse{
		Reference:     ticket.Reference,
		ScheduledDate: ticket.StartTime.Format(time.RFC3339),
		ServiceName:   serviceName,
		Status:        ticket.Status,
	})
}
