package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/models"
)

type TicketGormRepository struct {
	db *gorm.DB
}

func NewTicketGormRepository(db *gorm.DB) *TicketGormRepository {
	return &TicketGormRepository{db: db}
}

// --------------------------------------------------
// Technician
// --------------------------------------------------

func (r *TicketGormRepository) GetTechnicianBySlug(
	ctx context.Context,
	slug string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("public_slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *TicketGormRepository) GetTechnicianByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *TicketGormRepository) GetService(
	ctx context.Context,
	userID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", serviceID, userID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *TicketGormRepository) GetScheduleSettings(
	ctx context.Context,
	userID uint,
) (*models.ScheduleSettings, error) {

	var settings models.ScheduleSettings
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *TicketGormRepository) ListWorkingHours(
	ctx context.Context,
	userID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *TicketGormRepository) GetOrCreateClient(
	ctx context.Context,
	userID uint,
	in domain.ClientInput,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND (email = ? OR phone = ?)",
			userID, in.Email, in.Phone,
		).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	clientType := in.Type
	if clientType == "" {
		clientType = "PF"
	}

	client = models.Client{
		UserID:   userID,
		Type:     clientType,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		City:     in.City,
		State:    in.State,
		Document: in.Document,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Ticket
// --------------------------------------------------

func (r *TicketGormRepository) CreateTicket(
	ctx context.Context,
	t *models.Ticket,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// AssertNoTimeConflict compara janelas protegidas: o intervalo
// [start-padding, end+padding) não pode tocar nenhum chamado ativo,
// também expandido pelas proteções dele.
func (r *TicketGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	userID uint,
	start time.Time,
	end time.Time,
	padding time.Duration,
) error {

	protStart := start.Add(-padding)
	protEnd := end.Add(padding)

	// margem folgada para também pegar chamados cuja proteção própria
	// alcança a janela consultada
	const fetchMargin = 24 * time.Hour

	var candidates []models.Ticket
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status", "buffer_time_minutes", "travel_time_minutes").
		Where(
			"user_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			userID,
			[]string{"scheduled", "in_progress"},
			protEnd.Add(fetchMargin),
			protStart.Add(-fetchMargin),
		).
		Find(&candidates).Error; err != nil {
		return err
	}

	for _, t := range candidates {
		pad := time.Duration(t.BufferTimeMinutes+t.TravelTimeMinutes) * time.Minute
		if protStart.Before(t.EndTime.Add(pad)) && protEnd.After(t.StartTime.Add(-pad)) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}

	return nil
}

func (r *TicketGormRepository) GetTicketForTechnician(
	ctx context.Context,
	ticketID uint,
	userID uint,
) (*models.Ticket, error) {

	var t models.Ticket
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", ticketID, userID).
		First(&t).Error; err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TicketGormRepository) UpdateTicket(
	ctx context.Context,
	t *models.Ticket,
) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *TicketGormRepository) ListTicketsForPeriod(
	ctx context.Context,
	userID uint,
	start time.Time,
	end time.Time,
) ([]models.Ticket, error) {

	var tickets []models.Ticket
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status", "buffer_time_minutes", "travel_time_minutes").
		Where(
			"user_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			userID,
			[]string{"scheduled", "in_progress"},
			start, end,
		).
		Order("start_time ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketGormRepository) ListTicketsWithDetails(
	ctx context.Context,
	userID uint,
	start time.Time,
	end time.Time,
) ([]models.Ticket, error) {

	var tickets []models.Ticket

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"user_id = ? AND start_time >= ? AND start_time < ?",
			userID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&tickets).Error

	if err != nil {
		return nil, err
	}

	return tickets, nil
}

// Compile-time check
var _ domain.Repository = (*TicketGormRepository)(nil)
