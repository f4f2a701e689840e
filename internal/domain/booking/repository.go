package booking

import (
	"context"
	"time"

	"github.com/chamadospro/field-scheduler/internal/models"
)

type ClientInput struct {
	Type     string
	Name     string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Document string
}

type Repository interface {
	// -------- Technician --------
	GetTechnicianBySlug(
		ctx context.Context,
		slug string,
	) (*models.User, error)

	GetTechnicianByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		userID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Schedule --------
	GetScheduleSettings(
		ctx context.Context,
		userID uint,
	) (*models.ScheduleSettings, error)

	ListWorkingHours(
		ctx context.Context,
		userID uint,
	) ([]models.WorkingHours, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		userID uint,
		in ClientInput,
	) (*models.Client, error)

	// -------- Ticket (create / conflict) --------
	CreateTicket(
		ctx context.Context,
		t *models.Ticket,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
		padding time.Duration,
	) error

	// -------- Ticket (state change) --------
	GetTicketForTechnician(
		ctx context.Context,
		ticketID uint,
		userID uint,
	) (*models.Ticket, error)

	UpdateTicket(
		ctx context.Context,
		t *models.Ticket,
	) error

	// -------- Availability --------
	ListTicketsForPeriod(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
	) ([]models.Ticket, error)

	ListTicketsWithDetails(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
	) ([]models.Ticket, error)
}

// BusyProvider fornece intervalos ocupados de fora do banco
// (agenda externa do técnico, ex.: Google Calendar). Pode ser nil.
type BusyProvider interface {
	BusyIntervals(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
	) ([]Busy, error)
}
