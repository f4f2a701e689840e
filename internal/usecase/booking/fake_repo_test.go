package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/models"
)

// fakeRepo guarda tudo em memória. Cada campo pode ser sobrescrito
// pelo teste antes da chamada.
type fakeRepo struct {
	user     *models.User
	service  *models.Service
	settings *models.ScheduleSettings
	hours    []models.WorkingHours
	tickets  []models.Ticket
	clients  []models.Client

	created []*models.Ticket
	updated []*models.Ticket

	conflictErr error
	nextID      uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		user: &models.User{
			ID:         1,
			Name:       "Carlos Técnico",
			PublicSlug: "acme",
			Timezone:   "America/Sao_Paulo",
		},
		service: &models.Service{
			ID:            10,
			UserID:        1,
			Name:          "Instalação elétrica",
			Price:         "150.00",
			DurationHours: 1,
			Active:        true,
			PublicBooking: true,
		},
		settings: &models.ScheduleSettings{
			UserID:               1,
			LeadTimeMinutes:      30,
			BufferMinutes:        15,
			TravelMinutes:        30,
			DefaultDurationHours: 3,
			SlotIntervalMinutes:  30,
		},
		nextID: 100,
	}
}

func (r *fakeRepo) GetTechnicianBySlug(_ context.Context, slug string) (*models.User, error) {
	if r.user != nil && r.user.PublicSlug == slug {
		return r.user, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) GetTechnicianByID(_ context.Context, id uint) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) GetService(_ context.Context, userID, serviceID uint) (*models.Service, error) {
	if r.service != nil && r.service.UserID == userID && r.service.ID == serviceID {
		return r.service, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) GetScheduleSettings(_ context.Context, userID uint) (*models.ScheduleSettings, error) {
	if r.settings == nil {
		return nil, errors.New("not found")
	}
	return r.settings, nil
}

func (r *fakeRepo) ListWorkingHours(_ context.Context, userID uint) ([]models.WorkingHours, error) {
	return r.hours, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, userID uint, in domain.ClientInput) (*models.Client, error) {
	for i := range r.clients {
		c := &r.clients[i]
		if c.UserID == userID && (c.Email == in.Email || c.Phone == in.Phone) {
			return c, nil
		}
	}

	r.nextID++
	c := models.Client{
		ID:     r.nextID,
		UserID: userID,
		Type:   in.Type,
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		State:  in.State,
	}
	r.clients = append(r.clients, c)
	return &r.clients[len(r.clients)-1], nil
}

func (r *fakeRepo) CreateTicket(_ context.Context, t *models.Ticket) error {
	r.nextID++
	t.ID = r.nextID
	r.created = append(r.created, t)
	r.tickets = append(r.tickets, *t)
	return nil
}

func (r *fakeRepo) AssertNoTimeConflict(_ context.Context, userID uint, start, end time.Time, padding time.Duration) error {
	if r.conflictErr != nil {
		return r.conflictErr
	}
	return nil
}

func (r *fakeRepo) GetTicketForTechnician(_ context.Context, ticketID, userID uint) (*models.Ticket, error) {
	for i := range r.tickets {
		if r.tickets[i].ID == ticketID && r.tickets[i].UserID == userID {
			return &r.tickets[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) UpdateTicket(_ context.Context, t *models.Ticket) error {
	r.updated = append(r.updated, t)
	for i := range r.tickets {
		if r.tickets[i].ID == t.ID {
			r.tickets[i] = *t
		}
	}
	return nil
}

func (r *fakeRepo) ListTicketsForPeriod(_ context.Context, userID uint, start, end time.Time) ([]models.Ticket, error) {
	out := []models.Ticket{}
	for _, t := range r.tickets {
		if t.UserID == userID && t.StartTime.Before(end) && t.EndTime.After(start) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListTicketsWithDetails(ctx context.Context, userID uint, start, end time.Time) ([]models.Ticket, error) {
	return r.ListTicketsForPeriod(ctx, userID, start, end)
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeBusyProvider devolve intervalos fixos ou um erro.
type fakeBusyProvider struct {
	busy []domain.Busy
	err  error
}

func (p *fakeBusyProvider) BusyIntervals(_ context.Context, _ uint, _, _ time.Time) ([]domain.Busy, error) {
	return p.busy, p.err
}

func businessCode(err error) string {
	code, _ := httperr.BusinessCode(err)
	return code
}
