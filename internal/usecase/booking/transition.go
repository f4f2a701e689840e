package booking

import (
	"context"
	"time"

	"github.com/chamadospro/field-scheduler/internal/audit"
	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/models"
	"github.com/chamadospro/field-scheduler/internal/timezone"
)

// TransitionTicket cobre as mudanças de estado simples do chamado:
// check-in (start), conclusão (complete) e no-show.
type TransitionTicket struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionTicket(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
) *TransitionTicket {
	return &TransitionTicket{
		repo:  repo,
		audit: dispatcher,
	}
}

func (uc *TransitionTicket) apply(
	ctx context.Context,
	userID uint,
	ticketID uint,
	action string,
	fn func(*models.Ticket, time.Time) error,
) (*models.Ticket, error) {

	tech, err := uc.repo.GetTechnicianByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	t, err := uc.repo.GetTicketForTechnician(ctx, ticketID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("ticket_not_found")
	}

	now := timezone.NowIn(tech.Timezone)
	if err := fn(t, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateTicket(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		ActorID:  &userID,
		Action:   action,
		Entity:   "ticket",
		EntityID: &t.ID,
	})

	return t, nil
}

func (uc *TransitionTicket) Start(
	ctx context.Context,
	userID uint,
	ticketID uint,
) (*models.Ticket, error) {
	return uc.apply(ctx, userID, ticketID, "ticket_started", domain.Start)
}

func (uc *TransitionTicket) Complete(
	ctx context.Context,
	userID uint,
	ticketID uint,
) (*models.Ticket, error) {
	return uc.apply(ctx, userID, ticketID, "ticket_completed", domain.Complete)
}

func (uc *TransitionTicket) MarkNoShow(
	ctx context.Context,
	userID uint,
	ticketID uint,
) (*models.Ticket, error) {
	return uc.apply(ctx, userID, ticketID, "ticket_no_show", domain.MarkNoShow)
}
