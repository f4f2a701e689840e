package booking

import (
	"context"

	"github.com/chamadospro/field-scheduler/internal/audit"
	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/models"
	"github.com/chamadospro/field-scheduler/internal/timezone"
)

type CancelTicket struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelTicket(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
) *CancelTicket {
	return &CancelTicket{
		repo:  repo,
		audit: dispatcher,
	}
}

func (uc *CancelTicket) Execute(
	ctx context.Context,
	userID uint,
	ticketID uint,
	reason string,
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
	if err := domain.Cancel(t, now, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateTicket(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		ActorID:  &userID,
		Action:   "ticket_cancelled",
		Entity:   "ticket",
		EntityID: &t.ID,
	})

	return t, nil
}
