package booking

import (
	"context"
	"log"
	"time"

	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/timezone"
)

// Janela extra de chamados carregados em volta do range pedido, para
// que janelas de proteção na borda do período sejam respeitadas.
const conflictLookaround = 7 * 24 * time.Hour

type AvailabilityInput struct {
	UserID    uint
	ServiceID uint
	From      time.Time
	To        time.Time
}

type GetAvailableSlots struct {
	repo domain.Repository
	busy domain.BusyProvider

	now func(tz string) time.Time
}

func NewGetAvailableSlots(
	repo domain.Repository,
	busyProvider domain.BusyProvider,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo: repo,
		busy: busyProvider,
		now:  timezone.NowIn,
	}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.AvailableSlot, error) {

	if in.To.Before(in.From) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	tech, err := uc.repo.GetTechnicianByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	durationHours := 0
	if in.ServiceID != 0 {
		service, err := uc.repo.GetService(ctx, in.UserID, in.ServiceID)
		if err != nil || !service.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		durationHours = service.DurationHours
	}

	settings, err := uc.repo.GetScheduleSettings(ctx, in.UserID)
	if err != nil {
		settings = nil
	}

	hours, err := uc.repo.ListWorkingHours(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tech.Timezone)
	sched := domain.BuildSchedule(settings, hours, durationHours, loc)

	tickets, err := uc.repo.ListTicketsForPeriod(
		ctx,
		in.UserID,
		in.From.Add(-conflictLookaround),
		in.To.Add(conflictLookaround),
	)
	if err != nil {
		return nil, err
	}

	busy := domain.BusyFromTickets(tickets, sched.Buffer, sched.Travel)

	if uc.busy != nil {
		external, err := uc.busy.BusyIntervals(ctx, in.UserID, in.From, in.To)
		if err != nil {
			// agenda externa indisponível não derruba a disponibilidade
			log.Printf("busy provider error for user %d: %v", in.UserID, err)
		} else {
			busy = append(busy, external...)
		}
	}

	now := uc.now(tech.Timezone)

	return domain.AvailableSlots(sched, busy, in.From, in.To, now), nil
}
