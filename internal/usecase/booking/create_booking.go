package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chamadospro/field-scheduler/internal/audit"
	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/models"
	"github.com/chamadospro/field-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	ServiceID uint

	// RFC3339, deve bater com o datetime de um slot disponível
	ScheduledDate string

	ClientName  string
	ClientEmail string
	ClientPhone string

	ClientAddress string
	ClientCity    string
	ClientState   string
	ClientType    string

	Description string

	// public (página de agendamento) ou private
	Source string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	busy  domain.BusyProvider
	audit *audit.Dispatcher

	now func(tz string) time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	busyProvider domain.BusyProvider,
	dispatcher *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		busy:  busyProvider,
		audit: dispatcher,
		now:   timezone.NowIn,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Ticket, error) {

	if err := validateClientFields(&in); err != nil {
		return nil, err
	}

	tech, err := uc.repo.GetTechnicianByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.UserID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if in.Source == "public" && !service.PublicBooking {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := timezone.Location(tech.Timezone)

	start, err := time.Parse(time.RFC3339, in.ScheduledDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	start = start.In(loc)

	settings, err := uc.repo.GetScheduleSettings(ctx, in.UserID)
	if err != nil {
		settings = nil
	}

	hours, err := uc.repo.ListWorkingHours(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	sched := domain.BuildSchedule(settings, hours, service.DurationHours, loc)

	now := uc.now(tech.Timezone)
	if start.Before(now.Add(sched.LeadTime)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	tickets, err := uc.repo.ListTicketsForPeriod(
		ctx,
		in.UserID,
		start.Add(-conflictLookaround),
		start.Add(conflictLookaround),
	)
	if err != nil {
		return nil, err
	}

	busy := domain.BusyFromTickets(tickets, sched.Buffer, sched.Travel)

	if uc.busy != nil {
		external, err := uc.busy.BusyIntervals(
			ctx,
			in.UserID,
			start.Add(-conflictLookaround),
			start.Add(conflictLookaround),
		)
		if err == nil {
			busy = append(busy, external...)
		}
	}

	if !domain.SlotAvailable(sched, busy, start, now) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	client, err := uc.repo.GetOrCreateClient(ctx, in.UserID, domain.ClientInput{
		Type:    in.ClientType,
		Name:    in.ClientName,
		Email:   in.ClientEmail,
		Phone:   in.ClientPhone,
		Address: in.ClientAddress,
		City:    in.ClientCity,
		State:   in.ClientState,
	})
	if err != nil {
		return nil, err
	}

	end := start.Add(sched.Duration)

	// recheck no momento da escrita: outro visitante pode ter levado o slot
	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.UserID,
		start,
		end,
		sched.Buffer+sched.Travel,
	); err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = "private"
	}

	t := &models.Ticket{
		Reference:         uuid.NewString(),
		UserID:            in.UserID,
		ClientID:          client.ID,
		ServiceID:         service.ID,
		StartTime:         start,
		EndTime:           end,
		Status:            string(domain.InitialStatus()),
		Description:       strings.TrimSpace(in.Description),
		BufferTimeMinutes: int(sched.Buffer / time.Minute),
		TravelTimeMinutes: int(sched.Travel / time.Minute),
		Source:            source,
	}

	if err := uc.repo.CreateTicket(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "ticket_created",
		Entity:   "ticket",
		EntityID: &t.ID,
	})

	return t, nil
}

func validateClientFields(in *CreateBookingInput) error {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientEmail = strings.TrimSpace(in.ClientEmail)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientState = strings.ToUpper(strings.TrimSpace(in.ClientState))

	if in.ClientName == "" || in.ClientEmail == "" || in.ClientPhone == "" {
		return httperr.ErrBusiness("missing_required_fields")
	}

	if len(in.ClientState) > 2 {
		return httperr.ErrBusiness("invalid_client_state")
	}

	switch in.ClientType {
	case "":
		in.ClientType = "PF"
	case "PF", "PJ":
	default:
		return httperr.ErrBusiness("invalid_client_type")
	}

	return nil
}
