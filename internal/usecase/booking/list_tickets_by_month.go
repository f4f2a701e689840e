package booking

import (
	"context"
	"time"

	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/dto"
	"github.com/chamadospro/field-scheduler/internal/timezone"
)

type ListTicketsByMonth struct {
	repo domain.Repository
}

func NewListTicketsByMonth(
	repo domain.Repository,
) *ListTicketsByMonth {
	return &ListTicketsByMonth{
		repo: repo,
	}
}

func (uc *ListTicketsByMonth) Execute(
	ctx context.Context,
	userID uint,
	year int,
	month int,
) ([]dto.TicketListDTO, error) {

	tech, err := uc.repo.GetTechnicianByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tech.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	tickets, err := uc.repo.ListTicketsWithDetails(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(tickets), nil
}
