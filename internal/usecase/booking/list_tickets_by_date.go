package booking

import (
	"context"
	"time"

	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
	"github.com/chamadospro/field-scheduler/internal/dto"
	"github.com/chamadospro/field-scheduler/internal/models"
	"github.com/chamadospro/field-scheduler/internal/timezone"
)

type ListTicketsByDate struct {
	repo domain.Repository
}

func NewListTicketsByDate(
	repo domain.Repository,
) *ListTicketsByDate {
	return &ListTicketsByDate{
		repo: repo,
	}
}

func (uc *ListTicketsByDate) Execute(
	ctx context.Context,
	userID uint,
	date time.Time,
) ([]dto.TicketListDTO, error) {

	tech, err := uc.repo.GetTechnicianByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tech.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	tickets, err := uc.repo.ListTicketsWithDetails(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(tickets), nil
}

func toListDTOs(tickets []models.Ticket) []dto.TicketListDTO {
	out := make([]dto.TicketListDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, dto.TicketListDTO{
			ID:          t.ID,
			Reference:   t.Reference,
			StartTime:   t.StartTime,
			EndTime:     t.EndTime,
			Status:      t.Status,
			ClientName:  t.Client.Name,
			ServiceName: t.Service.Name,
		})
	}
	return out
}
