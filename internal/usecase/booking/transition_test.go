package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamadospro/field-scheduler/internal/models"
)

func repoWithTicket(status string) *fakeRepo {
	repo := newFakeRepo()
	monday := mondaySP()

	repo.tickets = []models.Ticket{{
		ID:        50,
		UserID:    1,
		ClientID:  5,
		ServiceID: 10,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(11 * time.Hour),
		Status:    status,
	}}
	return repo
}

func TestCancelTicket(t *testing.T) {
	repo := repoWithTicket("scheduled")
	uc := NewCancelTicket(repo, nil)

	ticket, err := uc.Execute(context.Background(), 1, 50, "cliente desistiu")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", ticket.Status)
	assert.Equal(t, "cliente desistiu", ticket.CancellationReason)
	require.Len(t, repo.updated, 1)
}

func TestCancelTicket_NotFound(t *testing.T) {
	repo := repoWithTicket("scheduled")
	uc := NewCancelTicket(repo, nil)

	_, err := uc.Execute(context.Background(), 1, 999, "")
	assert.Equal(t, "ticket_not_found", businessCode(err))
}

func TestCancelTicket_WrongTechnician(t *testing.T) {
	repo := repoWithTicket("scheduled")
	repo.tickets[0].UserID = 2
	uc := NewCancelTicket(repo, nil)

	_, err := uc.Execute(context.Background(), 1, 50, "")
	assert.Equal(t, "ticket_not_found", businessCode(err))
}

func TestTransitionTicket_StartCompleteNoShow(t *testing.T) {
	repo := repoWithTicket("scheduled")
	uc := NewTransitionTicket(repo, nil)

	ticket, err := uc.Start(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", ticket.Status)

	ticket, err = uc.Complete(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, "completed", ticket.Status)

	// concluído não volta
	_, err = uc.MarkNoShow(context.Background(), 1, 50)
	assert.Equal(t, "invalid_state", businessCode(err))
}

func TestTransitionTicket_NoShowOnlyFromScheduled(t *testing.T) {
	repo := repoWithTicket("scheduled")
	uc := NewTransitionTicket(repo, nil)

	ticket, err := uc.MarkNoShow(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, "no_show", ticket.Status)

	_, err = uc.Start(context.Background(), 1, 50)
	assert.Equal(t, "invalid_state", businessCode(err))
}

func TestListTicketsByDate(t *testing.T) {
	repo := repoWithTicket("scheduled")
	monday := mondaySP()

	// chamado de outro dia fica de fora
	repo.tickets = append(repo.tickets, models.Ticket{
		ID:        51,
		UserID:    1,
		StartTime: monday.AddDate(0, 0, 1).Add(10 * time.Hour),
		EndTime:   monday.AddDate(0, 0, 1).Add(11 * time.Hour),
		Status:    "scheduled",
	})

	uc := NewListTicketsByDate(repo)
	out, err := uc.Execute(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, uint(50), out[0].ID)
}

func TestListTicketsByMonth(t *testing.T) {
	repo := repoWithTicket("scheduled")

	uc := NewListTicketsByMonth(repo)

	out, err := uc.Execute(context.Background(), 1, 2024, 6)
	require.NoError(t, err)
	require.Len(t, out, 1)

	out, err = uc.Execute(context.Background(), 1, 2024, 7)
	require.NoError(t, err)
	assert.Empty(t, out)
}
