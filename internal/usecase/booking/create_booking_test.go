package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamadospro/field-scheduler/internal/httperr"
	"github.com/chamadospro/field-scheduler/internal/models"
)

func validInput(start time.Time) CreateBookingInput {
	return CreateBookingInput{
		UserID:        1,
		ServiceID:     10,
		ScheduledDate: start.Format(time.RFC3339),
		ClientName:    "Jane Roe",
		ClientEmail:   "jane@example.com",
		ClientPhone:   "11999999999",
		Source:        "public",
	}
}

func newCreateUC(repo *fakeRepo, now time.Time) *CreateBooking {
	uc := NewCreateBooking(repo, nil, nil)
	uc.now = fixedNow(now)
	return uc
}

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	monday := mondaySP()

	uc := newCreateUC(repo, monday.AddDate(0, 0, -2))

	start := monday.Add(10 * time.Hour)
	ticket, err := uc.Execute(context.Background(), validInput(start))

	require.NoError(t, err)
	require.NotNil(t, ticket)

	assert.NotEmpty(t, ticket.Reference)
	assert.Equal(t, uint(1), ticket.UserID)
	assert.Equal(t, uint(10), ticket.ServiceID)
	assert.True(t, ticket.StartTime.Equal(start))
	assert.True(t, ticket.EndTime.Equal(start.Add(time.Hour)))
	assert.Equal(t, "scheduled", ticket.Status)
	assert.Equal(t, "public", ticket.Source)
	assert.Equal(t, 15, ticket.BufferTimeMinutes)
	assert.Equal(t, 30, ticket.TravelTimeMinutes)

	require.Len(t, repo.created, 1)
	require.Len(t, repo.clients, 1)
	assert.Equal(t, "PF", repo.clients[0].Type)
}

func TestCreateBooking_RequiredFields(t *testing.T) {
	repo := newFakeRepo()
	monday := mondaySP()
	uc := newCreateUC(repo, monday.AddDate(0, 0, -2))

	start := monday.Add(10 * time.Hour)

	for _, blank := range []func(*CreateBookingInput){
		func(in *CreateBookingInput) { in.ClientName = "   " },
		func(in *CreateBookingInput) { in.ClientEmail = "" },
		func(in *CreateBookingInput) { in.ClientPhone = "\t" },
	} {
		in := validInput(start)
		blank(&in)

		_, err := uc.Execute(context.Background(), in)
		assert.Equal(t, "missing_required_fields", businessCode(err))
	}

	assert.Empty(t, repo.created)
}

func TestCreateBooking_ClientTypeAndState(t *testing.T) {
	repo := newFakeRepo()
	monday := mondaySP()
	uc := newCreateUC(repo, monday.AddDate(0, 0, -2))

	start := monday.Add(10 * time.Hour)

	in := validInput(start)
	in.ClientType = "XX"
	_, err := uc.Execute(context.Background(), in)
	assert.Equal(t, "invalid_client_type", businessCode(err))

	in = validInput(start)
	in.ClientState = "sao paulo"
	_, err = uc.Execute(context.Background(), in)
	assert.Equal(t, "invalid_client_state", businessCode(err))

	// UF minúscula é normalizada
	in = validInput(start)
	in.ClientState = "sp"
	in.ClientType = "PJ"
	ticket, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.NotNil(t, ticket)
	assert.Equal(t, "SP", repo.clients[len(repo.clients)-1].State)
	assert.Equal(t, "PJ", repo.clients[len(repo.clients)-1].Type)
}

func TestCreateBooking_InvalidDate(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, mondaySP())

	in := validInput(mondaySP())
	in.ScheduledDate = "2024-06-10 10:00"

	_, err := uc.Execute(context.Background(), in)
	assert.Equal(t, "invalid_date", businessCode(err))
}

func TestCreateBooking_TooSoon(t *testing.T) {
	repo := newFakeRepo()
	monday := mondaySP()

	// pedido às 09:50 para as 10:00, antecedência mínima de 30min
	uc := newCreateUC(repo, monday.Add(9*time.Hour+50*time.Minute))

	_, err := uc.Execute(context.Background(), validInput(monday.Add(10*time.Hour)))
	assert.Equal(t, "too_soon", businessCode(err))
}

func TestCreateBooking_SlotTakenByExistingTicket(t *testing.T) {
	repo := newFakeRepo()
	monday := mondaySP()

	repo.tickets = []models.Ticket{{
		ID:        50,
		UserID:    1,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(11 * time.Hour),
		Status:    "scheduled",
	}}

	uc := newCreateUC(repo, monday.AddDate(0, 0, -2))

	_, err := uc.Execute(context.Background(), validInput(monday.Add(10*time.Hour)))
	assert.Equal(t, "slot_unavailable", businessCode(err))
	assert.Empty(t, repo.created)
}

func TestCreateBooking_WriteTimeConflict(t *testing.T) {
	repo := newFakeRepo()
	monday := mondaySP()

	// o recheck de escrita perde a corrida para outro visitante
	repo.conflictErr = httperr.ErrBusiness("slot_unavailable")

	uc := newCreateUC(repo, monday.AddDate(0, 0, -2))

	_, err := uc.Execute(context.Background(), validInput(monday.Add(10*time.Hour)))
	assert.Equal(t, "slot_unavailable", businessCode(err))
	assert.Empty(t, repo.created)
}

func TestCreateBooking_PublicRequiresPublicService(t *testing.T) {
	repo := newFakeRepo()
	repo.service.PublicBooking = false
	monday := mondaySP()

	uc := newCreateUC(repo, monday.AddDate(0, 0, -2))

	_, err := uc.Execute(context.Background(), validInput(monday.Add(10*time.Hour)))
	assert.Equal(t, "service_not_found", businessCode(err))

	// pela API privada o mesmo serviço continua agendável
	in := validInput(monday.Add(10 * time.Hour))
	in.Source = "private"
	ticket, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "private", ticket.Source)
}

func TestCreateBooking_ReusesExistingClient(t *testing.T) {
	repo := newFakeRepo()
	repo.clients = []models.Client{{
		ID:     5,
		UserID: 1,
		Name:   "Jane Roe",
		Email:  "jane@example.com",
		Phone:  "11999999999",
	}}

	monday := mondaySP()
	uc := newCreateUC(repo, monday.AddDate(0, 0, -2))

	ticket, err := uc.Execute(context.Background(), validInput(monday.Add(10*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, uint(5), ticket.ClientID)
	assert.Len(t, repo.clients, 1)
}
