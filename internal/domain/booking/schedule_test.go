package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamadospro/field-scheduler/internal/models"
)

func TestBuildSchedule_DefaultsWithoutWorkingHours(t *testing.T) {
	settings := &models.ScheduleSettings{
		LeadTimeMinutes:      30,
		BufferMinutes:        15,
		TravelMinutes:        30,
		DefaultDurationHours: 3,
		SlotIntervalMinutes:  30,
	}

	sched := BuildSchedule(settings, nil, 0, spZone)

	assert.Equal(t, 30*time.Minute, sched.LeadTime)
	assert.Equal(t, 15*time.Minute, sched.Buffer)
	assert.Equal(t, 30*time.Minute, sched.Travel)
	assert.Equal(t, 3*time.Hour, sched.Duration)

	// segunda a sábado 08:00–18:00, domingo fechado
	assert.False(t, sched.Days[0].Enabled)
	for weekday := 1; weekday <= 6; weekday++ {
		require.True(t, sched.Days[weekday].Enabled, "weekday %d", weekday)
		assert.Equal(t, 8*60, sched.Days[weekday].StartMinutes)
		assert.Equal(t, 18*60, sched.Days[weekday].EndMinutes)
	}
}

func TestBuildSchedule_NilSettingsStillHasDuration(t *testing.T) {
	sched := BuildSchedule(nil, nil, 0, spZone)
	assert.Equal(t, 3*time.Hour, sched.Duration)

	sched = BuildSchedule(nil, nil, 2, spZone)
	assert.Equal(t, 2*time.Hour, sched.Duration)
}

func TestBuildSchedule_PersistedHours(t *testing.T) {
	hours := []models.WorkingHours{
		{Weekday: 2, StartTime: "09:00", EndTime: "17:00", Active: true,
			BreakStart: "12:00", BreakEnd: "13:00"},
		{Weekday: 3, StartTime: "09:00", EndTime: "17:00", Active: false},
		{Weekday: 4, StartTime: "17:00", EndTime: "09:00", Active: true}, // invertido
		{Weekday: 9, StartTime: "09:00", EndTime: "17:00", Active: true}, // fora da semana
	}

	sched := BuildSchedule(nil, hours, 1, spZone)

	tue := sched.Days[2]
	require.True(t, tue.Enabled)
	assert.Equal(t, 9*60, tue.StartMinutes)
	assert.Equal(t, 17*60, tue.EndMinutes)
	assert.True(t, tue.BreakEnabled)
	assert.Equal(t, 12*60, tue.BreakStartMinutes)
	assert.Equal(t, 13*60, tue.BreakEndMinutes)

	assert.False(t, sched.Days[3].Enabled)
	assert.False(t, sched.Days[4].Enabled)
}

func TestBusyFromTickets(t *testing.T) {
	start := monday.Add(10 * time.Hour)

	tickets := []models.Ticket{
		{StartTime: start, EndTime: start.Add(time.Hour), Status: "scheduled"},
		{StartTime: start, EndTime: start.Add(time.Hour), Status: "cancelled"},
		{
			StartTime:         start.Add(3 * time.Hour),
			EndTime:           start.Add(4 * time.Hour),
			Status:            "in_progress",
			BufferTimeMinutes: 5,
			TravelTimeMinutes: 10,
		},
	}

	busy := BusyFromTickets(tickets, 15*time.Minute, 30*time.Minute)

	require.Len(t, busy, 2)

	// padrões do técnico
	assert.Equal(t, 15*time.Minute, busy[0].Buffer)
	assert.Equal(t, 30*time.Minute, busy[0].Travel)

	// valores gravados no chamado prevalecem
	assert.Equal(t, 5*time.Minute, busy[1].Buffer)
	assert.Equal(t, 10*time.Minute, busy[1].Travel)
}
