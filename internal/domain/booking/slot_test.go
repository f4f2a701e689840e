package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var spZone = time.FixedZone("-03", -3*60*60)

// segunda-feira
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, spZone)

func testSchedule(durationHours int) Schedule {
	sched := Schedule{
		LeadTime:     30 * time.Minute,
		Buffer:       15 * time.Minute,
		Travel:       30 * time.Minute,
		SlotInterval: 30 * time.Minute,
		Duration:     time.Duration(durationHours) * time.Hour,
		Location:     spZone,
	}
	for weekday := 1; weekday <= 6; weekday++ {
		sched.Days[weekday] = DaySchedule{
			Enabled:      true,
			StartMinutes: 8 * 60,
			EndMinutes:   18 * 60,
		}
	}
	return sched
}

func slotTimes(slots []AvailableSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestAvailableSlots_FullFreeDay(t *testing.T) {
	sched := testSchedule(3)
	now := monday.AddDate(0, 0, -2)

	slots := AvailableSlots(sched, nil, monday, monday.Add(23*time.Hour), now)

	// 08:00 a 15:00 de meia em meia hora (15:00+3h = 18:00 fecha o dia)
	require.Len(t, slots, 15)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "15:00", slots[len(slots)-1].Time)

	assert.Equal(t, "2024-06-10", slots[0].Date)
	assert.Equal(t, "2024-06-10T08:00:00-03:00", slots[0].Datetime)
}

func TestAvailableSlots_SlotMustEndInsideWorkingDay(t *testing.T) {
	sched := testSchedule(3)
	now := monday.AddDate(0, 0, -2)

	slots := AvailableSlots(sched, nil, monday, monday.Add(23*time.Hour), now)

	assert.NotContains(t, slotTimes(slots), "15:30")
	assert.NotContains(t, slotTimes(slots), "16:00")
}

func TestAvailableSlots_DisabledDayYieldsNothing(t *testing.T) {
	sched := testSchedule(3)
	sunday := monday.AddDate(0, 0, -1)
	now := monday.AddDate(0, 0, -7)

	slots := AvailableSlots(sched, nil, sunday, sunday.Add(23*time.Hour), now)

	assert.Empty(t, slots)
}

func TestAvailableSlots_LeadTimeCutsSameDayMorning(t *testing.T) {
	sched := testSchedule(3)

	// 08:45 + 30min de antecedência → 09:15; primeiro slot possível 09:30
	now := monday.Add(8*time.Hour + 45*time.Minute)

	slots := AvailableSlots(sched, nil, monday, monday.Add(23*time.Hour), now)

	require.NotEmpty(t, slots)
	assert.Equal(t, "09:30", slots[0].Time)
}

func TestAvailableSlots_BreakBlocksOverlappingStarts(t *testing.T) {
	sched := testSchedule(1)
	day := sched.Days[1]
	day.BreakEnabled = true
	day.BreakStartMinutes = 12 * 60
	day.BreakEndMinutes = 13 * 60
	sched.Days[1] = day

	now := monday.AddDate(0, 0, -2)
	times := slotTimes(AvailableSlots(sched, nil, monday, monday.Add(23*time.Hour), now))

	assert.NotContains(t, times, "11:30")
	assert.NotContains(t, times, "12:00")
	assert.NotContains(t, times, "12:30")
	assert.Contains(t, times, "11:00")
	assert.Contains(t, times, "13:00")
}

func TestAvailableSlots_ProtectedWindowAroundBusy(t *testing.T) {
	sched := testSchedule(1)
	now := monday.AddDate(0, 0, -2)

	// chamado 10:00–13:00, janela protegida 09:15–13:45
	busy := []Busy{{
		Start:  monday.Add(10 * time.Hour),
		End:    monday.Add(13 * time.Hour),
		Buffer: 15 * time.Minute,
		Travel: 30 * time.Minute,
	}}

	times := slotTimes(AvailableSlots(sched, busy, monday, monday.Add(23*time.Hour), now))

	// slot de 1h tem proteção própria de 45min para cada lado
	assert.NotContains(t, times, "08:00")
	assert.NotContains(t, times, "10:00")
	assert.NotContains(t, times, "13:00")
	assert.NotContains(t, times, "14:00")
	assert.Contains(t, times, "14:30")
	assert.Contains(t, times, "15:00")
}

func TestAvailableSlots_MultiDayRangeSkipsDisabledDays(t *testing.T) {
	sched := testSchedule(3)
	now := monday.AddDate(0, 0, -7)

	saturday := monday.AddDate(0, 0, 5)
	nextMonday := monday.AddDate(0, 0, 7)

	slots := AvailableSlots(sched, nil, saturday, nextMonday.Add(23*time.Hour), now)

	dates := map[string]bool{}
	for _, s := range slots {
		dates[s.Date] = true
	}

	assert.True(t, dates["2024-06-15"])  // sábado
	assert.False(t, dates["2024-06-16"]) // domingo
	assert.True(t, dates["2024-06-17"])
}

func TestAvailableSlots_ZeroDurationYieldsNothing(t *testing.T) {
	sched := testSchedule(0)
	now := monday.AddDate(0, 0, -2)

	assert.Empty(t, AvailableSlots(sched, nil, monday, monday.Add(23*time.Hour), now))
}

func TestSlotAvailable(t *testing.T) {
	sched := testSchedule(1)
	now := monday.AddDate(0, 0, -2)

	free := monday.Add(9 * time.Hour)
	assert.True(t, SlotAvailable(sched, nil, free, now))

	busy := []Busy{{
		Start: monday.Add(9 * time.Hour),
		End:   monday.Add(10 * time.Hour),
	}}
	assert.False(t, SlotAvailable(sched, busy, free, now))

	// fora da grade (minuto quebrado)
	odd := monday.Add(9*time.Hour + 10*time.Minute)
	assert.False(t, SlotAvailable(sched, nil, odd, now))
}
