package booking

import (
	"time"

	"github.com/chamadospro/field-scheduler/internal/models"
)

const (
	defaultDayStart = "08:00"
	defaultDayEnd   = "18:00"
)

func parseMinutes(hm string) (int, bool) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// BuildSchedule monta o Schedule de um técnico a partir das
// configurações persistidas. Sem linhas de expediente cadastradas,
// vale o padrão segunda a sábado, 08:00–18:00, sem pausa
// (domingo sempre fechado).
func BuildSchedule(
	settings *models.ScheduleSettings,
	hours []models.WorkingHours,
	serviceDurationHours int,
	loc *time.Location,
) Schedule {

	sched := Schedule{Location: loc}

	if settings != nil {
		sched.LeadTime = time.Duration(settings.LeadTimeMinutes) * time.Minute
		sched.Buffer = time.Duration(settings.BufferMinutes) * time.Minute
		sched.Travel = time.Duration(settings.TravelMinutes) * time.Minute
		sched.SlotInterval = time.Duration(settings.SlotIntervalMinutes) * time.Minute

		if serviceDurationHours <= 0 {
			serviceDurationHours = settings.DefaultDurationHours
		}
	}
	if serviceDurationHours <= 0 {
		serviceDurationHours = 3
	}
	sched.Duration = time.Duration(serviceDurationHours) * time.Hour

	if len(hours) == 0 {
		start, _ := parseMinutes(defaultDayStart)
		end, _ := parseMinutes(defaultDayEnd)
		for weekday := 1; weekday <= 6; weekday++ {
			sched.Days[weekday] = DaySchedule{
				Enabled:      true,
				StartMinutes: start,
				EndMinutes:   end,
			}
		}
		return sched
	}

	for _, wh := range hours {
		if wh.Weekday < 0 || wh.Weekday > 6 {
			continue
		}

		start, okStart := parseMinutes(wh.StartTime)
		end, okEnd := parseMinutes(wh.EndTime)
		if !wh.Active || !okStart || !okEnd || end <= start {
			continue
		}

		ds := DaySchedule{
			Enabled:      true,
			StartMinutes: start,
			EndMinutes:   end,
		}

		if bs, ok := parseMinutes(wh.BreakStart); ok {
			if be, ok := parseMinutes(wh.BreakEnd); ok && be > bs {
				ds.BreakEnabled = true
				ds.BreakStartMinutes = bs
				ds.BreakEndMinutes = be
			}
		}

		sched.Days[wh.Weekday] = ds
	}

	return sched
}

// BusyFromTickets converte chamados ativos em intervalos ocupados,
// respeitando buffer/deslocamento próprios do chamado quando definidos.
func BusyFromTickets(tickets []models.Ticket, defaultBuffer, defaultTravel time.Duration) []Busy {
	busy := make([]Busy, 0, len(tickets))

	for _, t := range tickets {
		if t.Status == string(StatusCancelled) {
			continue
		}

		b := Busy{
			Start:  t.StartTime,
			End:    t.EndTime,
			Buffer: defaultBuffer,
			Travel: defaultTravel,
		}
		if t.BufferTimeMinutes > 0 {
			b.Buffer = time.Duration(t.BufferTimeMinutes) * time.Minute
		}
		if t.TravelTimeMinutes > 0 {
			b.Travel = time.Duration(t.TravelTimeMinutes) * time.Minute
		}

		busy = append(busy, b)
	}

	return busy
}
