package booking

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultSlotIntervalMinutes = 30
)

// AvailableSlot é um horário livre na agenda do técnico.
// Datetime (RFC3339 no fuso do técnico) identifica o slot dentro
// de uma janela de busca.
type AvailableSlot struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Datetime string `json:"datetime"`
}

// Busy é um intervalo ocupado. Buffer e Travel ampliam a janela
// protegida em volta do intervalo (pós-atendimento e deslocamento).
type Busy struct {
	Start  time.Time
	End    time.Time
	Buffer time.Duration
	Travel time.Duration
}

func (b Busy) protectedStart() time.Time {
	return b.Start.Add(-(b.Buffer + b.Travel))
}

func (b Busy) protectedEnd() time.Time {
	return b.End.Add(b.Buffer + b.Travel)
}

type DaySchedule struct {
	Enabled bool

	StartMinutes int
	EndMinutes   int

	BreakEnabled      bool
	BreakStartMinutes int
	BreakEndMinutes   int
}

// Schedule reúne tudo que o cálculo de disponibilidade precisa:
// expediente por dia da semana, antecedência mínima, janelas de
// proteção e a duração do serviço sendo agendado.
type Schedule struct {
	Days [7]DaySchedule

	LeadTime     time.Duration
	Buffer       time.Duration
	Travel       time.Duration
	SlotInterval time.Duration
	Duration     time.Duration

	Location *time.Location
}

func (s Schedule) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func (s Schedule) intervalMinutes() int {
	if s.SlotInterval > 0 {
		return int(s.SlotInterval / time.Minute)
	}
	return DefaultSlotIntervalMinutes
}

// AvailableSlots calcula a grade de horários livres entre from e to.
// Um slot entra na grade quando:
//   - o dia está habilitado no expediente;
//   - começa depois de now + LeadTime;
//   - termina dentro do expediente do dia;
//   - não cruza a pausa;
//   - sua janela protegida (slot ± Buffer+Travel) não sobrepõe a
//     janela protegida de nenhum intervalo ocupado.
func AvailableSlots(sched Schedule, busy []Busy, from, to, now time.Time) []AvailableSlot {
	loc := sched.location()

	durMin := int(sched.Duration / time.Minute)
	if durMin <= 0 {
		return []AvailableSlot{}
	}
	stepMin := sched.intervalMinutes()

	minStart := now.Add(sched.LeadTime)

	fromLoc := from.In(loc)
	toLoc := to.In(loc)

	day := time.Date(fromLoc.Year(), fromLoc.Month(), fromLoc.Day(), 0, 0, 0, 0, loc)
	slots := []AvailableSlot{}

	for !day.After(toLoc) {
		ds := sched.Days[int(day.Weekday())]
		if !ds.Enabled {
			day = day.AddDate(0, 0, 1)
			continue
		}

		for m := ds.StartMinutes; m+durMin <= ds.EndMinutes; m += stepMin {
			slotStart := time.Date(
				day.Year(), day.Month(), day.Day(),
				m/60, m%60, 0, 0,
				loc,
			)

			if slotStart.Before(minStart) {
				continue
			}

			slotEnd := slotStart.Add(sched.Duration)

			if ds.BreakEnabled && m < ds.BreakEndMinutes && m+durMin > ds.BreakStartMinutes {
				continue
			}

			if hasConflict(sched, slotStart, slotEnd, busy) {
				continue
			}

			slots = append(slots, AvailableSlot{
				Date:     slotStart.Format(DateLayout),
				Time:     slotStart.Format(TimeLayout),
				Datetime: slotStart.Format(time.RFC3339),
			})
		}

		day = day.AddDate(0, 0, 1)
	}

	return slots
}

// SlotAvailable confere se um início específico está na grade
// calculada para o dia dele. Usado no recheck da criação de chamado.
func SlotAvailable(sched Schedule, busy []Busy, start, now time.Time) bool {
	loc := sched.location()
	startLoc := start.In(loc)

	dayStart := time.Date(startLoc.Year(), startLoc.Month(), startLoc.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	want := startLoc.Format(time.RFC3339)
	for _, slot := range AvailableSlots(sched, busy, dayStart, dayEnd, now) {
		if slot.Datetime == want {
			return true
		}
	}
	return false
}

func hasConflict(sched Schedule, slotStart, slotEnd time.Time, busy []Busy) bool {
	protStart := slotStart.Add(-(sched.Buffer + sched.Travel))
	protEnd := slotEnd.Add(sched.Buffer + sched.Travel)

	for _, b := range busy {
		if protStart.Before(b.protectedEnd()) && protEnd.After(b.protectedStart()) {
			return true
		}
	}
	return false
}
