package bookingflow

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/chamadospro/field-scheduler/internal/bookingclient"
)

// ======================================================
// ESTADOS
// ======================================================

type State string

const (
	// escolhendo data e horário
	StateDate State = "date"
	// preenchendo dados de contato
	StateInfo State = "info"
	// agendamento aceito pelo servidor (terminal)
	StateSuccess State = "success"
)

var (
	ErrNoDateSelected = errors.New("bookingflow: nenhuma data selecionada")
	ErrNoSlotSelected = errors.New("bookingflow: nenhum horário selecionado")
	ErrWrongState     = errors.New("bookingflow: transição inválida")
	ErrSubmitInFlight = errors.New("bookingflow: envio já em andamento")
	ErrAlreadyBooked  = errors.New("bookingflow: agendamento já concluído")
)

// SlotsAPI é o pedaço do client público que o fluxo consome.
type SlotsAPI interface {
	AvailableSlots(ctx context.Context, slug string, serviceID uint, start, end time.Time) ([]bookingclient.AvailableSlot, error)
	CreateBooking(ctx context.Context, slug string, req bookingclient.BookingRequest) (*bookingclient.BookingConfirmation, error)
	InvalidateSlots()
}

// ======================================================
// CONFIG
// ======================================================

type Config struct {
	Slug      string
	ServiceID uint

	Location *time.Location

	// códigos de erro do servidor que significam "o horário acabou de
	// ser ocupado"; ao recebê-los o fluxo limpa a seleção, força nova
	// busca e volta ao passo de data
	SlotUnavailableCodes map[string]bool

	// relógio injetável (testes)
	Now func() time.Time
}

// ======================================================
// FLOW
// ======================================================

// Flow é a máquina de estados de uma sessão de agendamento público:
// date → info → success. Tudo vive em memória, uma instância por
// visitante.
type Flow struct {
	api SlotsAPI
	cfg Config

	mu sync.Mutex

	state State

	slots      []bookingclient.AvailableSlot
	loading    bool
	generation uint64

	rangeStart time.Time
	rangeEnd   time.Time

	selectedDate string
	selectedSlot *bookingclient.AvailableSlot

	form ClientInfo

	submitting bool
	confirmed  *bookingclient.BookingConfirmation
}

func New(api SlotsAPI, cfg Config) *Flow {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SlotUnavailableCodes == nil {
		cfg.SlotUnavailableCodes = map[string]bool{"slot_unavailable": true}
	}

	return &Flow{
		api:   api,
		cfg:   cfg,
		state: StateDate,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Flow) Confirmation() *bookingclient.BookingConfirmation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmed
}

// ======================================================
// BUSCA DE SLOTS
// ======================================================

// LoadMonth busca a disponibilidade para o mês visível (mês atual +
// mês seguinte). Chamadas concorrentes são resolvidas por geração: só
// a resposta da última busca despachada é aplicada; respostas atrasadas
// de meses anteriores são descartadas.
func (f *Flow) LoadMonth(ctx context.Context, year int, month time.Month) error {
	start, end := MonthWindow(year, month, f.cfg.Location)

	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.loading = true
	f.rangeStart = start
	f.rangeEnd = end
	f.mu.Unlock()

	slots, err := f.api.AvailableSlots(ctx, f.cfg.Slug, f.cfg.ServiceID, start, end)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		// outra busca foi despachada depois desta; resposta velha
		return nil
	}

	f.loading = false

	if err != nil {
		f.slots = nil
		return err
	}

	f.slots = slots
	return nil
}

// DatesWithSlots devolve o conjunto de dias (YYYY-MM-DD) com ao menos
// um horário livre na última busca aplicada.
func (f *Flow) DatesWithSlots() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]bool, len(f.slots))
	for _, s := range f.slots {
		out[s.Date] = true
	}
	return out
}

// DateSelectable aplica a regra do calendário sobre o estado atual.
func (f *Flow) DateSelectable(d time.Time) bool {
	f.mu.Lock()
	loading := f.loading
	rangeEnd := f.rangeEnd
	f.mu.Unlock()

	return DateSelectable(d, f.cfg.Now().In(f.cfg.Location), rangeEnd, loading, f.DatesWithSlots())
}

// ======================================================
// SELEÇÃO DE DATA E HORÁRIO
// ======================================================

// SelectDate escolhe um dia e descarta qualquer horário já escolhido,
// forçando nova seleção dentro do novo dia.
func (f *Flow) SelectDate(d time.Time) error {
	if !f.DateSelectable(d) {
		return ErrNoDateSelected
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateDate {
		return ErrWrongState
	}

	f.selectedDate = dayOf(d, f.cfg.Location).Format(dateLayout)
	f.selectedSlot = nil
	return nil
}

// TimesForSelectedDate lista, em ordem crescente, os horários livres
// do dia escolhido. Sem data escolhida devolve ErrNoDateSelected, que
// a UI distingue de "dia sem horários" (lista vazia, erro nil).
func (f *Flow) TimesForSelectedDate() ([]bookingclient.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.selectedDate == "" {
		return nil, ErrNoDateSelected
	}

	out := make([]bookingclient.AvailableSlot, 0)
	for _, s := range f.slots {
		if s.Date == f.selectedDate {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	return out, nil
}

// SelectTime escolhe um horário do dia selecionado (seleção única,
// substitui escolha anterior).
func (f *Flow) SelectTime(timeOfDay string) error {
	slots, err := f.TimesForSelectedDate()
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range slots {
		if slots[i].Time == timeOfDay {
			f.selectedSlot = &slots[i]
			return nil
		}
	}

	return ErrNoSlotSelected
}

func (f *Flow) SelectedSlot() *bookingclient.AvailableSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectedSlot
}

// ======================================================
// NAVEGAÇÃO ENTRE PASSOS
// ======================================================

// Proceed avança date → info; exige um horário escolhido.
func (f *Flow) Proceed() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateDate {
		return ErrWrongState
	}
	if f.selectedSlot == nil {
		return ErrNoSlotSelected
	}

	f.state = StateInfo
	return nil
}

// Back volta info → date sem descartar o formulário.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateInfo {
		return ErrWrongState
	}

	f.state = StateDate
	return nil
}

// Form devolve uma cópia do formulário atual.
func (f *Flow) Form() ClientInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// SetForm substitui o formulário (os campos persistem entre idas e
// vindas dos passos).
func (f *Flow) SetForm(info ClientInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = info
}

// ======================================================
// ENVIO
// ======================================================

// Submit valida o formulário e envia o BookingRequest uma única vez.
// Regras:
//   - só no passo info, com horário escolhido;
//   - validação local bloqueia o envio (FieldErrors);
//   - um envio em andamento ignora novos gatilhos (ErrSubmitInFlight);
//   - depois de aceito, novos envios exigem novo fluxo (ErrAlreadyBooked);
//   - rejeição por horário ocupado limpa a seleção, invalida o cache,
//     rebusca o período e volta ao passo date;
//   - qualquer outra falha mantém o passo info com o formulário intacto.
func (f *Flow) Submit(ctx context.Context) (*bookingclient.BookingConfirmation, error) {
	f.mu.Lock()

	if f.confirmed != nil {
		f.mu.Unlock()
		return nil, ErrAlreadyBooked
	}
	if f.state != StateInfo {
		f.mu.Unlock()
		return nil, ErrWrongState
	}
	if f.selectedSlot == nil {
		f.mu.Unlock()
		return nil, ErrNoSlotSelected
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	form := f.form
	if err := form.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.form = form

	slot := *f.selectedSlot
	f.submitting = true
	f.mu.Unlock()

	conf, err := f.api.CreateBooking(ctx, f.cfg.Slug, bookingclient.BookingRequest{
		ServiceID:     f.cfg.ServiceID,
		ScheduledDate: slot.Datetime,
		ClientName:    form.Name,
		ClientEmail:   form.Email,
		ClientPhone:   form.Phone,
		ClientAddress: form.Address,
		ClientCity:    form.City,
		ClientState:   form.State,
		ClientType:    form.Type,
		Description:   form.Description,
	})

	f.mu.Lock()
	f.submitting = false

	if err != nil {
		if f.slotTaken(err) {
			f.selectedSlot = nil
			f.state = StateDate
			f.mu.Unlock()

			f.api.InvalidateSlots()
			f.refetchCurrentRange(ctx)
			return nil, err
		}

		// permanece em info, formulário intacto
		f.mu.Unlock()
		return nil, err
	}

	f.confirmed = conf
	f.state = StateSuccess
	f.mu.Unlock()

	return conf, nil
}

func (f *Flow) slotTaken(err error) bool {
	var apiErr *bookingclient.APIError
	if errors.As(err, &apiErr) {
		return f.cfg.SlotUnavailableCodes[apiErr.Code]
	}
	return false
}

func (f *Flow) refetchCurrentRange(ctx context.Context) {
	f.mu.Lock()
	start := f.rangeStart
	f.mu.Unlock()

	if start.IsZero() {
		return
	}

	// melhor esforço; o erro já mostrado ao visitante é o do envio
	_ = f.LoadMonth(ctx, start.Year(), start.Month())
}
