package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client consome a API pública de agendamento. A busca de slots é
// cacheada por (slug, serviço, período) com TTL configurável; TTL zero
// desliga o cache e toda chamada vai à rede.
type Client struct {
	baseURL    string
	httpClient *http.Client

	cacheTTL time.Duration

	mu    sync.Mutex
	cache map[string]slotCacheEntry
}

type slotCacheEntry struct {
	slots     []AvailableSlot
	fetchedAt time.Time
}

func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cacheTTL: cacheTTL,
		cache:    make(map[string]slotCacheEntry),
	}
}

// ======================================================
// SLOTS
// ======================================================

// AvailableSlots busca a grade de horários livres de um técnico para
// um serviço num período [start, end] (dias inclusivos). Em caso de
// erro devolve sempre uma lista vazia junto do erro, para a camada de
// UI distinguir "falhou" de "sem horários".
func (c *Client) AvailableSlots(
	ctx context.Context,
	slug string,
	serviceID uint,
	start, end time.Time,
) ([]AvailableSlot, error) {

	if slug == "" || serviceID == 0 {
		return []AvailableSlot{}, fmt.Errorf("%w: slug e serviço são obrigatórios", ErrInvalidInput)
	}
	if end.Before(start) {
		return []AvailableSlot{}, fmt.Errorf("%w: período invertido", ErrInvalidInput)
	}

	key := fmt.Sprintf("%s|%d|%s|%s",
		slug,
		serviceID,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)

	if slots, ok := c.cachedSlots(key); ok {
		return slots, nil
	}

	q := url.Values{}
	q.Set("service_id", fmt.Sprintf("%d", serviceID))
	q.Set("start", start.Format("2006-01-02"))
	q.Set("end", end.Format("2006-01-02"))

	path := fmt.Sprintf("/api/public/%s/availability?%s", url.PathEscape(slug), q.Encode())

	var payload struct {
		Slots []AvailableSlot `json:"slots"`
	}
	if err := c.get(ctx, path, &payload); err != nil {
		return []AvailableSlot{}, err
	}

	if payload.Slots == nil {
		payload.Slots = []AvailableSlot{}
	}

	c.storeSlots(key, payload.Slots)

	return payload.Slots, nil
}

func (c *Client) cachedSlots(key string) ([]AvailableSlot, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok || time.Since(entry.fetchedAt) > c.cacheTTL {
		return nil, false
	}

	return entry.slots, true
}

func (c *Client) storeSlots(key string, slots []AvailableSlot) {
	if c.cacheTTL <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = slotCacheEntry{slots: slots, fetchedAt: time.Now()}
}

// InvalidateSlots descarta todo slot cacheado. Usado depois de um
// agendamento aceito ou de um conflito de horário, para a próxima
// busca refletir a agenda real.
func (c *Client) InvalidateSlots() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]slotCacheEntry)
}

// ======================================================
// SERVIÇO / TÉCNICO
// ======================================================

func (c *Client) Service(ctx context.Context, slug string, serviceID uint) (*Service, error) {
	if slug == "" || serviceID == 0 {
		return nil, fmt.Errorf("%w: slug e serviço são obrigatórios", ErrInvalidInput)
	}

	var service Service
	path := fmt.Sprintf("/api/public/%s/services/%d", url.PathEscape(slug), serviceID)
	if err := c.get(ctx, path, &service); err != nil {
		return nil, err
	}

	return &service, nil
}

func (c *Client) Technician(ctx context.Context, slug string) (*Technician, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug é obrigatório", ErrInvalidInput)
	}

	var tech Technician
	path := fmt.Sprintf("/api/public/%s/technician", url.PathEscape(slug))
	if err := c.get(ctx, path, &tech); err != nil {
		return nil, err
	}

	return &tech, nil
}

// ======================================================
// AGENDAMENTO
// ======================================================

// CreateBooking envia um BookingRequest. Rejeições de negócio voltam
// como *APIError (Code/Message do servidor); falhas de transporte como
// ErrUnavailable ou ErrTimeout.
func (c *Client) CreateBooking(
	ctx context.Context,
	slug string,
	req BookingRequest,
) (*BookingConfirmation, error) {

	if slug == "" {
		return nil, fmt.Errorf("%w: slug é obrigatório", ErrInvalidInput)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	path := fmt.Sprintf("/api/public/%s/bookings", url.PathEscape(slug))

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}

	var conf BookingConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return nil, fmt.Errorf("%w: resposta ilegível: %v", ErrUnavailable, err)
	}

	c.InvalidateSlots()

	return &conf, nil
}

// ======================================================
// HTTP
// ======================================================

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// segue
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: resposta ilegível: %v", ErrUnavailable, err)
	}

	return nil
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		if apiErr.Code == "" {
			apiErr.Code = "unexpected_error"
		}
		apiErr.Message = fmt.Sprintf("resposta inesperada do servidor (%d)", resp.StatusCode)
	}

	return apiErr
}
