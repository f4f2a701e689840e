package bookingclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indica parâmetros inválidos antes de qualquer rede.
	ErrInvalidInput = errors.New("bookingclient: invalid input")

	// ErrNotFound indica slug ou serviço inexistente (404).
	ErrNotFound = errors.New("bookingclient: not found")

	// ErrUnavailable indica falha de rede ou resposta ilegível.
	ErrUnavailable = errors.New("bookingclient: service unavailable")

	// ErrTimeout indica estouro do timeout da requisição.
	ErrTimeout = errors.New("bookingclient: request timed out")
)

// APIError é um erro de negócio devolvido pelo servidor com corpo
// {error_code, message}. Message é o texto exibível ao visitante.
type APIError struct {
	Status  int
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookingclient: api error %d (%s): %s", e.Status, e.Code, e.Message)
}
