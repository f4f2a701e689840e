package bookingflow

import (
	"fmt"
	"sort"
	"strings"
)

// ClientInfo são os dados de contato preenchidos pelo visitante no
// passo "info". Os campos obrigatórios seguem o BookingRequest.
type ClientInfo struct {
	Name  string
	Email string
	Phone string

	Address string
	City    string
	State   string

	// PF ou PJ; vazio vira PF
	Type string

	Description string
}

// FieldErrors aponta os campos rejeitados pela validação local.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return fmt.Sprintf("campos inválidos: %s", strings.Join(fields, ", "))
}

// Validate normaliza e valida o formulário. Campos obrigatórios são
// exigidos depois de trim; UF aceita no máximo 2 letras; o tipo vazio
// assume PF.
func (f *ClientInfo) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))

	errs := FieldErrors{}

	if f.Name == "" {
		errs["client_name"] = "obrigatório"
	}
	if f.Email == "" {
		errs["client_email"] = "obrigatório"
	}
	if f.Phone == "" {
		errs["client_phone"] = "obrigatório"
	}

	if len(f.State) > 2 {
		errs["client_state"] = "use a sigla de 2 letras"
	}

	switch f.Type {
	case "":
		f.Type = "PF"
	case "PF", "PJ":
	default:
		errs["client_type"] = "PF ou PJ"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
