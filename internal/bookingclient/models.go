package bookingclient

// AvailableSlot é um horário livre devolvido pelo endpoint público de
// disponibilidade. Datetime (RFC3339) identifica o slot dentro de uma
// janela de busca.
type AvailableSlot struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Datetime string `json:"datetime"`
}

// Service é o serviço exibido na página pública.
type Service struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    int    `json:"duration"`
	Warranty    string `json:"warranty"`
	BillingUnit string `json:"billing_unit"`
	ImageURL    string `json:"image_url"`
}

// Technician é o cartão público do técnico.
type Technician struct {
	Name       string `json:"name"`
	PublicSlug string `json:"public_slug"`
	Phone      string `json:"phone"`
}

// BookingRequest é o corpo enviado ao criar um agendamento público.
// ScheduledDate deve ser o datetime de um AvailableSlot previamente
// buscado.
type BookingRequest struct {
	ServiceID     uint   `json:"service_id"`
	ScheduledDate string `json:"scheduled_date"`

	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`

	ClientAddress string `json:"client_address,omitempty"`
	ClientCity    string `json:"client_city,omitempty"`
	ClientState   string `json:"client_state,omitempty"`
	ClientType    string `json:"client_type,omitempty"`

	Description string `json:"description,omitempty"`
}

// BookingConfirmation é a resposta de um agendamento aceito.
type BookingConfirmation struct {
	Reference     string `json:"reference"`
	ScheduledDate string `json:"scheduled_date"`
	ServiceName   string `json:"service_name"`
	Status        string `json:"status"`
}
