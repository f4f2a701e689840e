package models

import "time"

// Ticket é o chamado/ordem de serviço agendado.
type Ticket struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referência pública gerada no agendamento (uuid)
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Description string `gorm:"size:255" json:"description"`

	// Janelas de proteção por chamado; quando zero, valem os padrões
	// do ScheduleSettings do técnico
	TravelTimeMinutes int `json:"travel_time_minutes"`
	BufferTimeMinutes int `json:"buffer_time_minutes"`

	// public (página de agendamento) ou private (API autenticada)
	Source string `gorm:"size:20;default:'private'" json:"source"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
