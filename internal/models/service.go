package models

import "time"

type Service struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `json:"user_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	// Preço como decimal string ("150.00")
	Price string `gorm:"type:decimal(10,2)" json:"price"`

	// Duração em horas
	DurationHours int `json:"duration"`

	Warranty    string `gorm:"size:50" json:"warranty"`
	BillingUnit string `gorm:"size:50" json:"billing_unit"`
	ImageURL    string `gorm:"size:255" json:"image_url"`

	Active bool `gorm:"default:true" json:"active"`

	// Aparece na página pública de agendamento
	PublicBooking bool `gorm:"default:true" json:"public_booking"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
