package models

import "time"

// User é o técnico/prestador dono do tenant. O PublicSlug identifica
// a página pública de agendamento (/:slug).
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'technician'" json:"role"`

	PublicSlug string `gorm:"size:100;uniqueIndex;not null" json:"public_slug"`
	Timezone   string `gorm:"size:50" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
