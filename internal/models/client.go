package models

import "time"

// Cliente final, sem login, vinculado ao técnico
type Client struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `json:"user_id"`

	// PF (pessoa física) ou PJ (pessoa jurídica)
	Type string `gorm:"size:20;default:'PF'" json:"type"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Document string `gorm:"size:20" json:"document"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`

	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:2" json:"state"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
