package models

import "time"

// ScheduleSettings são os parâmetros de agenda do técnico usados no
// cálculo de horários disponíveis.
type ScheduleSettings struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	LeadTimeMinutes      int `gorm:"default:30" json:"lead_time_minutes"`
	BufferMinutes        int `gorm:"default:15" json:"buffer_minutes"`
	TravelMinutes        int `gorm:"default:30" json:"travel_minutes"`
	DefaultDurationHours int `gorm:"default:3" json:"default_duration_hours"`
	SlotIntervalMinutes  int `gorm:"default:30" json:"slot_interval_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
