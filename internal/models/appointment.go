package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// No association fields: appointments outlive the professional profile.
	ProfessionalID uint `gorm:"index:idx_appointments_professional_period;not null" json:"professional_id"`
	ClientID       uint `gorm:"index;not null" json:"client_id"`

	StartTime time.Time `gorm:"index:idx_appointments_professional_period;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	Service     string     `gorm:"size:100" json:"service"`
	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
