package models

import "time"

// Rating is immutable once written; one per appointment.
type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex:idx_ratings_appointment_id;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProfessionalID uint `gorm:"index;not null" json:"professional_id"`
	ClientID       uint `gorm:"index;not null" json:"client_id"`

	Description string `gorm:"size:500;not null" json:"description"`
	Score       int    `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`

	CreatedAt time.Time `json:"created_at"`
}
