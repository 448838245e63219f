package models

import "time"

// Availability is one weekly window; a professional has at most one per weekday.
type Availability struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex:idx_availability_professional_weekday;not null" json:"professional_id"`
	Weekday        int  `gorm:"uniqueIndex:idx_availability_professional_weekday;not null" json:"weekday"`

	Label     string `gorm:"size:20;not null" json:"label"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
