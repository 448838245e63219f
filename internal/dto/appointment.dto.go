package dto

import (
	"time"

	"github.com/PedrohFolster/inkspiration/internal/models"
)

type AppointmentDTO struct {
	ID             uint       `json:"id"`
	ProfessionalID uint       `json:"professional_id"`
	ClientID       uint       `json:"client_id"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	Status         string     `json:"status"`
	Service        string     `json:"service,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

func NewAppointmentDTO(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:             ap.ID,
		ProfessionalID: ap.ProfessionalID,
		ClientID:       ap.ClientID,
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		Status:         ap.Status,
		Service:        ap.Service,
		Notes:          ap.Notes,
		CancelledAt:    ap.CancelledAt,
		CompletedAt:    ap.CompletedAt,
	}
}

func NewAppointmentDTOs(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentDTO(ap))
	}
	return out
}

// ConflictDTO answers a conflict-check query.
type ConflictDTO struct {
	ProfessionalID uint      `json:"professional_id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Conflict       bool      `json:"conflict"`
}
