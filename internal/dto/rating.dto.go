package dto

import (
	"time"

	"github.com/PedrohFolster/inkspiration/internal/models"
)

type RatingDTO struct {
	ID             uint      `json:"id"`
	AppointmentID  uint      `json:"appointment_id"`
	ProfessionalID uint      `json:"professional_id"`
	ClientID       uint      `json:"client_id"`
	Score          int       `json:"score"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewRatingDTO(r models.Rating) RatingDTO {
	return RatingDTO{
		ID:             r.ID,
		AppointmentID:  r.AppointmentID,
		ProfessionalID: r.ProfessionalID,
		ClientID:       r.ClientID,
		Score:          r.Score,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
	}
}
