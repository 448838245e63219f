package dto

import (
	"github.com/shopspring/decimal"

	"github.com/PedrohFolster/inkspiration/internal/models"
)

type PortfolioDTO struct {
	Description string `json:"description"`
	Specialty   string `json:"specialty"`
	Experience  string `json:"experience"`
	Website     string `json:"website,omitempty"`
	Instagram   string `json:"instagram,omitempty"`
	TikTok      string `json:"tiktok,omitempty"`
	Facebook    string `json:"facebook,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
}

type AvailabilityDTO struct {
	Weekday int    `json:"weekday"`
	Label   string `json:"label"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type ImageDTO struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// ProfessionalDTO is the fully loaded professional aggregate.
type ProfessionalDTO struct {
	ID           uint              `json:"id"`
	UserID       uint              `json:"user_id"`
	AddressID    uint              `json:"address_id"`
	Rating       decimal.Decimal   `json:"rating"`
	RatingsCount int               `json:"ratings_count"`
	Portfolio    *PortfolioDTO     `json:"portfolio,omitempty"`
	Availability []AvailabilityDTO `json:"availability"`
	Images       []ImageDTO        `json:"images"`
}

type ProfessionalSummaryDTO struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"user_id"`
	Rating       decimal.Decimal `json:"rating"`
	RatingsCount int             `json:"ratings_count"`
}

func NewPortfolioDTO(p *models.Portfolio) *PortfolioDTO {
	if p == nil {
		return nil
	}
	return &PortfolioDTO{
		Description: p.Description,
		Specialty:   p.Specialty,
		Experience:  p.Experience,
		Website:     p.Website,
		Instagram:   p.Instagram,
		TikTok:      p.TikTok,
		Facebook:    p.Facebook,
		Twitter:     p.Twitter,
	}
}

func NewAvailabilityDTOs(set []models.Availability) []AvailabilityDTO {
	out := make([]AvailabilityDTO, 0, len(set))
	for _, av := range set {
		out = append(out, AvailabilityDTO{
			Weekday: av.Weekday,
			Label:   av.Label,
			Start:   av.StartTime,
			End:     av.EndTime,
		})
	}
	return out
}

func NewProfessionalSummaryDTO(p models.Professional) ProfessionalSummaryDTO {
	return ProfessionalSummaryDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		Rating:       p.Rating,
		RatingsCount: p.RatingsCount,
	}
}
