package models

import "time"

type Portfolio struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex;not null" json:"professional_id"`

	Description string `gorm:"type:text" json:"description"`
	Specialty   string `gorm:"size:255" json:"specialty"`
	Experience  string `gorm:"size:255" json:"experience"`
	Website     string `gorm:"size:255" json:"website"`
	Instagram   string `gorm:"size:255" json:"instagram"`
	TikTok      string `gorm:"size:255" json:"tiktok"`
	Facebook    string `gorm:"size:255" json:"facebook"`
	Twitter     string `gorm:"size:255" json:"twitter"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PortfolioImage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PortfolioID uint   `gorm:"index;not null" json:"portfolio_id"`
	ObjectKey   string `gorm:"size:255;not null" json:"object_key"`
	ContentType string `gorm:"size:50;not null" json:"content_type"`

	CreatedAt time.Time `json:"created_at"`
}
