package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Professional is the studio-side profile of a User. At most one per user.
type Professional struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex:idx_professionals_user_id;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AddressID uint    `gorm:"not null" json:"address_id"`
	Address   Address `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Rating       decimal.Decimal `gorm:"type:numeric(3,2);not null;default:0" json:"rating"`
	RatingsCount int             `gorm:"not null;default:0" json:"ratings_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
