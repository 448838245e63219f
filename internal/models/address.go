package models

import "time"

type Address struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	CEP        string   `gorm:"size:9" json:"cep"`
	Street     string   `gorm:"size:150;not null" json:"street"`
	Number     string   `gorm:"size:20" json:"number"`
	Complement string   `gorm:"size:100" json:"complement"`
	District   string   `gorm:"size:100" json:"district"`
	City       string   `gorm:"size:100;not null" json:"city"`
	State      string   `gorm:"size:2;not null" json:"state"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
