package models

import "time"

type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:150;not null" json:"name"`
	Slug         string `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Address      string `gorm:"size:255" json:"address"`
	Phone        string `gorm:"size:20" json:"phone"`
	ContactEmail string `gorm:"size:100" json:"contact_email"`
	Timezone     string `gorm:"size:50" json:"timezone"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
