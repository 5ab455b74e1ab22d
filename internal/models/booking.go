package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"business"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Date is the business day; StartClock/EndClock are "HH:MM" within it.
	Date       time.Time `gorm:"type:date;index:idx_booking_day" json:"date"`
	StartClock string    `gorm:"size:5;not null" json:"start_clock"`
	EndClock   string    `gorm:"size:5;not null" json:"end_clock"`

	Status string `gorm:"size:20;default:'pending';index:idx_booking_day" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	ReminderSent bool       `gorm:"default:false" json:"reminder_sent"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
