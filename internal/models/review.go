package models

import "time"

type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BookingID uint   `gorm:"uniqueIndex;not null" json:"booking_id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	ServiceID uint   `gorm:"not null;index" json:"service_id"`
	StaffID   *uint  `json:"staff_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
