package models

import "time"

type ContactSubmission struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Subject string `gorm:"size:150" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Handled bool   `gorm:"default:false" json:"handled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
