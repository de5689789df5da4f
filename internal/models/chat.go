package models

import "time"

type ChatSession struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     *uint  `gorm:"index" json:"user_id"`
	GuestToken string `gorm:"size:36;index" json:"guest_token,omitempty"`
	Title      string `gorm:"size:100" json:"title"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SessionID uint   `gorm:"not null;index" json:"session_id"`
	Role      string `gorm:"size:20;not null" json:"role"`
	Content   string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
