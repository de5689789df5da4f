package models

import "time"

// AuditLog is an append-only record of who changed what.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID *uint  `gorm:"index" json:"branch_id"`
	UserID   *uint  `gorm:"index" json:"user_id"`
	Action   string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID *uint  `gorm:"index:idx_audit_entity" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
