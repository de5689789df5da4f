package models

import "time"

type Promotion struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description     string     `gorm:"size:255" json:"description"`
	DiscountPercent int        `gorm:"not null" json:"discount_percent"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Active          bool       `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliesAt reports whether the promotion can be redeemed at t.
func (p *Promotion) AppliesAt(t time.Time) bool {
	if !p.Active || p.DiscountPercent <= 0 {
		return false
	}
	if p.StartsAt != nil && t.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && t.After(*p.EndsAt) {
		return false
	}
	return true
}
