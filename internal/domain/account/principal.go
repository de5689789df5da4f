package account

import "github.com/BruksfildServices01/salon-booking/internal/models"

// Principal is the authenticated caller. A nil *Principal is a guest.
type Principal struct {
	UserID uint
	Role   string
}

func (p *Principal) IsStaff() bool {
	return p != nil && (p.Role == models.RoleStaff || p.Role == models.RoleAdmin)
}

// Owns reports whether the principal made the booking or may act for the salon.
func (p *Principal) Owns(b *models.Booking) bool {
	if p == nil {
		return false
	}
	if p.IsStaff() {
		return true
	}
	return b.UserID != nil && *b.UserID == p.UserID
}
