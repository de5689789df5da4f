package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	GuestName  string `gorm:"size:100" json:"guest_name,omitempty"`
	GuestEmail string `gorm:"size:100" json:"guest_email,omitempty"`
	GuestPhone string `gorm:"size:20" json:"guest_phone,omitempty"`

	BranchID uint   `gorm:"not null;index" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	StaffID *uint  `json:"staff_id"`
	Staff   *Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BookingDate string `gorm:"size:10;not null;index" json:"booking_date"`
	BookingTime string `gorm:"size:5;not null" json:"booking_time"`

	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	ServicePrice   int64  `gorm:"not null" json:"service_price"`
	DiscountAmount int64  `gorm:"not null;default:0" json:"discount_amount"`
	TotalAmount    int64  `gorm:"not null" json:"total_amount"`
	PromotionCode  string `gorm:"size:50" json:"promotion_code,omitempty"`

	Notes              string     `gorm:"size:255" json:"notes"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGuest reports whether the booking was made without an account.
func (b *Booking) IsGuest() bool {
	return b.UserID == nil
}
