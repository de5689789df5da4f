package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentMetadata is the free-form part of a payment attempt, kept typed.
type PaymentMetadata struct {
	BankCode     string `json:"bank_code,omitempty"`
	Locale       string `json:"locale,omitempty"`
	ClientIP     string `json:"client_ip,omitempty"`
	OrderInfo    string `json:"order_info,omitempty"`
	GuestName    string `json:"guest_name,omitempty"`
	GuestEmail   string `json:"guest_email,omitempty"`
	GuestPhone   string `json:"guest_phone,omitempty"`
	CardType     string `json:"card_type,omitempty"`
	PayDate      string `json:"pay_date,omitempty"`
	RefundReason string `json:"refund_reason,omitempty"`
	RefundAmount int64  `json:"refund_amount,omitempty"`
}

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Amount        int64  `gorm:"not null" json:"amount"`
	Currency      string `gorm:"size:3;not null;default:'VND'" json:"currency"`
	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`

	TransactionID        string `gorm:"size:64;uniqueIndex;not null" json:"transaction_id"`
	GatewayTransactionNo string `gorm:"size:64" json:"gateway_transaction_no,omitempty"`
	ResponseCode         string `gorm:"size:4" json:"response_code,omitempty"`

	Metadata datatypes.JSONType[PaymentMetadata] `json:"metadata"`

	PaidAt     *time.Time `json:"paid_at"`
	RefundedAt *time.Time `json:"refunded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
