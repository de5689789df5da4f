package notify

import (
	"encoding/json"
	"fmt"
)

// Routing keys published on the notification exchange.
const (
	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCancelled = "booking.cancelled"
	RKPaymentCompleted = "payment.completed"
	RKPaymentFailed    = "payment.failed"
	RKPaymentRefunded  = "payment.refunded"
	RKContactSubmitted = "contact.submitted"
)

// Bindings is every key the notifier consumes.
var Bindings = []string{"booking.*", "payment.*", "contact.*"}

type BookingEvent struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Total     int64  `json:"total"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type PaymentEvent struct {
	BookingID     uint   `json:"booking_id"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	ResponseCode  string `json:"response_code,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
}

type ContactEvent struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func Unmarshal[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode event: %w", err)
	}
	return v, nil
}
