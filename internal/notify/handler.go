package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Sender delivers a rendered message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Handler turns consumed events into emails for customers and the salon.
type Handler struct {
	sender  Sender
	adminTo string
	log     *zap.Logger
}

func NewHandler(sender Sender, adminTo string, log *zap.Logger) *Handler {
	return &Handler{sender: sender, adminTo: adminTo, log: log}
}

func (h *Handler) Handle(ctx context.Context, key string, body []byte) error {
	switch key {
	case RKBookingCreated:
		ev, err := Unmarshal[BookingEvent](body)
		if err != nil {
			return err
		}
		return h.send(ctx, ev.Email, "Booking received",
			fmt.Sprintf("Hi %s,\n\nWe received your booking #%d on %s at %s. Total: %s.\n",
				ev.Name, ev.BookingID, ev.Date, ev.Time, FormatVND(ev.Total)))

	case RKBookingConfirmed:
		ev, err := Unmarshal[BookingEvent](body)
		if err != nil {
			return err
		}
		return h.send(ctx, ev.Email, "Booking confirmed",
			fmt.Sprintf("Hi %s,\n\nYour booking #%d on %s at %s is confirmed.\n",
				ev.Name, ev.BookingID, ev.Date, ev.Time))

	case RKBookingCancelled:
		ev, err := Unmarshal[BookingEvent](body)
		if err != nil {
			return err
		}
		return h.send(ctx, ev.Email, "Booking cancelled",
			fmt.Sprintf("Hi %s,\n\nYour booking #%d on %s at %s was cancelled. Reason: %s\n",
				ev.Name, ev.BookingID, ev.Date, ev.Time, ev.Reason))

	case RKPaymentCompleted, RKPaymentFailed, RKPaymentRefunded:
		ev, err := Unmarshal[PaymentEvent](body)
		if err != nil {
			return err
		}
		return h.send(ctx, ev.Email, "Payment "+ev.Status,
			fmt.Sprintf("Hi %s,\n\nPayment %s for booking #%d (%s) is %s.\n",
				ev.Name, ev.TransactionID, ev.BookingID, FormatVND(ev.Amount), ev.Status))

	case RKContactSubmitted:
		ev, err := Unmarshal[ContactEvent](body)
		if err != nil {
			return err
		}
		return h.send(ctx, h.adminTo, "Contact: "+ev.Subject,
			fmt.Sprintf("From: %s <%s> %s\n\n%s\n", ev.Name, ev.Email, ev.Phone, ev.Message))

	default:
		h.log.Info("skip unknown key", zap.String("key", key))
	}
	return nil
}

func (h *Handler) send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}
	return h.sender.Send(ctx, to, subject, body)
}

// FormatVND renders 500000 as "500.000 ₫".
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + " ₫"
	if neg {
		out = "-" + out
	}
	return out
}
