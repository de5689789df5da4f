package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusConfirmed); err != nil {
		return err
	}
	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCompleted); err != nil {
		return err
	}
	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func Cancel(b *models.Booking, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return httperr.ErrValidation("reason_required", nil)
	}
	if err := CanTransition(Status(b.Status), StatusCancelled); err != nil {
		return err
	}
	b.Status = string(StatusCancelled)
	b.CancellationReason = reason
	b.CancelledAt = &now
	return nil
}

// MarkPaid records a successful payment. A pending booking is confirmed; a
// booking already past pending keeps its status.
func MarkPaid(b *models.Booking, now time.Time) {
	b.PaymentStatus = string(PaymentPaid)
	if Status(b.Status) == StatusPending {
		b.Status = string(StatusConfirmed)
		b.ConfirmedAt = &now
	}
}

func MarkRefunded(b *models.Booking) {
	b.PaymentStatus = string(PaymentRefunded)
}
