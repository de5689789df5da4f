package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
)

// Contact resolves who should hear about a booking: the guest fields or
// the account holder.
func Contact(ctx context.Context, repo interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}, b *models.Booking) (name, email string) {

	if b.IsGuest() {
		return b.GuestName, b.GuestEmail
	}
	u, err := repo.GetUser(ctx, *b.UserID)
	if err != nil {
		return "", ""
	}
	return u.Name, u.Email
}

func bookingEvent(ctx context.Context, repo domain.Repository, b *models.Booking) notify.BookingEvent {
	name, email := Contact(ctx, repo, b)
	return notify.BookingEvent{
		BookingID: b.ID,
		Status:    b.Status,
		Date:      b.BookingDate,
		Time:      b.BookingTime,
		Total:     b.TotalAmount,
		Name:      name,
		Email:     email,
		Reason:    b.CancellationReason,
	}
}

func logFields(b *models.Booking) []zap.Field {
	return []zap.Field{
		zap.Uint("booking_id", b.ID),
		zap.Uint("branch_id", b.BranchID),
		zap.String("date", b.BookingDate),
		zap.String("time", b.BookingTime),
		zap.String("status", b.Status),
	}
}
