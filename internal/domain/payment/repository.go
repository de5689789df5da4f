package payment

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Ledger is the persistence contract of payment attempts.
type Ledger interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	FindByTransactionID(ctx context.Context, txnRef string) (*models.Payment, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// Transition runs fn against the payment (row-locked) and its booking
	// inside one transaction and saves both when fn returns nil and true.
	Transition(
		ctx context.Context,
		txnRef string,
		fn func(p *models.Payment, b *models.Booking) (changed bool, err error),
	) (*models.Payment, error)
}
