package payment

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
)

type RefundInput struct {
	TransactionID string
	// Amount of zero refunds the full payment.
	Amount int64
	Reason string
}

// Refund records a refund of a completed payment. Refunding an already
// refunded payment returns it unchanged.
func (g *Gateway) Refund(ctx context.Context, in RefundInput) (*models.Payment, error) {
	if in.Amount < 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	var (
		transitioned bool
		bk           models.Booking
	)

	var p *models.Payment
	err := g.withPaymentLock(ctx, in.TransactionID, func() error {
		var err error
		p, err = g.ledger.Transition(ctx, in.TransactionID, func(p *models.Payment, b *models.Booking) (bool, error) {
			amount := in.Amount
			if amount == 0 {
				amount = p.Amount
			}
			if amount > p.Amount {
				return false, httperr.ErrBusiness("invalid_amount")
			}

			current := domain.Status(p.Status)
			if current == domain.StatusRefunded {
				return false, nil
			}
			if domain.CanTransition(current, domain.StatusRefunded) != nil {
				return false, httperr.ErrBusiness("payment_not_refundable")
			}

			now := g.clock()
			meta := p.Metadata.Data()
			meta.RefundAmount = amount
			meta.RefundReason = strings.TrimSpace(in.Reason)
			p.Metadata = datatypes.NewJSONType(meta)
			p.Status = string(domain.StatusRefunded)
			p.RefundedAt = &now
			booking.MarkRefunded(b)

			transitioned = true
			bk = *b
			return true, nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		g.log.Info("payment refunded",
			zap.String("txn_ref", p.TransactionID),
			zap.Int64("amount", p.Metadata.Data().RefundAmount),
		)

		g.audit.Dispatch(audit.Event{
			BranchID: &bk.BranchID,
			UserID:   bk.UserID,
			Action:   "payment_refunded",
			Entity:   "payment",
			EntityID: &p.ID,
			Metadata: map[string]any{"reason": in.Reason, "amount": p.Metadata.Data().RefundAmount},
		})

		name, email := g.contact(ctx, &bk)
		g.notify.Dispatch(notify.RKPaymentRefunded, paymentEvent(p, &bk, name, email))
	}

	return p, nil
}
