package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

type CancelBooking struct {
	repo   domain.Repository
	clock  timezone.Clock
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	log    *zap.Logger
}

func NewCancelBooking(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	notify *notify.Dispatcher,
	log *zap.Logger,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		clock:  clock,
		audit:  audit,
		notify: notify,
		log:    log.With(zap.String("usecase", "cancel_booking")),
	}
}

// Execute cancels the booking. Refunds are a separate, explicit action.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	principal *account.Principal,
	id uint,
	reason string,
) (*models.Booking, error) {

	b, err := loadOwned(ctx, uc.repo, principal, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(b, reason, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.log.Info("booking cancelled", logFields(b)...)

	uc.audit.Dispatch(audit.Event{
		BranchID: &b.BranchID,
		UserID:   &principal.UserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": b.CancellationReason},
	})
	uc.notify.Dispatch(notify.RKBookingCancelled, bookingEvent(ctx, uc.repo, b))

	return b, nil
}
