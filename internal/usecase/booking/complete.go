package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// StaffTransition is a salon-side status change: confirm or complete.
type StaffTransition struct {
	repo   domain.Repository
	clock  timezone.Clock
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	log    *zap.Logger

	action string
	apply  func(b *models.Booking, now time.Time) error
	event  string
}

func NewConfirmBooking(
	repo domain.Repository,
	clock timezone.Clock,
	auditor *audit.Dispatcher,
	notifier *notify.Dispatcher,
	log *zap.Logger,
) *StaffTransition {
	return &StaffTransition{
		repo: repo, clock: clock, audit: auditor, notify: notifier,
		log:    log.With(zap.String("usecase", "confirm_booking")),
		action: "booking_confirmed",
		apply:  domain.Confirm,
		event:  notify.RKBookingConfirmed,
	}
}

func NewCompleteBooking(
	repo domain.Repository,
	clock timezone.Clock,
	auditor *audit.Dispatcher,
	log *zap.Logger,
) *StaffTransition {
	return &StaffTransition{
		repo: repo, clock: clock, audit: auditor,
		log:    log.With(zap.String("usecase", "complete_booking")),
		action: "booking_completed",
		apply:  domain.Complete,
	}
}

func (uc *StaffTransition) Execute(
	ctx context.Context,
	principal *account.Principal,
	id uint,
) (*models.Booking, error) {

	if principal == nil {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}
	if !principal.IsStaff() {
		return nil, httperr.ErrForbidden("forbidden")
	}

	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(b, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.log.Info(uc.action, logFields(b)...)

	uc.audit.Dispatch(audit.Event{
		BranchID: &b.BranchID,
		UserID:   &principal.UserID,
		Action:   uc.action,
		Entity:   "booking",
		EntityID: &b.ID,
	})
	if uc.event != "" {
		uc.notify.Dispatch(uc.event, bookingEvent(ctx, uc.repo, b))
	}

	return b, nil
}
