package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/lock"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// UpdateInput carries only the fields being changed.
type UpdateInput struct {
	Date    *string
	Time    *string
	StaffID *uint
	Notes   *string
}

type UpdateBooking struct {
	repo    domain.Repository
	slots   *Slots
	locker  lock.Locker
	lockTTL time.Duration
	clock   timezone.Clock
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewUpdateBooking(
	repo domain.Repository,
	slots *Slots,
	locker lock.Locker,
	lockTTL time.Duration,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *UpdateBooking {
	return &UpdateBooking{
		repo:    repo,
		slots:   slots,
		locker:  locker,
		lockTTL: lockTTL,
		clock:   clock,
		audit:   audit,
		log:     log.With(zap.String("usecase", "update_booking")),
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	principal *account.Principal,
	id uint,
	in UpdateInput,
) (*models.Booking, error) {

	b, err := loadOwned(ctx, uc.repo, principal, id)
	if err != nil {
		return nil, err
	}

	if domain.Status(b.Status).Terminal() {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	moved := false
	if in.Date != nil && *in.Date != b.BookingDate {
		b.BookingDate = *in.Date
		moved = true
	}
	if in.Time != nil && *in.Time != b.BookingTime {
		b.BookingTime = *in.Time
		moved = true
	}
	if in.StaffID != nil && (b.StaffID == nil || *b.StaffID != *in.StaffID) {
		b.StaffID = in.StaffID
		moved = true
	}
	if in.Notes != nil {
		b.Notes = strings.TrimSpace(*in.Notes)
	}

	if !moved {
		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	start, err := parseSlot(b.BookingDate, b.BookingTime)
	if err != nil {
		return nil, err
	}
	if start.Before(uc.clock()) {
		return nil, httperr.ErrBusiness("booking_in_past")
	}
	setSlot(b, start)
	if err := checkStaff(ctx, uc.repo, b.BranchID, b.StaffID); err != nil {
		return nil, err
	}

	if err := withSlotLock(ctx, uc.locker, uc.lockTTL, slotKey(b), func() error {
		ok, err := uc.slots.IsAvailable(ctx, b.BranchID, b.BookingDate, b.BookingTime, b.StaffID, b.ID)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.ErrBusiness("time_slot_unavailable")
		}
		return uc.repo.UpdateBooking(ctx, b)
	}); err != nil {
		return nil, err
	}

	uc.log.Info("booking rescheduled", logFields(b)...)

	uc.audit.Dispatch(audit.Event{
		BranchID: &b.BranchID,
		UserID:   &principal.UserID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"date": b.BookingDate, "time": b.BookingTime},
	})

	return b, nil
}

// loadOwned fetches a booking the principal may act on.
func loadOwned(
	ctx context.Context,
	repo domain.Repository,
	principal *account.Principal,
	id uint,
) (*models.Booking, error) {

	if principal == nil {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}

	b, err := repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.Owns(b) {
		return nil, httperr.ErrForbidden("forbidden")
	}
	return b, nil
}
