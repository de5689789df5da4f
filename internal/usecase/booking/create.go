package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/lock"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// MaxAdvanceDays is how far ahead a booking may be placed.
const MaxAdvanceDays = 90

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BranchID  uint
	ServiceID uint
	StaffID   *uint

	Date string
	Time string

	Notes         string
	PromotionCode string

	GuestName  string
	GuestEmail string
	GuestPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	slots   *Slots
	locker  lock.Locker
	lockTTL time.Duration
	clock   timezone.Clock
	audit   *audit.Dispatcher
	notify  *notify.Dispatcher
	log     *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	slots *Slots,
	locker lock.Locker,
	lockTTL time.Duration,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	notify *notify.Dispatcher,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		slots:   slots,
		locker:  locker,
		lockTTL: lockTTL,
		clock:   clock,
		audit:   audit,
		notify:  notify,
		log:     log.With(zap.String("usecase", "create_booking")),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	principal *account.Principal,
	in CreateInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Requester
	// --------------------------------------------------
	b := &models.Booking{
		BranchID:      in.BranchID,
		ServiceID:     in.ServiceID,
		StaffID:       in.StaffID,
		BookingDate:   in.Date,
		BookingTime:   in.Time,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),
		Notes:         strings.TrimSpace(in.Notes),
	}

	if principal != nil {
		b.UserID = &principal.UserID
	} else {
		b.GuestName = strings.TrimSpace(in.GuestName)
		b.GuestEmail = strings.TrimSpace(in.GuestEmail)
		b.GuestPhone = strings.TrimSpace(in.GuestPhone)
		if b.GuestName == "" || b.GuestEmail == "" || b.GuestPhone == "" {
			return nil, httperr.ErrValidation("requester_required", nil)
		}
	}

	// --------------------------------------------------
	// Date / time
	// --------------------------------------------------
	start, err := parseSlot(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if err := uc.checkWindow(start); err != nil {
		return nil, err
	}
	setSlot(b, start)

	// --------------------------------------------------
	// Catalog
	// --------------------------------------------------
	if _, err := uc.repo.GetBranch(ctx, in.BranchID); err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := checkStaff(ctx, uc.repo, in.BranchID, in.StaffID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Price snapshot + promotion
	// --------------------------------------------------
	b.ServicePrice = svc.Price
	if code := strings.TrimSpace(in.PromotionCode); code != "" {
		promo, err := uc.repo.GetPromotionByCode(ctx, code)
		if err != nil || !promo.AppliesAt(uc.clock()) {
			return nil, httperr.ErrBusiness("invalid_promotion")
		}
		b.PromotionCode = promo.Code
		b.DiscountAmount = svc.Price * int64(promo.DiscountPercent) / 100
	}
	b.TotalAmount = b.ServicePrice - b.DiscountAmount

	// --------------------------------------------------
	// Slot lock + availability + insert
	// --------------------------------------------------
	if err := withSlotLock(ctx, uc.locker, uc.lockTTL, slotKey(b), func() error {
		ok, err := uc.slots.IsAvailable(ctx, b.BranchID, b.BookingDate, b.BookingTime, b.StaffID, 0)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.ErrBusiness("time_slot_unavailable")
		}
		return uc.repo.CreateBooking(ctx, b)
	}); err != nil {
		return nil, err
	}

	uc.log.Info("booking created", logFields(b)...)

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BranchID: &b.BranchID,
		UserID:   b.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"date": b.BookingDate, "time": b.BookingTime, "total": b.TotalAmount},
	})
	uc.notify.Dispatch(notify.RKBookingCreated, bookingEvent(ctx, uc.repo, b))

	return b, nil
}

func (uc *CreateBooking) checkWindow(start time.Time) error {
	current := uc.clock()
	if start.Before(current) {
		return httperr.ErrBusiness("booking_in_past")
	}

	limit := now.With(current).EndOfDay().AddDate(0, 0, MaxAdvanceDays)
	if start.After(limit) {
		return httperr.ErrBusiness("booking_too_far")
	}
	return nil
}

// ======================================================
// Shared helpers
// ======================================================

func parseSlot(date, hm string) (time.Time, error) {
	start, err := timezone.ParseDateTime(date, hm)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_or_time", nil)
	}
	return start, nil
}

// setSlot stores the canonical date and time of start so that equal
// instants share one slot key.
func setSlot(b *models.Booking, start time.Time) {
	b.BookingDate = start.Format(timezone.DateLayout)
	b.BookingTime = start.Format(timezone.TimeLayout)
}

func checkStaff(ctx context.Context, repo domain.Repository, branchID uint, staffID *uint) error {
	if staffID == nil {
		return nil
	}
	staff, err := repo.GetStaff(ctx, *staffID)
	if err != nil {
		if _, ok := httperr.As(err); ok {
			return httperr.ErrBusiness("staff_not_in_branch")
		}
		return err
	}
	if staff.BranchID != branchID {
		return httperr.ErrBusiness("staff_not_in_branch")
	}
	return nil
}

func slotKey(b *models.Booking) domain.SlotKey {
	return domain.SlotKey{
		BranchID: b.BranchID,
		StaffID:  b.StaffID,
		Date:     b.BookingDate,
		Time:     b.BookingTime,
	}
}

// withSlotLock runs fn while holding the advisory lock of the branch slot. A
// lock held elsewhere means another request is taking the same time.
func withSlotLock(
	ctx context.Context,
	locker lock.Locker,
	ttl time.Duration,
	key domain.SlotKey,
	fn func() error,
) error {

	release, err := locker.Acquire(ctx, lock.SlotKey(key.BranchWide().String()), ttl)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return httperr.ErrBusiness("time_slot_unavailable")
		}
		return fmt.Errorf("slot lock: %w", err)
	}
	defer release()

	return fn()
}
