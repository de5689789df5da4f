package booking

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/lock"
	"github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

type env struct {
	db       *gorm.DB
	fx       dbtest.Fixture
	repo     *repository.BookingGormRepository
	slots    *Slots
	create   *CreateBooking
	update   *UpdateBooking
	cancel   *CancelBooking
	confirm  *StaffTransition
	complete *StaffTransition
	customer *account.Principal
	admin    *account.Principal
}

func setup(t *testing.T) *env {
	t.Helper()

	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)

	repo := repository.NewBookingGormRepository(gdb)
	slots := NewSlots(repo)
	locker := lock.NewMemoryLocker(100 * time.Millisecond)
	clock := timezone.Fixed(time.Date(2025, 10, 20, 9, 0, 0, 0, timezone.Location("")))
	log := zap.NewNop()

	return &env{
		db:       gdb,
		fx:       fx,
		repo:     repo,
		slots:    slots,
		create:   NewCreateBooking(repo, slots, locker, time.Second, clock, nil, nil, log),
		update:   NewUpdateBooking(repo, slots, locker, time.Second, clock, nil, log),
		cancel:   NewCancelBooking(repo, clock, nil, nil, log),
		confirm:  NewConfirmBooking(repo, clock, nil, nil, log),
		complete: NewCompleteBooking(repo, clock, nil, log),
		customer: &account.Principal{UserID: fx.Customer.ID, Role: models.RoleCustomer},
		admin:    &account.Principal{UserID: fx.Admin.ID, Role: models.RoleAdmin},
	}
}

func (e *env) input(staff *uint, date, hm string) CreateInput {
	return CreateInput{
		BranchID:  e.fx.Branch.ID,
		ServiceID: e.fx.Service.ID,
		StaffID:   staff,
		Date:      date,
		Time:      hm,
	}
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

// ======================================================
// Create
// ======================================================

func TestCreate_PendingWithPriceSnapshot(t *testing.T) {
	e := setup(t)

	b, err := e.create.Execute(context.Background(), e.customer, e.input(nil, "2025-11-01", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if b.Status != "pending" || b.PaymentStatus != "pending" {
		t.Fatalf("expected pending/pending, got %s/%s", b.Status, b.PaymentStatus)
	}
	if b.ServicePrice != 100000 || b.TotalAmount != 100000 {
		t.Fatalf("expected price snapshot 100000, got %d/%d", b.ServicePrice, b.TotalAmount)
	}
	if b.UserID == nil || *b.UserID != e.fx.Customer.ID {
		t.Fatalf("expected booking owned by customer")
	}
}

func TestCreate_UnavailableSlotPersistsNothing(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	lan := e.fx.Staff[0].ID

	if _, err := e.create.Execute(ctx, e.customer, e.input(&lan, "2025-11-01", "10:00")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := e.create.Execute(ctx, e.admin, e.input(&lan, "2025-11-01", "10:00"))
	expectCode(t, err, "time_slot_unavailable")

	var count int64
	e.db.Model(&models.Booking{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 booking, got %d", count)
	}
}

func TestCreate_NormalizesTime(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	lan := e.fx.Staff[0].ID

	first, err := e.create.Execute(ctx, e.customer, e.input(&lan, "2025-11-01", "09:00"))
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.BookingTime != "09:00" {
		t.Fatalf("expected 09:00, got %s", first.BookingTime)
	}

	_, err = e.create.Execute(ctx, e.admin, e.input(&lan, "2025-11-01", "9:00"))
	expectCode(t, err, "time_slot_unavailable")

	other, err := e.create.Execute(ctx, e.admin, e.input(&lan, "2025-11-01", "9:30"))
	if err != nil {
		t.Fatalf("create 9:30: %v", err)
	}
	if other.BookingTime != "09:30" {
		t.Fatalf("expected stored time 09:30, got %s", other.BookingTime)
	}
}

func TestCreate_StafflessBookingBlocksStylists(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	minh := e.fx.Staff[1].ID

	if _, err := e.create.Execute(ctx, e.customer, e.input(nil, "2025-11-01", "10:00")); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := e.create.Execute(ctx, e.admin, e.input(&minh, "2025-11-01", "10:00"))
	expectCode(t, err, "time_slot_unavailable")
}

func TestCreate_ConcurrentRequestsForOneSlot(t *testing.T) {
	e := setup(t)
	lan := e.fx.Staff[0].ID

	const n = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.create.Execute(context.Background(), e.customer, e.input(&lan, "2025-11-03", "14:00"))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !httperr.IsBusiness(err, "time_slot_unavailable") {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one booking, got %d", succeeded)
	}
}

func TestCreate_ConcurrentStafflessAndStylist(t *testing.T) {
	e := setup(t)
	lan := e.fx.Staff[0].ID
	inputs := []CreateInput{
		e.input(nil, "2025-11-03", "15:00"),
		e.input(&lan, "2025-11-03", "15:00"),
	}

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in CreateInput) {
			defer wg.Done()
			_, errs[i] = e.create.Execute(context.Background(), e.customer, in)
		}(i, in)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		expectCode(t, err, "time_slot_unavailable")
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one booking, got %d", succeeded)
	}
}

func TestCreate_GuestNeedsContact(t *testing.T) {
	e := setup(t)
	in := e.input(nil, "2025-11-01", "10:00")
	in.GuestName = "Mai"
	in.GuestEmail = "mai@example.com"

	_, err := e.create.Execute(context.Background(), nil, in)
	expectCode(t, err, "requester_required")

	in.GuestPhone = "0901234567"
	b, err := e.create.Execute(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("guest create: %v", err)
	}
	if !b.IsGuest() || b.GuestPhone != "0901234567" {
		t.Fatalf("expected guest booking, got %+v", b)
	}
}

func TestCreate_Rejections(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	other := models.Branch{Name: "District 3", Active: true}
	if err := e.db.Create(&other).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	foreign := models.Staff{BranchID: other.ID, Name: "Tuan", Active: true}
	if err := e.db.Create(&foreign).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	cases := []struct {
		name string
		in   CreateInput
		code string
	}{
		{"bad date", e.input(nil, "2025-13-01", "10:00"), "invalid_date_or_time"},
		{"bad time", e.input(nil, "2025-11-01", "25:00"), "invalid_date_or_time"},
		{"past", e.input(nil, "2025-10-19", "10:00"), "booking_in_past"},
		{"too far", e.input(nil, "2026-06-01", "10:00"), "booking_too_far"},
		{"foreign staff", e.input(&foreign.ID, "2025-11-01", "10:00"), "staff_not_in_branch"},
		{"unknown service", CreateInput{BranchID: e.fx.Branch.ID, ServiceID: 999, Date: "2025-11-01", Time: "10:00"}, "service_not_found"},
		{"unknown branch", CreateInput{BranchID: 999, ServiceID: e.fx.Service.ID, Date: "2025-11-01", Time: "10:00"}, "branch_not_found"},
	}

	for _, tc := range cases {
		_, err := e.create.Execute(ctx, e.customer, tc.in)
		if !httperr.IsBusiness(err, tc.code) {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestCreate_Promotion(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	ends := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	promos := []models.Promotion{
		{Code: "AUTUMN20", DiscountPercent: 20, Active: true},
		{Code: "EXPIRED", DiscountPercent: 50, Active: true, EndsAt: &ends},
	}
	for i := range promos {
		if err := e.db.Create(&promos[i]).Error; err != nil {
			t.Fatalf("seed promo: %v", err)
		}
	}

	in := e.input(nil, "2025-11-01", "11:00")
	in.PromotionCode = "AUTUMN20"
	b, err := e.create.Execute(ctx, e.customer, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.DiscountAmount != 20000 || b.TotalAmount != 80000 || b.ServicePrice != 100000 {
		t.Fatalf("unexpected amounts: %+v", b)
	}

	in = e.input(nil, "2025-11-01", "12:00")
	in.PromotionCode = "EXPIRED"
	_, err = e.create.Execute(ctx, e.customer, in)
	expectCode(t, err, "invalid_promotion")

	in.PromotionCode = "NOPE"
	_, err = e.create.Execute(ctx, e.customer, in)
	expectCode(t, err, "invalid_promotion")
}

// ======================================================
// Update / Cancel / Complete
// ======================================================

func TestUpdate_Reschedule(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	lan := e.fx.Staff[0].ID

	first, err := e.create.Execute(ctx, e.customer, e.input(&lan, "2025-11-01", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := e.create.Execute(ctx, e.customer, e.input(&lan, "2025-11-01", "11:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	taken := "10:00"
	_, err = e.update.Execute(ctx, e.customer, second.ID, UpdateInput{Time: &taken})
	expectCode(t, err, "time_slot_unavailable")

	notes := "Please use organic products"
	same, err := e.update.Execute(ctx, e.customer, first.ID, UpdateInput{Time: &taken, Notes: &notes})
	if err != nil {
		t.Fatalf("keeping the own slot must succeed: %v", err)
	}
	if same.Notes != notes {
		t.Fatalf("expected notes to be saved")
	}

	free := "15:30"
	moved, err := e.update.Execute(ctx, e.customer, second.ID, UpdateInput{Time: &free})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.BookingTime != "15:30" {
		t.Fatalf("expected 15:30, got %s", moved.BookingTime)
	}

	early := "9:30"
	moved, err = e.update.Execute(ctx, e.customer, second.ID, UpdateInput{Time: &early})
	if err != nil {
		t.Fatalf("reschedule to 9:30: %v", err)
	}
	if moved.BookingTime != "09:30" {
		t.Fatalf("expected stored time 09:30, got %s", moved.BookingTime)
	}
}

func TestUpdate_Authorization(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b, err := e.create.Execute(ctx, e.customer, e.input(nil, "2025-11-01", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := &account.Principal{UserID: 999, Role: models.RoleCustomer}
	hm := "12:00"

	_, err = e.update.Execute(ctx, stranger, b.ID, UpdateInput{Time: &hm})
	expectCode(t, err, "forbidden")

	_, err = e.update.Execute(ctx, nil, b.ID, UpdateInput{Time: &hm})
	expectCode(t, err, "unauthenticated")

	_, err = e.update.Execute(ctx, e.customer, 999, UpdateInput{Time: &hm})
	expectCode(t, err, "booking_not_found")

	if _, err := e.update.Execute(ctx, e.admin, b.ID, UpdateInput{Time: &hm}); err != nil {
		t.Fatalf("staff may reschedule: %v", err)
	}
}

func TestCancel_FreesSlot(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	lan := e.fx.Staff[0].ID

	b, err := e.create.Execute(ctx, e.customer, e.input(&lan, "2025-11-01", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = e.cancel.Execute(ctx, e.customer, b.ID, "  ")
	expectCode(t, err, "reason_required")

	cancelled, err := e.cancel.Execute(ctx, e.customer, b.ID, "Schedule conflict")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != "cancelled" || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected booking: %+v", cancelled)
	}

	_, err = e.cancel.Execute(ctx, e.customer, b.ID, "again")
	expectCode(t, err, "invalid_state")

	ok, err := e.slots.IsAvailable(ctx, e.fx.Branch.ID, "2025-11-01", "10:00", &lan, 0)
	if err != nil || !ok {
		t.Fatalf("expected slot to be free after cancel, ok=%v err=%v", ok, err)
	}

	hm := "11:00"
	_, err = e.update.Execute(ctx, e.customer, b.ID, UpdateInput{Time: &hm})
	expectCode(t, err, "invalid_state")
}

func TestConfirmComplete_StaffOnly(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b, err := e.create.Execute(ctx, e.customer, e.input(nil, "2025-11-01", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = e.complete.Execute(ctx, e.customer, b.ID)
	expectCode(t, err, "forbidden")

	_, err = e.complete.Execute(ctx, e.admin, b.ID)
	expectCode(t, err, "invalid_state")

	if _, err := e.confirm.Execute(ctx, e.admin, b.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	done, err := e.complete.Execute(ctx, e.admin, b.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != string(domain.StatusCompleted) || done.CompletedAt == nil {
		t.Fatalf("unexpected booking: %+v", done)
	}
}

func TestGetAndList(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b, err := e.create.Execute(ctx, e.customer, e.input(nil, "2025-11-01", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := NewGetBooking(e.repo).Execute(ctx, e.customer, b.ID)
	if err != nil || got.ID != b.ID {
		t.Fatalf("get: %v", err)
	}

	list, err := NewListMyBookings(e.repo).Execute(ctx, e.customer)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d)", err, len(list))
	}

	_, err = NewListMyBookings(e.repo).Execute(ctx, nil)
	expectCode(t, err, "unauthenticated")
}

// ======================================================
// Slots
// ======================================================

func TestGenerateSlots(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	lan := e.fx.Staff[0].ID

	if _, err := e.create.Execute(ctx, e.customer, e.input(&lan, "2025-11-01", "10:00")); err != nil {
		t.Fatalf("create: %v", err)
	}

	slots, err := e.slots.GenerateSlots(ctx, SlotQuery{
		BranchID:  e.fx.Branch.ID,
		Date:      "2025-11-01",
		ServiceID: e.fx.Service.ID,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(slots) != 18 || slots[0].Time != "09:00" || slots[17].Time != "17:30" {
		t.Fatalf("unexpected grid: %d entries", len(slots))
	}

	for _, s := range slots {
		if s.Time == "10:00" {
			if s.Available || s.Reason != domain.ReasonFullyBooked || len(s.Staff) != 0 {
				t.Fatalf("booked slot must be unavailable without staff: %+v", s)
			}
			continue
		}
		if !s.Available || s.Reason != "" || len(s.Staff) != 2 {
			t.Fatalf("free slot must list both stylists: %+v", s)
		}
	}

	minh := e.fx.Staff[1].ID
	forMinh, err := e.slots.GenerateSlots(ctx, SlotQuery{
		BranchID:  e.fx.Branch.ID,
		Date:      "2025-11-01",
		ServiceID: e.fx.Service.ID,
		StaffID:   &minh,
	})
	if err != nil {
		t.Fatalf("generate for staff: %v", err)
	}
	for _, s := range forMinh {
		if !s.Available || len(s.Staff) != 1 || s.Staff[0].ID != minh {
			t.Fatalf("Minh is free all day: %+v", s)
		}
	}

	nobody := uint(999)
	empty, err := e.slots.GenerateSlots(ctx, SlotQuery{
		BranchID:  e.fx.Branch.ID,
		Date:      "2025-11-01",
		ServiceID: e.fx.Service.ID,
		StaffID:   &nobody,
	})
	if err != nil {
		t.Fatalf("generate for unknown staff: %v", err)
	}
	raw, err := json.Marshal(empty[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"staff":[]`) {
		t.Fatalf("free slot must keep an empty staff list: %s", raw)
	}
}

func TestGenerateSlots_Validation(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.slots.GenerateSlots(ctx, SlotQuery{BranchID: e.fx.Branch.ID, Date: "01/11/2025", ServiceID: e.fx.Service.ID})
	expectCode(t, err, "invalid_date")

	_, err = e.slots.GenerateSlots(ctx, SlotQuery{BranchID: e.fx.Branch.ID, Date: "2025-11-01", ServiceID: 999})
	expectCode(t, err, "service_not_found")
}
