package repository

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/salon-booking/internal/db/dbtest"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func newBooking(f dbtest.Fixture, staffID *uint, date, hm string) *models.Booking {
	return &models.Booking{
		UserID:        &f.Customer.ID,
		BranchID:      f.Branch.ID,
		ServiceID:     f.Service.ID,
		StaffID:       staffID,
		BookingDate:   date,
		BookingTime:   hm,
		Status:        string(domain.StatusPending),
		PaymentStatus: string(domain.PaymentPending),
		ServicePrice:  f.Service.Price,
		TotalAmount:   f.Service.Price,
	}
}

func TestCreateBooking_ActiveSlotIndex(t *testing.T) {
	gdb := dbtest.Open(t)
	f := dbtest.Seed(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	staff := f.Staff[0].ID
	first := newBooking(f, &staff, "2025-11-01", "10:00")
	if err := repo.CreateBooking(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := newBooking(f, &staff, "2025-11-01", "10:00")
	if err := repo.CreateBooking(ctx, dup); !httperr.IsBusiness(err, "time_slot_unavailable") {
		t.Fatalf("expected time_slot_unavailable, got %v", err)
	}

	first.Status = string(domain.StatusCancelled)
	if err := repo.UpdateBooking(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	again := newBooking(f, &staff, "2025-11-01", "10:00")
	if err := repo.CreateBooking(ctx, again); err != nil {
		t.Fatalf("a cancelled booking must free the slot: %v", err)
	}
}

func TestHasActiveBooking(t *testing.T) {
	gdb := dbtest.Open(t)
	f := dbtest.Seed(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	lan, minh := f.Staff[0].ID, f.Staff[1].ID
	b := newBooking(f, &lan, "2025-11-01", "10:00")
	if err := repo.CreateBooking(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name    string
		key     domain.SlotKey
		exclude uint
		want    bool
	}{
		{"same staff", domain.SlotKey{BranchID: f.Branch.ID, StaffID: &lan, Date: "2025-11-01", Time: "10:00"}, 0, true},
		{"other staff", domain.SlotKey{BranchID: f.Branch.ID, StaffID: &minh, Date: "2025-11-01", Time: "10:00"}, 0, false},
		{"any staff", domain.SlotKey{BranchID: f.Branch.ID, Date: "2025-11-01", Time: "10:00"}, 0, true},
		{"other time", domain.SlotKey{BranchID: f.Branch.ID, StaffID: &lan, Date: "2025-11-01", Time: "10:30"}, 0, false},
		{"excluded self", domain.SlotKey{BranchID: f.Branch.ID, StaffID: &lan, Date: "2025-11-01", Time: "10:00"}, b.ID, false},
	}

	for _, tc := range cases {
		got, err := repo.HasActiveBooking(ctx, tc.key, tc.exclude)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestHasActiveBooking_StafflessBookingBlocksEveryStylist(t *testing.T) {
	gdb := dbtest.Open(t)
	f := dbtest.Seed(t, gdb)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	if err := repo.CreateBooking(ctx, newBooking(f, nil, "2025-11-01", "10:00")); err != nil {
		t.Fatalf("create: %v", err)
	}

	minh := f.Staff[1].ID
	busy, err := repo.HasActiveBooking(ctx, domain.SlotKey{BranchID: f.Branch.ID, StaffID: &minh, Date: "2025-11-01", Time: "10:00"}, 0)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !busy {
		t.Fatalf("a booking without a stylist must occupy Minh too")
	}

	day, err := repo.ListActiveBookingsForDay(ctx, f.Branch.ID, "2025-11-01", &minh)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(day) != 1 {
		t.Fatalf("expected the staffless booking in Minh's day, got %d", len(day))
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewBookingGormRepository(gdb)

	_, err := repo.GetBooking(context.Background(), 999)
	be, ok := httperr.As(err)
	if !ok || be.Kind != httperr.KindNotFound || be.Code != "booking_not_found" {
		t.Fatalf("expected booking_not_found, got %v", err)
	}
}
