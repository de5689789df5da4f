package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

type SlotQuery struct {
	BranchID  uint
	Date      string
	ServiceID uint
	StaffID   *uint
}

type Slots struct {
	repo domain.Repository
}

func NewSlots(repo domain.Repository) *Slots {
	return &Slots{repo: repo}
}

// IsAvailable reports whether no active booking occupies the slot. Without a
// staff member any booking at that branch and time counts.
func (s *Slots) IsAvailable(
	ctx context.Context,
	branchID uint,
	date string,
	hm string,
	staffID *uint,
	excludeBookingID uint,
) (bool, error) {

	busy, err := s.repo.HasActiveBooking(ctx, domain.SlotKey{
		BranchID: branchID,
		StaffID:  staffID,
		Date:     date,
		Time:     hm,
	}, excludeBookingID)
	if err != nil {
		return false, err
	}
	return !busy, nil
}

// GenerateSlots lays the day grid over the active bookings of a branch.
func (s *Slots) GenerateSlots(
	ctx context.Context,
	q SlotQuery,
) ([]domain.Slot, error) {

	if _, err := timezone.ParseDate(q.Date); err != nil {
		return nil, httperr.ErrValidation("invalid_date", nil)
	}

	if _, err := s.repo.GetBranch(ctx, q.BranchID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetService(ctx, q.ServiceID); err != nil {
		return nil, err
	}

	staff, err := s.repo.ListBranchStaff(ctx, q.BranchID)
	if err != nil {
		return nil, err
	}
	if q.StaffID != nil {
		filtered := staff[:0]
		for _, st := range staff {
			if st.ID == *q.StaffID {
				filtered = append(filtered, st)
			}
		}
		staff = filtered
	}

	bookings, err := s.repo.ListActiveBookingsForDay(ctx, q.BranchID, q.Date, q.StaffID)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		booked[b.BookingTime] = true
	}

	grid := domain.Grid()
	out := make([]domain.Slot, 0, len(grid))

	for _, hm := range grid {
		if booked[hm] {
			out = append(out, domain.Slot{
				Time:      hm,
				Available: false,
				Staff:     []domain.SlotStaff{},
				Reason:    domain.ReasonFullyBooked,
			})
			continue
		}

		free := make([]domain.SlotStaff, 0, len(staff))
		for _, st := range staff {
			free = append(free, domain.SlotStaff{ID: st.ID, Name: st.Name})
		}

		out = append(out, domain.Slot{
			Time:      hm,
			Available: true,
			Staff:     free,
		})
	}

	return out, nil
}
