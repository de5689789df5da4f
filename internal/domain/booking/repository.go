package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetStaff(ctx context.Context, id uint) (*models.Staff, error)
	ListBranchStaff(ctx context.Context, branchID uint) ([]models.Staff, error)
	GetPromotionByCode(ctx context.Context, code string) (*models.Promotion, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
	ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error)

	// -------- Availability --------

	// HasActiveBooking reports whether a non-cancelled booking occupies the
	// slot. A nil staff matches any staff. excludeID skips one booking.
	HasActiveBooking(ctx context.Context, key SlotKey, excludeID uint) (bool, error)

	// ListActiveBookingsForDay returns the non-cancelled bookings of a branch
	// day, optionally narrowed to one staff member.
	ListActiveBookingsForDay(ctx context.Context, branchID uint, date string, staffID *uint) ([]models.Booking, error)
}
