package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetBranch(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&branch).Error; err != nil {
		return nil, lookup(err, "branch_not_found")
	}
	return &branch, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&svc).Error; err != nil {
		return nil, lookup(err, "service_not_found")
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&staff).Error; err != nil {
		return nil, lookup(err, "staff_not_in_branch")
	}
	return &staff, nil
}

func (r *BookingGormRepository) ListBranchStaff(
	ctx context.Context,
	branchID uint,
) ([]models.Staff, error) {

	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = ?", branchID, true).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("list branch staff: %w", err)
	}
	return staff, nil
}

func (r *BookingGormRepository) GetPromotionByCode(
	ctx context.Context,
	code string,
) (*models.Promotion, error) {

	var promo models.Promotion
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&promo).Error; err != nil {
		return nil, lookup(err, "invalid_promotion")
	}
	return &promo, nil
}

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, lookup(err, "user_not_found")
	}
	return &u, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateBooking reports a partial unique index hit as a taken slot.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("time_slot_unavailable")
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, lookup(err, "booking_not_found")
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("time_slot_unavailable")
		}
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_date DESC, booking_time DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) HasActiveBooking(
	ctx context.Context,
	key domain.SlotKey,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"branch_id = ? AND booking_date = ? AND booking_time = ? AND status <> ?",
			key.BranchID, key.Date, key.Time, string(domain.StatusCancelled),
		)

	// A booking without a stylist occupies every stylist of the slot.
	if key.StaffID != nil {
		q = q.Where("(staff_id = ? OR staff_id IS NULL)", *key.StaffID)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return count > 0, nil
}

func (r *BookingGormRepository) ListActiveBookingsForDay(
	ctx context.Context,
	branchID uint,
	date string,
	staffID *uint,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Select("id", "staff_id", "booking_time").
		Where(
			"branch_id = ? AND booking_date = ? AND status <> ?",
			branchID, date, string(domain.StatusCancelled),
		)
	if staffID != nil {
		q = q.Where("(staff_id = ? OR staff_id IS NULL)", *staffID)
	}

	var out []models.Booking
	if err := q.Order("booking_time ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list day bookings: %w", err)
	}
	return out, nil
}

var _ domain.Repository = (*BookingGormRepository)(nil)
