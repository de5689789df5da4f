package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/review"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, lookup(err, "booking_not_found")
	}
	return &b, nil
}

func (r *ReviewGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("review_already_exists")
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *ReviewGormRepository) ListByService(ctx context.Context, serviceID uint) ([]models.Review, error) {
	var out []models.Review
	if err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

var _ domain.Repository = (*ReviewGormRepository)(nil)
