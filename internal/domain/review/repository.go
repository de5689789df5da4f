package review

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Repository interface {
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	CreateReview(ctx context.Context, r *models.Review) error
	ListByService(ctx context.Context, serviceID uint) ([]models.Review, error)
}
