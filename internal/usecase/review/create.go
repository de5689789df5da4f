package review

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/review"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type CreateInput struct {
	BookingID uint
	Rating    int
	Comment   string
}

type CreateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateReview(repo domain.Repository, auditor *audit.Dispatcher, log *zap.Logger) *CreateReview {
	return &CreateReview{
		repo:  repo,
		audit: auditor,
		log:   log.With(zap.String("usecase", "create_review")),
	}
}

// Execute stores the single review of a completed booking.
func (uc *CreateReview) Execute(
	ctx context.Context,
	principal *account.Principal,
	in CreateInput,
) (*models.Review, error) {

	if principal == nil {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return nil, httperr.ErrValidation("invalid_rating", nil)
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID == nil || *b.UserID != principal.UserID {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if booking.Status(b.Status) != booking.StatusCompleted {
		return nil, httperr.ErrBusiness("booking_not_completed")
	}

	r := &models.Review{
		BookingID: b.ID,
		UserID:    principal.UserID,
		ServiceID: b.ServiceID,
		StaffID:   b.StaffID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	}
	if err := uc.repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}

	uc.log.Info("review created", zap.Uint("booking_id", b.ID), zap.Int("rating", r.Rating))

	uc.audit.Dispatch(audit.Event{
		BranchID: &b.BranchID,
		UserID:   &principal.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &r.ID,
	})

	return r, nil
}

type ListServiceReviews struct {
	repo domain.Repository
}

func NewListServiceReviews(repo domain.Repository) *ListServiceReviews {
	return &ListServiceReviews{repo: repo}
}

func (uc *ListServiceReviews) Execute(ctx context.Context, serviceID uint) ([]models.Review, error) {
	return uc.repo.ListByService(ctx, serviceID)
}
