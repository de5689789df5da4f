package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	principal *account.Principal,
	id uint,
) (*models.Booking, error) {
	return loadOwned(ctx, uc.repo, principal, id)
}

type ListMyBookings struct {
	repo domain.Repository
}

func NewListMyBookings(repo domain.Repository) *ListMyBookings {
	return &ListMyBookings{repo: repo}
}

func (uc *ListMyBookings) Execute(
	ctx context.Context,
	principal *account.Principal,
) ([]models.Booking, error) {

	if principal == nil {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}
	return uc.repo.ListBookingsForUser(ctx, principal.UserID)
}
