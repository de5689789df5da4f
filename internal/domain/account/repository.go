package account

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type Repository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	CreateContact(ctx context.Context, c *models.ContactSubmission) error
}
