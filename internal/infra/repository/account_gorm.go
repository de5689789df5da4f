package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, lookup(err, "user_not_found")
	}
	return &u, nil
}

func (r *AccountGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *AccountGormRepository) CreateContact(ctx context.Context, c *models.ContactSubmission) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create contact submission: %w", err)
	}
	return nil
}

var _ domain.Repository = (*AccountGormRepository)(nil)
