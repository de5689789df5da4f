package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("duplicate_transaction")
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentGormRepository) FindByTransactionID(
	ctx context.Context,
	txnRef string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", txnRef).
		First(&p).Error; err != nil {
		return nil, lookup(err, "payment_not_found")
	}
	return &p, nil
}

func (r *PaymentGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, lookup(err, "booking_not_found")
	}
	return &b, nil
}

func (r *PaymentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, lookup(err, "user_not_found")
	}
	return &u, nil
}

// Transition is the single read-modify-write path of a payment. On Postgres
// the payment row is held with FOR UPDATE until commit.
func (r *PaymentGormRepository) Transition(
	ctx context.Context,
	txnRef string,
	fn func(p *models.Payment, b *models.Booking) (bool, error),
) (*models.Payment, error) {

	var out models.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var p models.Payment
		if err := q.Where("transaction_id = ?", txnRef).First(&p).Error; err != nil {
			return lookup(err, "payment_not_found")
		}

		var b models.Booking
		if err := tx.First(&b, p.BookingID).Error; err != nil {
			return lookup(err, "booking_not_found")
		}

		changed, err := fn(&p, &b)
		if err != nil {
			return err
		}

		if changed {
			if err := tx.Save(&p).Error; err != nil {
				return fmt.Errorf("save payment: %w", err)
			}
			if err := tx.Save(&b).Error; err != nil {
				return fmt.Errorf("save booking: %w", err)
			}
		}

		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

var _ domain.Ledger = (*PaymentGormRepository)(nil)
