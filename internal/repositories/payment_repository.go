package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"solsub/internal/models/db_models"
	"solsub/pkg/utils"
)

type PaymentRepository interface {
	Insert(ctx context.Context, payment *db_models.Payment) error
	HasSignature(ctx context.Context, signature string) (bool, error)
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]db_models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Insert records a settled payment. The unique index on the signature makes
// replays fail even when two requests race past HasSignature.
func (r *paymentRepository) Insert(ctx context.Context, payment *db_models.Payment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicatePayment
	}
	return err
}

func (r *paymentRepository) HasSignature(ctx context.Context, signature string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Payment{}).
		Where("signature = ?", signature).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *paymentRepository) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]db_models.Payment, error) {
	var payments []db_models.Payment
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("paid_at DESC").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}
