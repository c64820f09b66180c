package payments

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrUnknownReference is returned when no attempt matches a gateway reference
var ErrUnknownReference = errors.New("unknown payment reference")

// Repository interface defines the contract for payment attempt persistence
type Repository interface {
	Create(ctx context.Context, attempt *PaymentAttempt) error
	FindByReference(ctx context.Context, reference string) (*PaymentAttempt, error)
	Update(ctx context.Context, attempt *PaymentAttempt) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new payment repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, attempt *PaymentAttempt) error {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create payment attempt: %w", err)
	}
	return nil
}

func (r *repository) FindByReference(ctx context.Context, reference string) (*PaymentAttempt, error) {
	var attempt PaymentAttempt
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownReference
		}
		return nil, fmt.Errorf("failed to find payment attempt: %w", err)
	}
	return &attempt, nil
}

func (r *repository) Update(ctx context.Context, attempt *PaymentAttempt) error {
	if err := r.db.WithContext(ctx).Save(attempt).Error; err != nil {
		return fmt.Errorf("failed to update payment attempt: %w", err)
	}
	return nil
}
