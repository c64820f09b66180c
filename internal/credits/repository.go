package credits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository interface defines the contract for ledger persistence
type Repository interface {
	CreateRefund(ctx context.Context, refund *RefundTransaction) error
	FindRefundByID(ctx context.Context, id uuid.UUID) (*RefundTransaction, error)
	HasOutstandingRefund(ctx context.Context, bookingRef string) (bool, error)
	ListRefundsByUser(ctx context.Context, userID uuid.UUID) ([]RefundTransaction, error)

	// ApproveRefund flips the refund and mints the credit in one transaction
	ApproveRefund(ctx context.Context, refund *RefundTransaction, credit *StoreCredit) error
	UpdateRefund(ctx context.Context, refund *RefundTransaction) error

	FindCreditByID(ctx context.Context, id uuid.UUID) (*StoreCredit, error)
	FindSpendableCredit(ctx context.Context, userID uuid.UUID, now time.Time) (*StoreCredit, error)
	ListCreditsByUser(ctx context.Context, userID uuid.UUID) ([]StoreCredit, error)

	// ConsumeCredit appends a usage row under a row lock so concurrent draws
	// cannot overspend, and flips the credit to USED at zero balance.
	ConsumeCredit(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) (decimal.Decimal, error)

	// ExpireCredits marks ACTIVE credits past their deadline as EXPIRED
	ExpireCredits(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new ledger repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRefund(ctx context.Context, refund *RefundTransaction) error {
	if err := r.db.WithContext(ctx).Create(refund).Error; err != nil {
		return fmt.Errorf("failed to create refund transaction: %w", err)
	}
	return nil
}

func (r *repository) FindRefundByID(ctx context.Context, id uuid.UUID) (*RefundTransaction, error) {
	var refund RefundTransaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&refund).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefundNotFound
		}
		return nil, fmt.Errorf("failed to find refund transaction: %w", err)
	}
	return &refund, nil
}

func (r *repository) HasOutstandingRefund(ctx context.Context, bookingRef string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RefundTransaction{}).
		Where("booking_ref = ? AND status = ?", bookingRef, RefundRequested).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count outstanding refunds: %w", err)
	}
	return count > 0, nil
}

func (r *repository) ListRefundsByUser(ctx context.Context, userID uuid.UUID) ([]RefundTransaction, error) {
	var refunds []RefundTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&refunds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list refund transactions: %w", err)
	}
	return refunds, nil
}

func (r *repository) ApproveRefund(ctx context.Context, refund *RefundTransaction, credit *StoreCredit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(refund).Error; err != nil {
			return err
		}
		return tx.Create(credit).Error
	})
	if err != nil {
		return fmt.Errorf("failed to approve refund: %w", err)
	}
	return nil
}

func (r *repository) UpdateRefund(ctx context.Context, refund *RefundTransaction) error {
	if err := r.db.WithContext(ctx).Save(refund).Error; err != nil {
		return fmt.Errorf("failed to update refund transaction: %w", err)
	}
	return nil
}

func (r *repository) FindCreditByID(ctx context.Context, id uuid.UUID) (*StoreCredit, error) {
	var credit StoreCredit
	err := r.db.WithContext(ctx).Preload("Usages").Where("id = ?", id).First(&credit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditNotFound
		}
		return nil, fmt.Errorf("failed to find store credit: %w", err)
	}
	return &credit, nil
}

func (r *repository) FindSpendableCredit(ctx context.Context, userID uuid.UUID, now time.Time) (*StoreCredit, error) {
	var credit StoreCredit
	err := r.db.WithContext(ctx).Preload("Usages").
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, CreditActive, now).
		Order("expires_at ASC").
		First(&credit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditNotFound
		}
		return nil, fmt.Errorf("failed to find spendable credit: %w", err)
	}
	return &credit, nil
}

func (r *repository) ListCreditsByUser(ctx context.Context, userID uuid.UUID) ([]StoreCredit, error) {
	var creditList []StoreCredit
	err := r.db.WithContext(ctx).Preload("Usages").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&creditList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list store credits: %w", err)
	}
	return creditList, nil
}

func (r *repository) ConsumeCredit(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) (decimal.Decimal, error) {
	var remaining decimal.Decimal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var credit StoreCredit
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Usages").
			Where("id = ?", creditID).
			First(&credit).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCreditNotFound
			}
			return err
		}

		if credit.Status != CreditActive {
			return ErrCreditNotSpendable
		}

		balance := credit.Remaining()
		if amount.GreaterThan(balance) {
			return ErrInsufficientCredit
		}

		usage := &CreditUsage{
			CreditID:   credit.ID,
			BookingRef: bookingRef,
			Amount:     amount,
		}
		if err := tx.Create(usage).Error; err != nil {
			return err
		}

		remaining = balance.Sub(amount)
		if remaining.IsZero() {
			if err := tx.Model(&credit).Update("status", CreditUsed).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCreditNotFound) || errors.Is(err, ErrCreditNotSpendable) || errors.Is(err, ErrInsufficientCredit) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("failed to consume credit: %w", err)
	}
	return remaining, nil
}

func (r *repository) ExpireCredits(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&StoreCredit{}).
		Where("status = ? AND expires_at <= ?", CreditActive, now).
		Update("status", CreditExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire credits: %w", result.Error)
	}
	return result.RowsAffected, nil
}
