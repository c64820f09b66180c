package credits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskhive/internal/pricing"
	"deskhive/internal/shared/config"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notifier interface for the notification pipeline
type Notifier interface {
	RefundApproved(ctx context.Context, userID uuid.UUID, bookingRef string, amount decimal.Decimal)
}

// Service interface defines the contract for the credit ledger.
// It also serves pricing (SpendableCredit) and payments (Consume).
type Service interface {
	RequestRefund(ctx context.Context, userID uuid.UUID, bookingRef string, amount decimal.Decimal, reason string) (*RefundTransaction, error)
	Approve(ctx context.Context, refundID uuid.UUID) (*StoreCredit, error)
	Reject(ctx context.Context, refundID uuid.UUID) (*RefundTransaction, error)
	ListRefunds(ctx context.Context, userID uuid.UUID) ([]RefundTransaction, error)
	ListCredits(ctx context.Context, userID uuid.UUID) ([]StoreCredit, error)

	SpendableCredit(ctx context.Context, userID uuid.UUID) (*pricing.CreditInstrument, error)
	Consume(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) error

	SweepExpiry(ctx context.Context) (int64, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	cfg      config.CreditConfig
	logger   *logger.Logger
}

// NewService creates a new credit ledger service instance
func NewService(repo Repository, notifier Notifier, cfg config.CreditConfig, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		logger:   log,
	}
}

// RequestRefund opens a refund request for a cancelled booking.
// When auto-approval is on, the request is approved in the same call and
// the returned transaction is already APPROVED.
func (s *service) RequestRefund(ctx context.Context, userID uuid.UUID, bookingRef string, amount decimal.Decimal, reason string) (*RefundTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("refund amount must be positive, got %s", amount)
	}

	outstanding, err := s.repo.HasOutstandingRefund(ctx, bookingRef)
	if err != nil {
		return nil, err
	}
	if outstanding {
		return nil, ErrOutstandingRefund
	}

	refund := &RefundTransaction{
		BookingRef: bookingRef,
		UserID:     userID,
		Amount:     amount,
		Reason:     reason,
		Status:     RefundRequested,
	}
	if err := s.repo.CreateRefund(ctx, refund); err != nil {
		return nil, err
	}

	if s.cfg.AutoApprove {
		if _, err := s.approve(ctx, refund); err != nil {
			return nil, err
		}
	}
	return refund, nil
}

// Approve decides a pending refund and mints its store credit
func (s *service) Approve(ctx context.Context, refundID uuid.UUID) (*StoreCredit, error) {
	refund, err := s.repo.FindRefundByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	return s.approve(ctx, refund)
}

func (s *service) approve(ctx context.Context, refund *RefundTransaction) (*StoreCredit, error) {
	if refund.Decided() {
		return nil, ErrAlreadyDecided
	}

	now := time.Now().UTC()
	refund.Status = RefundApproved
	refund.DecidedAt = &now

	credit := &StoreCredit{
		UserID:     refund.UserID,
		RefundID:   refund.ID,
		BookingRef: refund.BookingRef,
		Amount:     refund.Amount,
		Status:     CreditActive,
		IssuedAt:   now,
		ExpiresAt:  now.AddDate(0, 0, s.cfg.ExpiryDays),
	}

	if err := s.repo.ApproveRefund(ctx, refund, credit); err != nil {
		return nil, err
	}

	s.logger.LogRefundApproved(ctx, refund.ID.String(), credit.ID.String(), refund.UserID.String())
	if s.notifier != nil {
		s.notifier.RefundApproved(ctx, refund.UserID, refund.BookingRef, refund.Amount)
	}
	return credit, nil
}

// Reject decides a pending refund without minting credit
func (s *service) Reject(ctx context.Context, refundID uuid.UUID) (*RefundTransaction, error) {
	refund, err := s.repo.FindRefundByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if refund.Decided() {
		return nil, ErrAlreadyDecided
	}

	now := time.Now().UTC()
	refund.Status = RefundRejected
	refund.DecidedAt = &now

	if err := s.repo.UpdateRefund(ctx, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *service) ListRefunds(ctx context.Context, userID uuid.UUID) ([]RefundTransaction, error) {
	return s.repo.ListRefundsByUser(ctx, userID)
}

func (s *service) ListCredits(ctx context.Context, userID uuid.UUID) ([]StoreCredit, error) {
	return s.repo.ListCreditsByUser(ctx, userID)
}

// SpendableCredit returns the pricing view of the user's soonest-expiring
// active credit, or nil when there is none.
func (s *service) SpendableCredit(ctx context.Context, userID uuid.UUID) (*pricing.CreditInstrument, error) {
	credit, err := s.repo.FindSpendableCredit(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrCreditNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pricing.CreditInstrument{
		ID:        credit.ID,
		Balance:   credit.Remaining(),
		ExpiresAt: credit.ExpiresAt,
	}, nil
}

// Consume draws against a credit for a settled booking
func (s *service) Consume(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) error {
	credit, err := s.repo.FindCreditByID(ctx, creditID)
	if err != nil {
		return err
	}
	if !credit.Spendable(time.Now().UTC()) {
		return ErrCreditNotSpendable
	}

	_, err = s.repo.ConsumeCredit(ctx, creditID, amount, bookingRef)
	return err
}

// SweepExpiry expires overdue credits and reports how many it touched
func (s *service) SweepExpiry(ctx context.Context) (int64, error) {
	count, err := s.repo.ExpireCredits(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.LogCreditsExpired(ctx, count)
	}
	return count, nil
}
