package payments

import (
	"context"
	"fmt"
	"time"

	"deskhive/internal/pricing"
	"deskhive/internal/shared/config"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditConsumer interface for the credit ledger (to avoid circular dependency).
// Consumption happens here, at settlement, never at quote time.
type CreditConsumer interface {
	Consume(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) error
}

// Notifier interface for the notification pipeline
type Notifier interface {
	BookingConfirmed(ctx context.Context, userID uuid.UUID, bookingRef string)
}

// InitiateInput opens a checkout for a booking's outstanding total
type InitiateInput struct {
	UserID       uuid.UUID
	BookingRef   string
	Amount       decimal.Decimal
	Method       string
	CreditIntent *pricing.CreditUsageIntent
}

// Service interface defines the contract for payment operations
type Service interface {
	Initiate(ctx context.Context, input InitiateInput) (*PaymentAttempt, error)
	Reconcile(ctx context.Context, reference string, succeeded bool) (*PaymentAttempt, bool, error)
}

type service struct {
	repo     Repository
	gateway  Gateway
	credits  CreditConsumer
	notifier Notifier
	cfg      config.GatewayConfig
	logger   *logger.Logger
}

// NewService creates a new payment service instance
func NewService(repo Repository, gateway Gateway, credits CreditConsumer, notifier Notifier,
	cfg config.GatewayConfig, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		gateway:  gateway,
		credits:  credits,
		notifier: notifier,
		cfg:      cfg,
		logger:   log,
	}
}

// Initiate opens a gateway checkout and records the attempt
func (s *service) Initiate(ctx context.Context, input InitiateInput) (*PaymentAttempt, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("checkout amount must be positive, got %s", input.Amount)
	}

	session, err := s.gateway.CreateCheckout(ctx, CheckoutRequest{
		Amount:      input.Amount,
		Currency:    s.cfg.Currency,
		Reference:   input.BookingRef,
		Method:      input.Method,
		RedirectURL: s.cfg.RedirectURL,
		WebhookURL:  s.cfg.WebhookURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway checkout: %w", err)
	}

	attempt := &PaymentAttempt{
		Reference:    session.Reference,
		BookingRef:   input.BookingRef,
		UserID:       input.UserID,
		Amount:       input.Amount,
		Currency:     s.cfg.Currency,
		Method:       input.Method,
		Status:       PaymentPending,
		CreditAmount: decimal.Zero,
		CheckoutURL:  session.CheckoutURL,
	}
	if input.CreditIntent != nil {
		creditID := input.CreditIntent.CreditID
		attempt.CreditID = &creditID
		attempt.CreditAmount = input.CreditIntent.Amount
	}

	if err := s.repo.Create(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// Reconcile settles a gateway reference exactly once.
//
// A second delivery of the same reference is a no-op success (replay true).
// Credit consumption runs before the status flip so a failed consume leaves
// the attempt PENDING and the gateway's retry can settle it properly.
func (s *service) Reconcile(ctx context.Context, reference string, succeeded bool) (*PaymentAttempt, bool, error) {
	attempt, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}

	if attempt.Reconciled() {
		s.logger.LogPaymentReconciled(ctx, reference, string(attempt.Status), true)
		return attempt, true, nil
	}

	if succeeded && attempt.CreditID != nil && attempt.CreditAmount.GreaterThan(decimal.Zero) {
		if err := s.credits.Consume(ctx, *attempt.CreditID, attempt.CreditAmount, attempt.BookingRef); err != nil {
			return nil, false, fmt.Errorf("failed to consume credit for %s: %w", reference, err)
		}
	}

	now := time.Now().UTC()
	attempt.ReconciledAt = &now
	if succeeded {
		attempt.Status = PaymentSucceeded
	} else {
		attempt.Status = PaymentFailed
	}

	if err := s.repo.Update(ctx, attempt); err != nil {
		return nil, false, err
	}

	if succeeded && s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, attempt.UserID, attempt.BookingRef)
	}

	s.logger.LogPaymentReconciled(ctx, reference, string(attempt.Status), false)
	return attempt, false, nil
}
