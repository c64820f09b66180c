package promos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EligibilityChecker interface for the remote booking store (to avoid circular dependency)
type EligibilityChecker interface {
	CheckPromoEligibility(ctx context.Context, userID uuid.UUID, code string) (*PromoCode, error)
}

// CheckResult is the outcome of checking a code against a subtotal
type CheckResult struct {
	Code     string              `json:"code"`
	Eligible bool                `json:"eligible"`
	Reason   IneligibilityReason `json:"reason,omitempty"`
	Discount decimal.Decimal     `json:"discount"`
}

// Service interface defines the contract for promo code operations
type Service interface {
	Check(ctx context.Context, userID uuid.UUID, code string, subtotal decimal.Decimal, now time.Time) (*CheckResult, error)
}

type service struct {
	checker EligibilityChecker
}

// NewService creates a new promo service instance
func NewService(checker EligibilityChecker) Service {
	return &service{checker: checker}
}

// Check fetches the code from the store and applies the eligibility rules
func (s *service) Check(ctx context.Context, userID uuid.UUID, code string, subtotal decimal.Decimal, now time.Time) (*CheckResult, error) {
	promo, err := s.checker.CheckPromoEligibility(ctx, userID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch promo code: %w", err)
	}

	eligible, reason := promo.Eligible(now, subtotal)
	result := &CheckResult{
		Code:     promo.Code,
		Eligible: eligible,
		Reason:   reason,
		Discount: decimal.Zero,
	}
	if eligible {
		result.Discount = promo.Discount(subtotal)
	}
	return result, nil
}
