package promos

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoKind enumerates how a promo code is targeted
type PromoKind string

const (
	PromoGeneral       PromoKind = "GENERAL"
	PromoGroupSpecific PromoKind = "GROUP_SPECIFIC"
	PromoUserSpecific  PromoKind = "USER_SPECIFIC"
	PromoWelcome       PromoKind = "WELCOME"
)

// IneligibilityReason explains why a promo cannot be applied
type IneligibilityReason string

const (
	ReasonNotActive      IneligibilityReason = "NOT_ACTIVE"
	ReasonBelowMinimum   IneligibilityReason = "BELOW_MINIMUM_AMOUNT"
	ReasonUsageExhausted IneligibilityReason = "USAGE_EXHAUSTED"
	ReasonNotTargeted    IneligibilityReason = "NOT_TARGETED"
)

// PromoCode is a discount instrument served by the remote booking store.
// Exactly one of Percentage or FlatAmount is set.
type PromoCode struct {
	Code            string           `json:"code"`
	Kind            PromoKind        `json:"kind"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	FlatAmount      *decimal.Decimal `json:"flat_amount,omitempty"`
	MinimumAmount   decimal.Decimal  `json:"minimum_amount"`
	MaxUsagePerUser int              `json:"max_usage_per_user"`
	UsedByUser      int              `json:"used_by_user"`
	ActiveFrom      time.Time        `json:"active_from"`
	ActiveTo        time.Time        `json:"active_to"`
	Priority        int              `json:"priority"`
	// Targeted is resolved by the store for GROUP_SPECIFIC / USER_SPECIFIC /
	// WELCOME codes; GENERAL codes always target everyone.
	Targeted bool `json:"targeted"`
}

// Eligible reports whether the code applies to a subtotal at the given time.
// Returns the first failing rule so the UI can explain the rejection.
func (p PromoCode) Eligible(now time.Time, subtotal decimal.Decimal) (bool, IneligibilityReason) {
	if now.Before(p.ActiveFrom) || now.After(p.ActiveTo) {
		return false, ReasonNotActive
	}
	if p.Kind != PromoGeneral && !p.Targeted {
		return false, ReasonNotTargeted
	}
	if subtotal.LessThan(p.MinimumAmount) {
		return false, ReasonBelowMinimum
	}
	if p.MaxUsagePerUser > 0 && p.UsedByUser >= p.MaxUsagePerUser {
		return false, ReasonUsageExhausted
	}
	return true, ""
}

// Discount returns the amount the code knocks off the subtotal, capped so
// the result never goes negative.
func (p PromoCode) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch {
	case p.Percentage != nil:
		discount = subtotal.Mul(*p.Percentage).Div(decimal.NewFromInt(100))
	case p.FlatAmount != nil:
		discount = *p.FlatAmount
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// BestEligible picks the applicable code with the highest priority.
// Ties break on code string for determinism.
func BestEligible(codes []PromoCode, now time.Time, subtotal decimal.Decimal) (PromoCode, bool) {
	var best PromoCode
	found := false
	for _, code := range codes {
		if ok, _ := code.Eligible(now, subtotal); !ok {
			continue
		}
		if !found || code.Priority > best.Priority ||
			(code.Priority == best.Priority && code.Code < best.Code) {
			best = code
			found = true
		}
	}
	return best, found
}
