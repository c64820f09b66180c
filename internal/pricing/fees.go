package pricing

import (
	"github.com/shopspring/decimal"
)

// Built-in fee defaults, used when the remote store cannot be reached
var (
	defaultCardFeePercentage    = decimal.NewFromInt(5)
	defaultPaynowFlatFee        = decimal.RequireFromString("0.20")
	defaultPaynowWaiveThreshold = decimal.NewFromInt(10)
)

// DefaultFeeSettings returns the built-in fee schedule
func DefaultFeeSettings() FeeSettings {
	return FeeSettings{
		CardFeePercentage:    defaultCardFeePercentage,
		PaynowFlatFee:        defaultPaynowFlatFee,
		PaynowWaiveThreshold: defaultPaynowWaiveThreshold,
	}
}

// ComputeFee returns the payment processing fee for a subtotal.
//
// CARD passes through a percentage of the amount charged. PAYNOW costs a
// flat fee on small transactions and is free above the waive threshold.
// The fee is computed on the post-discount amount, never the raw subtotal.
func ComputeFee(amountOwed decimal.Decimal, method PaymentMethod, settings FeeSettings) decimal.Decimal {
	if amountOwed.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	switch method {
	case MethodCard:
		return amountOwed.Mul(settings.CardFeePercentage).Div(decimal.NewFromInt(100))
	case MethodPaynow:
		if amountOwed.LessThan(settings.PaynowWaiveThreshold) {
			return settings.PaynowFlatFee
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
