package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates the checkout methods the gateway offers
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "CARD"
	MethodPaynow PaymentMethod = "PAYNOW"
)

// FeeSettings are the gateway pass-through fee knobs served by the remote
// booking store. Defaults apply when the store is unreachable.
type FeeSettings struct {
	CardFeePercentage    decimal.Decimal `json:"card_fee_percentage"`
	PaynowFlatFee        decimal.Decimal `json:"paynow_flat_fee"`
	PaynowWaiveThreshold decimal.Decimal `json:"paynow_waive_threshold"`
}

// CreditInstrument is the spendable view of a user's store credit.
// The ledger owns the full state machine; pricing only needs the balance.
type CreditInstrument struct {
	ID        uuid.UUID       `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Expired reports whether the credit can no longer be spent
func (c CreditInstrument) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// CreditUsageIntent records how much of which credit an invoice wants to
// spend. The ledger turns intents into usage rows when payment settles.
type CreditUsageIntent struct {
	CreditID uuid.UUID       `json:"credit_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// Degradation records a discount instrument that was skipped instead of
// failing the invoice.
type Degradation struct {
	Instrument string `json:"instrument"`
	Reason     string `json:"reason"`
}

// Degradation instrument names
const (
	InstrumentPackage = "PACKAGE"
	InstrumentPromo   = "PROMO"
	InstrumentCredit  = "CREDIT"
)
