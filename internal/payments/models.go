package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle of a gateway checkout
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PaymentAttempt is one checkout created at the gateway for a booking.
// Reference is the gateway's idempotency key: redirect and webhook
// deliveries for the same reference reconcile exactly once.
type PaymentAttempt struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Reference    string          `gorm:"uniqueIndex;not null" json:"reference"`
	BookingRef   string          `gorm:"index;not null" json:"booking_ref"`
	UserID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency     string          `gorm:"not null" json:"currency"`
	Method       string          `gorm:"not null" json:"method"`
	Status       PaymentStatus   `gorm:"not null;default:'PENDING'" json:"status"`
	CreditID     *uuid.UUID      `gorm:"type:uuid" json:"credit_id,omitempty"`
	CreditAmount decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"credit_amount"`
	CheckoutURL  string          `gorm:"-" json:"checkout_url,omitempty"`
	ReconciledAt *time.Time      `json:"reconciled_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}

// Reconciled reports whether a terminal status has been recorded
func (p *PaymentAttempt) Reconciled() bool {
	return p.Status != PaymentPending
}
