package credits

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundStatus is the refund request lifecycle
type RefundStatus string

const (
	RefundRequested RefundStatus = "REQUESTED"
	RefundApproved  RefundStatus = "APPROVED"
	RefundRejected  RefundStatus = "REJECTED"
)

// CreditStatus is the store credit lifecycle
type CreditStatus string

const (
	CreditActive  CreditStatus = "ACTIVE"
	CreditUsed    CreditStatus = "USED"
	CreditExpired CreditStatus = "EXPIRED"
)

// RefundTransaction is a user's request to convert a cancelled booking
// into store credit. At most one undecided request per booking.
type RefundTransaction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingRef string          `gorm:"index;not null" json:"booking_ref"`
	UserID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Reason     string          `json:"reason,omitempty"`
	Status     RefundStatus    `gorm:"not null;default:'REQUESTED'" json:"status"`
	DecidedAt  *time.Time      `json:"decided_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (RefundTransaction) TableName() string {
	return "refund_transactions"
}

// Decided reports whether the request has a terminal status
func (r *RefundTransaction) Decided() bool {
	return r.Status != RefundRequested
}

// StoreCredit is minted when a refund is approved. It is spent through
// CreditUsage rows; the sum of usages never exceeds Amount.
type StoreCredit struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	RefundID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"refund_id"`
	BookingRef string          `gorm:"not null" json:"booking_ref"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status     CreditStatus    `gorm:"not null;default:'ACTIVE';index" json:"status"`
	IssuedAt   time.Time       `gorm:"not null" json:"issued_at"`
	ExpiresAt  time.Time       `gorm:"not null;index" json:"expires_at"`
	Usages     []CreditUsage   `gorm:"foreignKey:CreditID" json:"usages,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (StoreCredit) TableName() string {
	return "store_credits"
}

// Remaining returns the unspent balance
func (c *StoreCredit) Remaining() decimal.Decimal {
	used := decimal.Zero
	for _, usage := range c.Usages {
		used = used.Add(usage.Amount)
	}
	return c.Amount.Sub(used)
}

// Spendable reports whether the credit can cover a charge right now
func (c *StoreCredit) Spendable(now time.Time) bool {
	return c.Status == CreditActive && c.ExpiresAt.After(now)
}

// CreditUsage records one draw against a credit, tied to the booking it paid for
type CreditUsage struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreditID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"credit_id"`
	BookingRef string          `gorm:"not null" json:"booking_ref"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TableName overrides the table name
func (CreditUsage) TableName() string {
	return "credit_usages"
}
