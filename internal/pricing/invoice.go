package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the final, rounded charge presented to the user.
// All intermediate math stays full precision; rounding to cents happens
// exactly once, here.
type Invoice struct {
	BillableHours float64         `json:"billable_hours"`
	CoveredHours  float64         `json:"covered_hours"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PromoCode     string          `json:"promo_code,omitempty"`
	PromoDiscount decimal.Decimal `json:"promo_discount"`
	CreditApplied decimal.Decimal `json:"credit_applied"`
	CreditID      uuid.UUID       `json:"credit_id,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Fee           decimal.Decimal `json:"fee"`
	Total         decimal.Decimal `json:"total"`
	Degradations  []Degradation   `json:"degradations,omitempty"`
}

// BuildInvoice combines a resolution with the payment fee into the final
// charge, rounding every money field to two decimal places.
func BuildInvoice(res Resolution, method PaymentMethod, settings FeeSettings) Invoice {
	fee := ComputeFee(res.AmountOwed, method, settings)
	total := res.AmountOwed.Add(fee)

	return Invoice{
		BillableHours: res.BillableHours,
		CoveredHours:  res.CoveredHours,
		Subtotal:      res.Subtotal.Round(2),
		PromoCode:     res.PromoCode,
		PromoDiscount: res.PromoDiscount.Round(2),
		CreditApplied: res.CreditApplied().Round(2),
		CreditID:      res.CreditID(),
		PaymentMethod: method,
		Fee:           fee.Round(2),
		Total:         total.Round(2),
		Degradations:  res.Degradations,
	}
}
