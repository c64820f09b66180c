package pricing

import (
	"time"

	"deskhive/internal/packages"
	"deskhive/internal/promos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Instruments are the discount sources a user brings to a booking.
// Any of them may be nil.
type Instruments struct {
	Package *packages.PackagePass
	Promo   *promos.PromoCode
	Credit  *CreditInstrument
}

// Resolution is the pre-fee outcome of applying discount instruments in
// priority order: package, then promo, then store credit.
type Resolution struct {
	BillableHours float64            `json:"billable_hours"`
	CoveredHours  float64            `json:"covered_hours"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	PromoCode     string             `json:"promo_code,omitempty"`
	PromoDiscount decimal.Decimal    `json:"promo_discount"`
	CreditIntent  *CreditUsageIntent `json:"credit_intent,omitempty"`
	AmountOwed    decimal.Decimal    `json:"amount_owed"`
	Degradations  []Degradation      `json:"degradations,omitempty"`
}

// Resolver applies discount instruments to a base charge
type Resolver struct {
	allowPromoWithPackage bool
}

// NewResolver creates a resolver with the configured combination policy
func NewResolver(allowPromoWithPackage bool) *Resolver {
	return &Resolver{allowPromoWithPackage: allowPromoWithPackage}
}

// Resolve prices hours at the base rate and applies instruments in order.
//
// A failing instrument degrades to the next one instead of failing the
// whole invoice: a spent package bills all hours, an ineligible promo
// applies no discount, an expired credit covers nothing. Each skip is
// recorded so the response can explain the final price.
func (r *Resolver) Resolve(baseHourlyRate decimal.Decimal, hours float64, inst Instruments, now time.Time) Resolution {
	res := Resolution{
		BillableHours: hours,
		PromoDiscount: decimal.Zero,
	}

	// Package pass: covered hours are free, excess bills at the base rate
	packageApplied := false
	if inst.Package != nil {
		if inst.Package.Usable(now) {
			res.CoveredHours = inst.Package.CoveredHours(hours)
			res.BillableHours = hours - res.CoveredHours
			packageApplied = true
		} else {
			res.Degradations = append(res.Degradations, Degradation{
				Instrument: InstrumentPackage,
				Reason:     "pass exhausted or expired",
			})
		}
	}

	res.Subtotal = baseHourlyRate.Mul(decimal.NewFromFloat(res.BillableHours))

	// Promo: highest-priority eligible code against the pre-credit subtotal
	if inst.Promo != nil {
		switch {
		case packageApplied && !r.allowPromoWithPackage:
			res.Degradations = append(res.Degradations, Degradation{
				Instrument: InstrumentPromo,
				Reason:     "promo cannot combine with a package pass",
			})
		default:
			if ok, reason := inst.Promo.Eligible(now, res.Subtotal); ok {
				res.PromoCode = inst.Promo.Code
				res.PromoDiscount = inst.Promo.Discount(res.Subtotal)
			} else {
				res.Degradations = append(res.Degradations, Degradation{
					Instrument: InstrumentPromo,
					Reason:     string(reason),
				})
			}
		}
	}

	owed := res.Subtotal.Sub(res.PromoDiscount)
	if owed.LessThan(decimal.Zero) {
		owed = decimal.Zero
	}

	// Store credit last, capped at the amount still owed
	if inst.Credit != nil {
		switch {
		case inst.Credit.Expired(now):
			res.Degradations = append(res.Degradations, Degradation{
				Instrument: InstrumentCredit,
				Reason:     "credit expired",
			})
		case inst.Credit.Balance.LessThanOrEqual(decimal.Zero):
			res.Degradations = append(res.Degradations, Degradation{
				Instrument: InstrumentCredit,
				Reason:     "credit balance empty",
			})
		case owed.GreaterThan(decimal.Zero):
			applied := inst.Credit.Balance
			if applied.GreaterThan(owed) {
				applied = owed
			}
			res.CreditIntent = &CreditUsageIntent{
				CreditID: inst.Credit.ID,
				Amount:   applied,
			}
			owed = owed.Sub(applied)
		}
	}

	res.AmountOwed = owed
	return res
}

// CreditApplied returns how much store credit the resolution spends
func (r Resolution) CreditApplied() decimal.Decimal {
	if r.CreditIntent == nil {
		return decimal.Zero
	}
	return r.CreditIntent.Amount
}

// CreditID returns the credit the resolution draws on, or uuid.Nil
func (r Resolution) CreditID() uuid.UUID {
	if r.CreditIntent == nil {
		return uuid.Nil
	}
	return r.CreditIntent.CreditID
}
