package promos

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promoNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func pct(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func flat(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func activeCode(code string, priority int) PromoCode {
	return PromoCode{
		Code:       code,
		Kind:       PromoGeneral,
		Percentage: pct(10),
		ActiveFrom: promoNow.AddDate(0, -1, 0),
		ActiveTo:   promoNow.AddDate(0, 1, 0),
		Priority:   priority,
	}
}

func TestPromoEligibility(t *testing.T) {
	subtotal := decimal.RequireFromString("50.00")

	tests := []struct {
		name       string
		mutate     func(*PromoCode)
		wantOK     bool
		wantReason IneligibilityReason
	}{
		{"active general code", func(p *PromoCode) {}, true, ""},
		{"not yet active", func(p *PromoCode) { p.ActiveFrom = promoNow.Add(time.Hour) }, false, ReasonNotActive},
		{"already ended", func(p *PromoCode) { p.ActiveTo = promoNow.Add(-time.Hour) }, false, ReasonNotActive},
		{"below minimum spend", func(p *PromoCode) { p.MinimumAmount = decimal.RequireFromString("80.00") }, false, ReasonBelowMinimum},
		{"usage cap reached", func(p *PromoCode) { p.MaxUsagePerUser = 2; p.UsedByUser = 2 }, false, ReasonUsageExhausted},
		{"usage under cap", func(p *PromoCode) { p.MaxUsagePerUser = 2; p.UsedByUser = 1 }, true, ""},
		{"untargeted user-specific code", func(p *PromoCode) { p.Kind = PromoUserSpecific; p.Targeted = false }, false, ReasonNotTargeted},
		{"targeted welcome code", func(p *PromoCode) { p.Kind = PromoWelcome; p.Targeted = true }, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := activeCode("SAVE10", 1)
			tt.mutate(&code)
			ok, reason := code.Eligible(promoNow, subtotal)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestPromoDiscount(t *testing.T) {
	subtotal := decimal.RequireFromString("50.00")

	percentage := activeCode("SAVE10", 1)
	assert.True(t, percentage.Discount(subtotal).Equal(decimal.RequireFromString("5.00")))

	flatCode := activeCode("FLAT8", 1)
	flatCode.Percentage = nil
	flatCode.FlatAmount = flat("8.00")
	assert.True(t, flatCode.Discount(subtotal).Equal(decimal.RequireFromString("8.00")))

	// Flat discounts never push the total negative
	bigFlat := activeCode("FLAT99", 1)
	bigFlat.Percentage = nil
	bigFlat.FlatAmount = flat("99.00")
	assert.True(t, bigFlat.Discount(subtotal).Equal(subtotal))
}

func TestBestEligiblePicksHighestPriority(t *testing.T) {
	subtotal := decimal.RequireFromString("50.00")

	low := activeCode("LOW", 1)
	high := activeCode("HIGH", 5)
	expired := activeCode("DEAD", 9)
	expired.ActiveTo = promoNow.Add(-time.Hour)

	best, found := BestEligible([]PromoCode{low, expired, high}, promoNow, subtotal)
	require.True(t, found)
	assert.Equal(t, "HIGH", best.Code)
}

func TestBestEligibleBreaksTiesOnCode(t *testing.T) {
	subtotal := decimal.RequireFromString("50.00")

	b := activeCode("BBB", 3)
	a := activeCode("AAA", 3)

	best, found := BestEligible([]PromoCode{b, a}, promoNow, subtotal)
	require.True(t, found)
	assert.Equal(t, "AAA", best.Code)
}

func TestBestEligibleNoneApplicable(t *testing.T) {
	expired := activeCode("DEAD", 1)
	expired.ActiveTo = promoNow.Add(-time.Hour)

	_, found := BestEligible([]PromoCode{expired}, promoNow, decimal.RequireFromString("50.00"))
	assert.False(t, found)
}
