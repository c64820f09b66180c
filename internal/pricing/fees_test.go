package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeFeePaynow(t *testing.T) {
	settings := DefaultFeeSettings()

	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"small transaction pays flat fee", "9.99", "0.20"},
		{"threshold exactly waives fee", "10.00", "0"},
		{"large transaction free", "50.00", "0"},
		{"tiny transaction pays flat fee", "0.50", "0.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := ComputeFee(money(tt.amount), MethodPaynow, settings)
			assert.True(t, fee.Equal(money(tt.want)), "got %s want %s", fee, tt.want)
		})
	}
}

func TestComputeFeeCard(t *testing.T) {
	settings := DefaultFeeSettings()

	fee := ComputeFee(money("100.00"), MethodCard, settings)
	assert.True(t, fee.Equal(money("5.00")), "got %s", fee)

	fee = ComputeFee(money("7.50"), MethodCard, settings)
	assert.True(t, fee.Equal(money("0.375")), "fee stays full precision until the invoice, got %s", fee)
}

func TestComputeFeeZeroOwed(t *testing.T) {
	settings := DefaultFeeSettings()

	// A fully discounted booking charges nothing, including fees
	assert.True(t, ComputeFee(decimal.Zero, MethodPaynow, settings).IsZero())
	assert.True(t, ComputeFee(decimal.Zero, MethodCard, settings).IsZero())
}

func TestInvoiceRoundsOnceAtTheEnd(t *testing.T) {
	res := Resolution{
		BillableHours: 1.5,
		Subtotal:      money("7.50"),
		PromoDiscount: decimal.Zero,
		AmountOwed:    money("7.50"),
	}

	invoice := BuildInvoice(res, MethodPaynow, DefaultFeeSettings())
	assert.True(t, invoice.Fee.Equal(money("0.20")), "got fee %s", invoice.Fee)
	assert.True(t, invoice.Total.Equal(money("7.70")), "got total %s", invoice.Total)
}

func TestInvoiceCardTotals(t *testing.T) {
	res := Resolution{
		BillableHours: 20,
		Subtotal:      money("100.00"),
		PromoDiscount: decimal.Zero,
		AmountOwed:    money("100.00"),
	}

	invoice := BuildInvoice(res, MethodCard, DefaultFeeSettings())
	assert.True(t, invoice.Fee.Equal(money("5.00")))
	assert.True(t, invoice.Total.Equal(money("105.00")))
}
