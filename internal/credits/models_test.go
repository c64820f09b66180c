package credits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreCreditRemaining(t *testing.T) {
	credit := StoreCredit{Amount: money("20.00")}
	assert.True(t, credit.Remaining().Equal(money("20.00")))

	credit.Usages = []CreditUsage{
		{Amount: money("15.00")},
	}
	assert.True(t, credit.Remaining().Equal(money("5.00")))

	credit.Usages = append(credit.Usages, CreditUsage{Amount: money("5.00")})
	assert.True(t, credit.Remaining().IsZero())
}

func TestStoreCreditSpendable(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	active := StoreCredit{Status: CreditActive, ExpiresAt: now.AddDate(0, 0, 5)}
	assert.True(t, active.Spendable(now))

	used := StoreCredit{Status: CreditUsed, ExpiresAt: now.AddDate(0, 0, 5)}
	assert.False(t, used.Spendable(now))

	lapsed := StoreCredit{Status: CreditActive, ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, lapsed.Spendable(now))

	deadline := StoreCredit{Status: CreditActive, ExpiresAt: now}
	assert.False(t, deadline.Spendable(now), "a credit expiring exactly now is no longer spendable")
}

func TestRefundDecided(t *testing.T) {
	assert.False(t, (&RefundTransaction{Status: RefundRequested}).Decided())
	assert.True(t, (&RefundTransaction{Status: RefundApproved}).Decided())
	assert.True(t, (&RefundTransaction{Status: RefundRejected}).Decided())
}
