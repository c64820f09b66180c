package database

import (
	"deskhive/internal/credits"
	"deskhive/internal/payments"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&credits.RefundTransaction{},
		&credits.StoreCredit{},
		&credits.CreditUsage{},
		&payments.PaymentAttempt{},
	)
}
