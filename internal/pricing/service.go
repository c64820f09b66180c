package pricing

import (
	"context"
	"sort"
	"time"

	"deskhive/internal/packages"
	"deskhive/internal/promos"
	"deskhive/internal/slots"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditSource interface for the credit ledger (to avoid circular dependency)
type CreditSource interface {
	// SpendableCredit returns the user's active credit, or nil when none
	SpendableCredit(ctx context.Context, userID uuid.UUID) (*CreditInstrument, error)
}

// QuoteInput describes a candidate booking to price
type QuoteInput struct {
	UserID     uuid.UUID
	Window     slots.ReservationWindow
	Method     PaymentMethod
	PromoCode  string
	UsePackage bool
	UseCredit  bool
}

// Service interface defines the contract for pricing operations
type Service interface {
	Quote(ctx context.Context, input QuoteInput, now time.Time) (*Invoice, error)
}

type service struct {
	resolver     *Resolver
	passes       packages.Service
	promoChecker promos.EligibilityChecker
	credits      CreditSource
	feeSettings  *FeeSettingsProvider
	baseRate     decimal.Decimal
}

// NewService creates a new pricing service instance
func NewService(resolver *Resolver, passes packages.Service, promoChecker promos.EligibilityChecker,
	credits CreditSource, feeSettings *FeeSettingsProvider, baseRate decimal.Decimal) Service {
	return &service{
		resolver:     resolver,
		passes:       passes,
		promoChecker: promoChecker,
		credits:      credits,
		feeSettings:  feeSettings,
		baseRate:     baseRate,
	}
}

// Quote prices a validated window. Instrument lookups that fail degrade
// the quote rather than failing it; only a zero-length window is an error.
func (s *service) Quote(ctx context.Context, input QuoteInput, now time.Time) (*Invoice, error) {
	hours := input.Window.Duration().Hours() * float64(len(input.Window.SeatNumbers))

	var inst Instruments
	var lookupFailures []Degradation

	if input.UsePackage {
		pass, err := s.pickPass(ctx, input.UserID, now)
		if err != nil {
			lookupFailures = append(lookupFailures, Degradation{
				Instrument: InstrumentPackage,
				Reason:     "packages unavailable",
			})
		} else {
			inst.Package = pass
		}
	}

	if input.PromoCode != "" {
		promo, err := s.promoChecker.CheckPromoEligibility(ctx, input.UserID, input.PromoCode)
		if err != nil {
			lookupFailures = append(lookupFailures, Degradation{
				Instrument: InstrumentPromo,
				Reason:     "promo lookup unavailable",
			})
		} else {
			inst.Promo = promo
		}
	}

	if input.UseCredit {
		credit, err := s.credits.SpendableCredit(ctx, input.UserID)
		if err != nil {
			lookupFailures = append(lookupFailures, Degradation{
				Instrument: InstrumentCredit,
				Reason:     "credit ledger unavailable",
			})
		} else {
			inst.Credit = credit
		}
	}

	resolution := s.resolver.Resolve(s.baseRate, hours, inst, now)
	settings := s.feeSettings.Current(ctx)

	invoice := BuildInvoice(resolution, input.Method, settings)
	invoice.Degradations = append(lookupFailures, invoice.Degradations...)
	return &invoice, nil
}

// pickPass selects the usable pass that expires soonest, so bundles are
// spent before they lapse. Returns nil when the user has none.
func (s *service) pickPass(ctx context.Context, userID uuid.UUID, now time.Time) (*packages.PackagePass, error) {
	usable, err := s.passes.UsablePasses(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if len(usable) == 0 {
		return nil, nil
	}

	sort.Slice(usable, func(i, j int) bool {
		return usable[i].ExpiresAt.Before(usable[j].ExpiresAt)
	})
	return &usable[0], nil
}
