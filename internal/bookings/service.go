package bookings

import (
	"context"
	"fmt"
	"time"

	"deskhive/internal/availability"
	"deskhive/internal/payments"
	"deskhive/internal/pricing"
	"deskhive/internal/slots"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RemoteStore interface for the booking store (to avoid circular dependency)
type RemoteStore interface {
	BookedSeats(ctx context.Context, location string, startAt, endAt time.Time) ([]string, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error)
}

// CreditConsumer interface for the credit ledger, used on zero-total
// bookings that settle without a gateway checkout
type CreditConsumer interface {
	Consume(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) error
}

// Notifier interface for the notification pipeline
type Notifier interface {
	BookingConfirmed(ctx context.Context, userID uuid.UUID, bookingRef string)
}

// CreateInput is a complete booking submission
type CreateInput struct {
	UserID     uuid.UUID
	Window     slots.ReservationWindow
	Method     pricing.PaymentMethod
	PromoCode  string
	UsePackage bool
	UseCredit  bool
	Capacity   int
}

// CreateResult is the outcome of a booking submission. CheckoutURL is
// empty when the invoice total was fully covered and no payment is due.
type CreateResult struct {
	Booking     *Booking         `json:"booking"`
	Invoice     *pricing.Invoice `json:"invoice"`
	CheckoutURL string           `json:"checkout_url,omitempty"`
}

// Service interface defines the contract for booking orchestration
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
}

type service struct {
	store    RemoteStore
	pricing  pricing.Service
	payments payments.Service
	credits  CreditConsumer
	notifier Notifier
	drafts   *DraftStore
	slotOpts slots.Options
	logger   *logger.Logger
}

// NewService creates a new booking orchestration service instance
func NewService(store RemoteStore, pricingSvc pricing.Service, paymentsSvc payments.Service,
	credits CreditConsumer, notifier Notifier, drafts *DraftStore, slotOpts slots.Options,
	log *logger.Logger) Service {
	return &service{
		store:    store,
		pricing:  pricingSvc,
		payments: paymentsSvc,
		credits:  credits,
		notifier: notifier,
		drafts:   drafts,
		slotOpts: slotOpts,
		logger:   log,
	}
}

// Create runs the full booking pipeline: validate the window, gate the
// seats, price the booking, write it to the store, and open a checkout
// for any outstanding total.
func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	now := time.Now()

	window, err := slots.Validate(input.Window, now, s.slotOpts)
	if err != nil {
		return nil, err
	}

	booked, err := s.store.BookedSeats(ctx, window.Location, window.StartAt, window.EndAt)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked seats: %w", err)
	}
	if err := availability.Check(window.SeatNumbers, booked, input.Capacity); err != nil {
		return nil, err
	}

	invoice, err := s.pricing.Quote(ctx, pricing.QuoteInput{
		UserID:     input.UserID,
		Window:     window,
		Method:     input.Method,
		PromoCode:  input.PromoCode,
		UsePackage: input.UsePackage,
		UseCredit:  input.UseCredit,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("failed to price booking: %w", err)
	}

	status := StatusPendingPayment
	if invoice.Total.IsZero() {
		status = StatusConfirmed
	}

	booking, err := s.store.CreateBooking(ctx, CreateBookingInput{
		UserID:        input.UserID,
		Location:      window.Location,
		StartAt:       window.StartAt,
		EndAt:         window.EndAt,
		SeatNumbers:   window.SeatNumbers,
		Status:        status,
		Total:         invoice.Total,
		PaymentMethod: string(input.Method),
		PromoCode:     invoice.PromoCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	result := &CreateResult{Booking: booking, Invoice: invoice}

	if invoice.Total.IsZero() {
		if err := s.settleWithoutPayment(ctx, booking, invoice); err != nil {
			return nil, err
		}
	} else {
		var creditIntent *pricing.CreditUsageIntent
		if invoice.CreditApplied.GreaterThan(decimal.Zero) {
			creditIntent = &pricing.CreditUsageIntent{
				CreditID: invoice.CreditID,
				Amount:   invoice.CreditApplied,
			}
		}

		attempt, err := s.payments.Initiate(ctx, payments.InitiateInput{
			UserID:       input.UserID,
			BookingRef:   booking.Reference,
			Amount:       invoice.Total,
			Method:       string(input.Method),
			CreditIntent: creditIntent,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initiate payment: %w", err)
		}
		result.CheckoutURL = attempt.CheckoutURL
	}

	if s.drafts != nil {
		// Best effort: a stale draft never blocks a finished booking
		_ = s.drafts.Clear(ctx, input.UserID)
	}

	s.logger.LogBookingCreated(ctx, booking.Reference, booking.Location, input.UserID.String())
	return result, nil
}

// settleWithoutPayment confirms a fully-covered booking: credit is drawn
// immediately since no gateway settlement will arrive.
func (s *service) settleWithoutPayment(ctx context.Context, booking *Booking, invoice *pricing.Invoice) error {
	if invoice.CreditApplied.GreaterThan(decimal.Zero) {
		if err := s.credits.Consume(ctx, invoice.CreditID, invoice.CreditApplied, booking.Reference); err != nil {
			return fmt.Errorf("failed to consume credit: %w", err)
		}
	}
	if s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, booking.UserID, booking.Reference)
	}
	return nil
}
