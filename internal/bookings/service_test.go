package bookings

import (
	"context"
	"testing"
	"time"

	"deskhive/internal/availability"
	"deskhive/internal/payments"
	"deskhive/internal/pricing"
	"deskhive/internal/slots"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) BookedSeats(ctx context.Context, location string, startAt, endAt time.Time) ([]string, error) {
	args := m.Called(ctx, location, startAt, endAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

type mockPricing struct {
	mock.Mock
}

func (m *mockPricing) Quote(ctx context.Context, input pricing.QuoteInput, now time.Time) (*pricing.Invoice, error) {
	args := m.Called(ctx, input, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Invoice), args.Error(1)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Initiate(ctx context.Context, input payments.InitiateInput) (*payments.PaymentAttempt, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PaymentAttempt), args.Error(1)
}

func (m *mockPayments) Reconcile(ctx context.Context, reference string, succeeded bool) (*payments.PaymentAttempt, bool, error) {
	args := m.Called(ctx, reference, succeeded)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*payments.PaymentAttempt), args.Bool(1), args.Error(2)
}

type mockCreditConsumer struct {
	mock.Mock
}

func (m *mockCreditConsumer) Consume(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) error {
	return m.Called(ctx, creditID, amount, bookingRef).Error(0)
}

type recordingNotifier struct {
	confirmed []string
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, _ uuid.UUID, bookingRef string) {
	n.confirmed = append(n.confirmed, bookingRef)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func futureWindow() slots.ReservationWindow {
	start := time.Now().Truncate(15 * time.Minute).Add(48 * time.Hour)
	return slots.ReservationWindow{
		Location:    "raffles-place",
		StartAt:     start,
		EndAt:       start.Add(2 * time.Hour),
		SeatNumbers: []string{"A1"},
	}
}

func TestCreateBookingOpensCheckout(t *testing.T) {
	store := new(mockStore)
	pricingSvc := new(mockPricing)
	paymentsSvc := new(mockPayments)
	notifier := &recordingNotifier{}
	userID := uuid.New()
	window := futureWindow()

	store.On("BookedSeats", mock.Anything, "raffles-place", mock.Anything, mock.Anything).
		Return([]string{"B1"}, nil)
	pricingSvc.On("Quote", mock.Anything, mock.Anything, mock.Anything).
		Return(&pricing.Invoice{
			Total:         money("7.70"),
			PaymentMethod: pricing.MethodPaynow,
		}, nil)
	store.On("CreateBooking", mock.Anything, mock.MatchedBy(func(input CreateBookingInput) bool {
		return input.Status == StatusPendingPayment && input.Total.Equal(money("7.70"))
	})).Return(&Booking{Reference: "BK-1001", UserID: userID, Location: "raffles-place"}, nil)
	paymentsSvc.On("Initiate", mock.Anything, mock.MatchedBy(func(input payments.InitiateInput) bool {
		return input.BookingRef == "BK-1001" && input.Amount.Equal(money("7.70")) && input.CreditIntent == nil
	})).Return(&payments.PaymentAttempt{Reference: "ref-abc", CheckoutURL: "https://pay/abc"}, nil)

	svc := NewService(store, pricingSvc, paymentsSvc, nil, notifier, nil, slots.Options{}, logger.New())
	result, err := svc.Create(context.Background(), CreateInput{
		UserID: userID,
		Window: window,
		Method: pricing.MethodPaynow,
	})

	require.NoError(t, err)
	assert.Equal(t, "BK-1001", result.Booking.Reference)
	assert.Equal(t, "https://pay/abc", result.CheckoutURL)
	assert.Empty(t, notifier.confirmed, "confirmation waits for settlement")
	store.AssertExpectations(t)
	paymentsSvc.AssertExpectations(t)
}

func TestCreateBookingRejectsBadWindow(t *testing.T) {
	window := futureWindow()
	window.EndAt = window.StartAt.Add(30 * time.Minute)

	svc := NewService(new(mockStore), new(mockPricing), new(mockPayments), nil, nil, nil, slots.Options{}, logger.New())
	_, err := svc.Create(context.Background(), CreateInput{Window: window, Method: pricing.MethodCard})

	var verr *slots.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, slots.KindTooShort, verr.Kind)
}

func TestCreateBookingRejectsTakenSeats(t *testing.T) {
	store := new(mockStore)
	store.On("BookedSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"A1"}, nil)

	svc := NewService(store, new(mockPricing), new(mockPayments), nil, nil, nil, slots.Options{}, logger.New())
	_, err := svc.Create(context.Background(), CreateInput{
		Window: futureWindow(),
		Method: pricing.MethodCard,
	})

	var conflict *availability.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A1"}, conflict.OverlappingSeats)
	store.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingFullyCoveredConfirmsImmediately(t *testing.T) {
	store := new(mockStore)
	pricingSvc := new(mockPricing)
	paymentsSvc := new(mockPayments)
	credits := new(mockCreditConsumer)
	notifier := &recordingNotifier{}
	userID := uuid.New()
	creditID := uuid.New()

	store.On("BookedSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]string{}, nil)
	pricingSvc.On("Quote", mock.Anything, mock.Anything, mock.Anything).
		Return(&pricing.Invoice{
			Total:         decimal.Zero,
			CreditApplied: money("10.00"),
			CreditID:      creditID,
			PaymentMethod: pricing.MethodPaynow,
		}, nil)
	store.On("CreateBooking", mock.Anything, mock.MatchedBy(func(input CreateBookingInput) bool {
		return input.Status == StatusConfirmed && input.Total.IsZero()
	})).Return(&Booking{Reference: "BK-2002", UserID: userID}, nil)
	credits.On("Consume", mock.Anything, creditID, money("10.00"), "BK-2002").Return(nil)

	svc := NewService(store, pricingSvc, paymentsSvc, credits, notifier, nil, slots.Options{}, logger.New())
	result, err := svc.Create(context.Background(), CreateInput{
		UserID:    userID,
		Window:    futureWindow(),
		Method:    pricing.MethodPaynow,
		UseCredit: true,
	})

	require.NoError(t, err)
	assert.Empty(t, result.CheckoutURL)
	assert.Equal(t, []string{"BK-2002"}, notifier.confirmed)
	credits.AssertExpectations(t)
	paymentsSvc.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything)
}

func TestCreateBookingForwardsCreditIntent(t *testing.T) {
	store := new(mockStore)
	pricingSvc := new(mockPricing)
	paymentsSvc := new(mockPayments)
	creditID := uuid.New()

	store.On("BookedSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]string{}, nil)
	pricingSvc.On("Quote", mock.Anything, mock.Anything, mock.Anything).
		Return(&pricing.Invoice{
			Total:         money("5.20"),
			CreditApplied: money("15.00"),
			CreditID:      creditID,
			PaymentMethod: pricing.MethodPaynow,
		}, nil)
	store.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&Booking{Reference: "BK-3003"}, nil)
	paymentsSvc.On("Initiate", mock.Anything, mock.MatchedBy(func(input payments.InitiateInput) bool {
		return input.CreditIntent != nil &&
			input.CreditIntent.CreditID == creditID &&
			input.CreditIntent.Amount.Equal(money("15.00"))
	})).Return(&payments.PaymentAttempt{CheckoutURL: "https://pay/xyz"}, nil)

	svc := NewService(store, pricingSvc, paymentsSvc, nil, nil, nil, slots.Options{}, logger.New())
	result, err := svc.Create(context.Background(), CreateInput{
		UserID:    uuid.New(),
		Window:    futureWindow(),
		Method:    pricing.MethodPaynow,
		UseCredit: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pay/xyz", result.CheckoutURL)
	paymentsSvc.AssertExpectations(t)
}
