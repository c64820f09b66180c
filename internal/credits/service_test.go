package credits

import (
	"context"
	"testing"
	"time"

	"deskhive/internal/shared/config"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateRefund(ctx context.Context, refund *RefundTransaction) error {
	return m.Called(ctx, refund).Error(0)
}

func (m *mockRepository) FindRefundByID(ctx context.Context, id uuid.UUID) (*RefundTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RefundTransaction), args.Error(1)
}

func (m *mockRepository) HasOutstandingRefund(ctx context.Context, bookingRef string) (bool, error) {
	args := m.Called(ctx, bookingRef)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ListRefundsByUser(ctx context.Context, userID uuid.UUID) ([]RefundTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RefundTransaction), args.Error(1)
}

func (m *mockRepository) ApproveRefund(ctx context.Context, refund *RefundTransaction, credit *StoreCredit) error {
	return m.Called(ctx, refund, credit).Error(0)
}

func (m *mockRepository) UpdateRefund(ctx context.Context, refund *RefundTransaction) error {
	return m.Called(ctx, refund).Error(0)
}

func (m *mockRepository) FindCreditByID(ctx context.Context, id uuid.UUID) (*StoreCredit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoreCredit), args.Error(1)
}

func (m *mockRepository) FindSpendableCredit(ctx context.Context, userID uuid.UUID, now time.Time) (*StoreCredit, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoreCredit), args.Error(1)
}

func (m *mockRepository) ListCreditsByUser(ctx context.Context, userID uuid.UUID) ([]StoreCredit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StoreCredit), args.Error(1)
}

func (m *mockRepository) ConsumeCredit(ctx context.Context, creditID uuid.UUID, amount decimal.Decimal, bookingRef string) (decimal.Decimal, error) {
	args := m.Called(ctx, creditID, amount, bookingRef)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRepository) ExpireCredits(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(repo Repository, autoApprove bool) Service {
	return NewService(repo, nil, config.CreditConfig{
		AutoApprove: autoApprove,
		ExpiryDays:  30,
	}, logger.New())
}

func TestRequestRefundAutoApproves(t *testing.T) {
	repo := new(mockRepository)
	userID := uuid.New()

	repo.On("HasOutstandingRefund", mock.Anything, "BK-1001").Return(false, nil)
	repo.On("CreateRefund", mock.Anything, mock.AnythingOfType("*credits.RefundTransaction")).Return(nil)
	repo.On("ApproveRefund", mock.Anything, mock.AnythingOfType("*credits.RefundTransaction"),
		mock.MatchedBy(func(credit *StoreCredit) bool {
			return credit.Amount.Equal(money("20.00")) && credit.Status == CreditActive
		})).Return(nil)

	svc := newTestService(repo, true)
	refund, err := svc.RequestRefund(context.Background(), userID, "BK-1001", money("20.00"), "plans changed")

	require.NoError(t, err)
	assert.Equal(t, RefundApproved, refund.Status)
	assert.NotNil(t, refund.DecidedAt)
	repo.AssertExpectations(t)
}

func TestRequestRefundManualModeStaysRequested(t *testing.T) {
	repo := new(mockRepository)

	repo.On("HasOutstandingRefund", mock.Anything, "BK-1001").Return(false, nil)
	repo.On("CreateRefund", mock.Anything, mock.AnythingOfType("*credits.RefundTransaction")).Return(nil)

	svc := newTestService(repo, false)
	refund, err := svc.RequestRefund(context.Background(), uuid.New(), "BK-1001", money("20.00"), "")

	require.NoError(t, err)
	assert.Equal(t, RefundRequested, refund.Status)
	repo.AssertNotCalled(t, "ApproveRefund", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestRefundRejectsSecondOutstanding(t *testing.T) {
	repo := new(mockRepository)
	repo.On("HasOutstandingRefund", mock.Anything, "BK-1001").Return(true, nil)

	svc := newTestService(repo, true)
	_, err := svc.RequestRefund(context.Background(), uuid.New(), "BK-1001", money("20.00"), "")

	assert.ErrorIs(t, err, ErrOutstandingRefund)
	repo.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything)
}

func TestRequestRefundRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(new(mockRepository), true)

	_, err := svc.RequestRefund(context.Background(), uuid.New(), "BK-1001", decimal.Zero, "")
	assert.Error(t, err)

	_, err = svc.RequestRefund(context.Background(), uuid.New(), "BK-1001", money("-5.00"), "")
	assert.Error(t, err)
}

func TestApproveMintsCreditWithThirtyDayExpiry(t *testing.T) {
	repo := new(mockRepository)
	refundID := uuid.New()
	userID := uuid.New()

	refund := &RefundTransaction{
		ID:         refundID,
		BookingRef: "BK-1001",
		UserID:     userID,
		Amount:     money("20.00"),
		Status:     RefundRequested,
	}
	repo.On("FindRefundByID", mock.Anything, refundID).Return(refund, nil)
	repo.On("ApproveRefund", mock.Anything, refund, mock.AnythingOfType("*credits.StoreCredit")).Return(nil)

	svc := newTestService(repo, false)
	credit, err := svc.Approve(context.Background(), refundID)

	require.NoError(t, err)
	assert.True(t, credit.Amount.Equal(money("20.00")), "credit amount equals refund amount")
	assert.Equal(t, CreditActive, credit.Status)
	assert.Equal(t, userID, credit.UserID)
	assert.WithinDuration(t, credit.IssuedAt.AddDate(0, 0, 30), credit.ExpiresAt, time.Second)
}

func TestApproveDecidedRefundFails(t *testing.T) {
	repo := new(mockRepository)
	refundID := uuid.New()
	decided := time.Now()

	repo.On("FindRefundByID", mock.Anything, refundID).Return(&RefundTransaction{
		ID:        refundID,
		Status:    RefundRejected,
		DecidedAt: &decided,
	}, nil)

	svc := newTestService(repo, false)
	_, err := svc.Approve(context.Background(), refundID)

	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestRejectFlipsStatus(t *testing.T) {
	repo := new(mockRepository)
	refundID := uuid.New()

	refund := &RefundTransaction{ID: refundID, Status: RefundRequested}
	repo.On("FindRefundByID", mock.Anything, refundID).Return(refund, nil)
	repo.On("UpdateRefund", mock.Anything, refund).Return(nil)

	svc := newTestService(repo, false)
	rejected, err := svc.Reject(context.Background(), refundID)

	require.NoError(t, err)
	assert.Equal(t, RefundRejected, rejected.Status)
	assert.NotNil(t, rejected.DecidedAt)
}

func TestConsumePartialDraw(t *testing.T) {
	repo := new(mockRepository)
	creditID := uuid.New()

	credit := &StoreCredit{
		ID:        creditID,
		Amount:    money("20.00"),
		Status:    CreditActive,
		ExpiresAt: time.Now().AddDate(0, 0, 10),
	}
	repo.On("FindCreditByID", mock.Anything, creditID).Return(credit, nil)
	repo.On("ConsumeCredit", mock.Anything, creditID, money("15.00"), "BK-2002").
		Return(money("5.00"), nil)

	svc := newTestService(repo, false)
	err := svc.Consume(context.Background(), creditID, money("15.00"), "BK-2002")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestConsumeExpiredCreditFails(t *testing.T) {
	repo := new(mockRepository)
	creditID := uuid.New()

	repo.On("FindCreditByID", mock.Anything, creditID).Return(&StoreCredit{
		ID:        creditID,
		Amount:    money("20.00"),
		Status:    CreditActive,
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)

	svc := newTestService(repo, false)
	err := svc.Consume(context.Background(), creditID, money("5.00"), "BK-2002")

	assert.ErrorIs(t, err, ErrCreditNotSpendable)
	repo.AssertNotCalled(t, "ConsumeCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSpendableCreditMapsToInstrument(t *testing.T) {
	repo := new(mockRepository)
	userID := uuid.New()
	creditID := uuid.New()
	expires := time.Now().AddDate(0, 0, 12)

	repo.On("FindSpendableCredit", mock.Anything, userID, mock.AnythingOfType("time.Time")).
		Return(&StoreCredit{
			ID:        creditID,
			Amount:    money("20.00"),
			Status:    CreditActive,
			ExpiresAt: expires,
			Usages: []CreditUsage{
				{Amount: money("15.00")},
			},
		}, nil)

	svc := newTestService(repo, false)
	instrument, err := svc.SpendableCredit(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, instrument)
	assert.Equal(t, creditID, instrument.ID)
	assert.True(t, instrument.Balance.Equal(money("5.00")), "balance is amount minus usages, got %s", instrument.Balance)
	assert.Equal(t, expires, instrument.ExpiresAt)
}

func TestSpendableCreditNoneIsNil(t *testing.T) {
	repo := new(mockRepository)
	repo.On("FindSpendableCredit", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ErrCreditNotFound)

	svc := newTestService(repo, false)
	instrument, err := svc.SpendableCredit(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, instrument)
}

func TestSweepExpiry(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ExpireCredits", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	svc := newTestService(repo, false)
	count, err := svc.SweepExpiry(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
