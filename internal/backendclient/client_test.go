package backendclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deskhive/internal/bookings"
	"deskhive/internal/shared/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(config.BackendConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
	return client, server
}

func TestBookedSeats(t *testing.T) {
	var gotPath, gotKey string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		assert.Equal(t, "raffles-place", r.URL.Query().Get("location"))
		json.NewEncoder(w).Encode(map[string]interface{}{"seats": []string{"A1", "B2"}})
	}))
	defer server.Close()

	seats, err := client.BookedSeats(context.Background(), "raffles-place",
		time.Now(), time.Now().Add(2*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, seats)
	assert.Equal(t, "/api/internal/bookings/seats", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestCreateBooking(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var input bookings.CreateBookingInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "raffles-place", input.Location)

		json.NewEncoder(w).Encode(bookings.Booking{
			Reference: "BK-1001",
			Location:  input.Location,
			Status:    input.Status,
			Total:     input.Total,
		})
	}))
	defer server.Close()

	booking, err := client.CreateBooking(context.Background(), bookings.CreateBookingInput{
		UserID:   uuid.New(),
		Location: "raffles-place",
		Status:   bookings.StatusPendingPayment,
		Total:    decimal.RequireFromString("7.70"),
	})

	require.NoError(t, err)
	assert.Equal(t, "BK-1001", booking.Reference)
	assert.True(t, booking.Total.Equal(decimal.RequireFromString("7.70")))
}

func TestUserPackages(t *testing.T) {
	userID := uuid.New()
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/internal/users/"+userID.String()+"/packages", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"packages": []map[string]interface{}{
				{"name": "Half-Day 10", "kind": "HALF_DAY", "remaining_count": 4},
			},
		})
	}))
	defer server.Close()

	passes, err := client.UserPackages(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, passes, 1)
	assert.Equal(t, "Half-Day 10", passes[0].Name)
	assert.Equal(t, 4, passes[0].RemainingCount)
}

func TestCheckPromoEligibilityNotFound(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := client.CheckPromoEligibility(context.Background(), uuid.New(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentFeeSettings(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"card_fee_percentage":    "4.5",
			"paynow_flat_fee":        "0.25",
			"paynow_waive_threshold": "12",
		})
	}))
	defer server.Close()

	settings, err := client.PaymentFeeSettings(context.Background())

	require.NoError(t, err)
	assert.True(t, settings.CardFeePercentage.Equal(decimal.RequireFromString("4.5")))
	assert.True(t, settings.PaynowFlatFee.Equal(decimal.RequireFromString("0.25")))
}

func TestStoreErrorSurfacesMessage(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "store on fire"})
	}))
	defer server.Close()

	_, err := client.BookedSeats(context.Background(), "raffles-place", time.Now(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store on fire")
}
