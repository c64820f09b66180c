package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deskhive/internal/bookings"
	"deskhive/internal/packages"
	"deskhive/internal/pricing"
	"deskhive/internal/promos"
	"deskhive/internal/shared/config"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the store has no record for the request
var ErrNotFound = errors.New("not found in booking store")

// Client talks to the remote booking store over JSON/HTTP.
// It implements the store-facing interfaces the feature packages declare.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a booking-store client from config
func New(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// BookedSeats returns seats with bookings overlapping the window.
// The store does the time-overlap filtering.
func (c *Client) BookedSeats(ctx context.Context, location string, startAt, endAt time.Time) ([]string, error) {
	query := url.Values{}
	query.Set("location", location)
	query.Set("start_at", startAt.Format(time.RFC3339))
	query.Set("end_at", endAt.Format(time.RFC3339))

	var payload struct {
		Seats []string `json:"seats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/internal/bookings/seats", query, nil, &payload); err != nil {
		return nil, fmt.Errorf("booked seats: %w", err)
	}
	return payload.Seats, nil
}

// CreateBooking writes a booking to the store. The store's transactional
// insert is the final word on seat conflicts.
func (c *Client) CreateBooking(ctx context.Context, input bookings.CreateBookingInput) (*bookings.Booking, error) {
	var booking bookings.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/api/internal/bookings", nil, input, &booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &booking, nil
}

// UserPackages returns the package passes the user owns
func (c *Client) UserPackages(ctx context.Context, userID uuid.UUID) ([]packages.PackagePass, error) {
	var payload struct {
		Packages []packages.PackagePass `json:"packages"`
	}
	path := "/api/internal/users/" + userID.String() + "/packages"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("user packages: %w", err)
	}
	return payload.Packages, nil
}

// CheckPromoEligibility fetches a promo code with per-user usage and
// targeting resolved by the store. Unknown codes return ErrNotFound.
func (c *Client) CheckPromoEligibility(ctx context.Context, userID uuid.UUID, code string) (*promos.PromoCode, error) {
	query := url.Values{}
	query.Set("user_id", userID.String())

	var promo promos.PromoCode
	path := "/api/internal/promos/" + url.PathEscape(code)
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &promo); err != nil {
		return nil, fmt.Errorf("promo eligibility: %w", err)
	}
	return &promo, nil
}

// PaymentFeeSettings fetches the current gateway fee schedule
func (c *Client) PaymentFeeSettings(ctx context.Context) (pricing.FeeSettings, error) {
	var settings pricing.FeeSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/internal/payments/fee-settings", nil, nil, &settings); err != nil {
		return pricing.FeeSettings{}, fmt.Errorf("fee settings: %w", err)
	}
	return settings, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var errPayload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errPayload)
		if errPayload.Message != "" {
			return fmt.Errorf("store returned %d: %s", resp.StatusCode, errPayload.Message)
		}
		return fmt.Errorf("store returned %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
