package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus mirrors the remote store's booking lifecycle
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	StatusConfirmed      BookingStatus = "CONFIRMED"
	StatusCancelled      BookingStatus = "CANCELLED"
)

// Booking is the store's record of a reservation
type Booking struct {
	ID          uuid.UUID       `json:"id"`
	Reference   string          `json:"reference"`
	UserID      uuid.UUID       `json:"user_id"`
	Location    string          `json:"location"`
	StartAt     time.Time       `json:"start_at"`
	EndAt       time.Time       `json:"end_at"`
	SeatNumbers []string        `json:"seat_numbers"`
	Status      BookingStatus   `json:"status"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateBookingInput is the write request sent to the remote store
type CreateBookingInput struct {
	UserID        uuid.UUID       `json:"user_id"`
	Location      string          `json:"location"`
	StartAt       time.Time       `json:"start_at"`
	EndAt         time.Time       `json:"end_at"`
	SeatNumbers   []string        `json:"seat_numbers"`
	Status        BookingStatus   `json:"status"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	PromoCode     string          `json:"promo_code,omitempty"`
}
