package availability

import (
	"context"
	"fmt"
	"time"
)

// SeatStore interface for the remote booking store (to avoid circular dependency)
type SeatStore interface {
	BookedSeats(ctx context.Context, location string, startAt, endAt time.Time) ([]string, error)
}

// Service interface defines the contract for availability checks
type Service interface {
	CheckAvailability(ctx context.Context, location string, startAt, endAt time.Time, requestedSeats []string, capacity int) ([]string, error)
}

// service implements the Service interface
type service struct {
	store SeatStore
}

// NewService creates a new availability service instance
func NewService(store SeatStore) Service {
	return &service{store: store}
}

// CheckAvailability fetches the booked-seat snapshot for the window and runs
// the gate. Returns the booked seats so callers can render the seat picker.
func (s *service) CheckAvailability(ctx context.Context, location string, startAt, endAt time.Time, requestedSeats []string, capacity int) ([]string, error) {
	bookedSeats, err := s.store.BookedSeats(ctx, location, startAt, endAt)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked seats: %w", err)
	}

	if err := Check(requestedSeats, bookedSeats, capacity); err != nil {
		return bookedSeats, err
	}

	return bookedSeats, nil
}
