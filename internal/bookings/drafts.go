package bookings

import (
	"context"
	"fmt"
	"time"

	"deskhive/pkg/cache"

	"github.com/google/uuid"
)

// BookingDraft is the in-progress booking form state, held server-side so
// users can resume on another device. One draft per user, last write wins.
type BookingDraft struct {
	Location      string    `json:"location,omitempty"`
	StartAt       time.Time `json:"start_at,omitempty"`
	EndAt         time.Time `json:"end_at,omitempty"`
	SeatNumbers   []string  `json:"seat_numbers,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	PromoCode     string    `json:"promo_code,omitempty"`
	UsePackage    bool      `json:"use_package,omitempty"`
	UseCredit     bool      `json:"use_credit,omitempty"`
	SavedAt       time.Time `json:"saved_at"`
}

// DraftStore keeps per-user drafts in Redis under a namespaced key
type DraftStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewDraftStore creates a draft store with the configured TTL
func NewDraftStore(cacheService cache.Service, ttl time.Duration) *DraftStore {
	return &DraftStore{cache: cacheService, ttl: ttl}
}

func draftKey(userID uuid.UUID) string {
	return "deskhive:booking-draft:" + userID.String()
}

// Load returns the user's draft, or nil when none is saved
func (s *DraftStore) Load(ctx context.Context, userID uuid.UUID) (*BookingDraft, error) {
	var draft BookingDraft
	err := s.cache.Get(ctx, draftKey(userID), &draft)
	if err != nil {
		if err == cache.ErrCacheMiss {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load booking draft: %w", err)
	}
	return &draft, nil
}

// Save stores the draft, stamping SavedAt and resetting the TTL
func (s *DraftStore) Save(ctx context.Context, userID uuid.UUID, draft BookingDraft) error {
	draft.SavedAt = time.Now().UTC()
	if err := s.cache.Set(ctx, draftKey(userID), draft, s.ttl); err != nil {
		return fmt.Errorf("failed to save booking draft: %w", err)
	}
	return nil
}

// Clear removes the draft, typically after a successful booking
func (s *DraftStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cache.Delete(ctx, draftKey(userID)); err != nil {
		return fmt.Errorf("failed to clear booking draft: %w", err)
	}
	return nil
}
