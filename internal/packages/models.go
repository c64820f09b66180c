package packages

import (
	"time"

	"github.com/google/uuid"
)

// PassKind enumerates the package products sold on the site
type PassKind string

const (
	PassHalfDay        PassKind = "HALF_DAY"
	PassFullDay        PassKind = "FULL_DAY"
	PassSemesterBundle PassKind = "SEMESTER_BUNDLE"
)

// PackagePass is a prepaid bundle of visits owned by a user.
// Served by the remote booking store; this service never writes them.
type PackagePass struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Kind            PassKind  `json:"kind"`
	TotalCount      int       `json:"total_count"`
	RemainingCount  int       `json:"remaining_count"`
	HourLimitPerUse float64   `json:"hour_limit_per_use"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Usable reports whether the pass can cover a booking made now.
// A pass with no remaining uses or past its expiry is spent, not an error.
func (p PackagePass) Usable(now time.Time) bool {
	if p.RemainingCount <= 0 {
		return false
	}
	if !p.ExpiresAt.IsZero() && !p.ExpiresAt.After(now) {
		return false
	}
	return true
}

// CoveredHours returns how many of the requested hours the pass pays for.
// Hours beyond the per-use limit bill at the normal rate.
func (p PackagePass) CoveredHours(requestedHours float64) float64 {
	if p.HourLimitPerUse <= 0 || requestedHours <= p.HourLimitPerUse {
		return requestedHours
	}
	return p.HourLimitPerUse
}
