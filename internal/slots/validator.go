package slots

import (
	"time"
)

// Booking-window policy
const (
	// Grid is the granularity both ends of a window must fall on
	Grid = 15 * time.Minute

	// MinDuration is the shortest bookable window
	MinDuration = 60 * time.Minute

	// HorizonMonths is how far ahead a booking may start
	HorizonMonths = 2

	// OvernightStartHour is the earliest start for a window crossing midnight (5 PM)
	OvernightStartHour = 17

	// OvernightEndHour is the latest end hour on the following day (noon)
	OvernightEndHour = 12
)

// Options tunes validation behavior
type Options struct {
	// StrictGrid rejects off-grid instants instead of rounding them down
	StrictGrid bool
}

// SnapToGrid rounds an instant down to the nearest grid boundary.
// Idempotent: snapping an already-snapped instant is a no-op.
func SnapToGrid(t time.Time) time.Time {
	return t.Truncate(Grid)
}

// OnGrid reports whether an instant already sits on a grid boundary
func OnGrid(t time.Time) bool {
	return t.Equal(SnapToGrid(t))
}

// Validate checks a candidate window against the booking rules and returns
// the grid-normalized window. Rules are applied in a fixed order and each
// violation carries its own kind. Pure: no clock reads, no I/O.
func Validate(w ReservationWindow, now time.Time, opts Options) (ReservationWindow, error) {
	// Rule 1: granularity. Off-grid instants are rounded down unless the
	// caller asked for strict rejection.
	if opts.StrictGrid && (!OnGrid(w.StartAt) || !OnGrid(w.EndAt)) {
		return w, newError(KindOffGrid, "start and end must fall on a %v boundary", Grid)
	}
	w.StartAt = SnapToGrid(w.StartAt)
	w.EndAt = SnapToGrid(w.EndAt)

	if len(w.SeatNumbers) == 0 {
		return w, newError(KindNoSeats, "at least one seat must be selected")
	}

	// Rule 2: non-past start
	if w.StartAt.Before(now) {
		return w, newError(KindPastStart, "start %s is in the past", w.StartAt.Format(time.RFC3339))
	}

	// Rule 3: ordering
	if !w.EndAt.After(w.StartAt) {
		return w, newError(KindInvalidOrder, "end must be after start")
	}

	// Rule 4: minimum duration
	if w.Duration() < MinDuration {
		return w, newError(KindTooShort, "duration %v is below the %v minimum", w.Duration(), MinDuration)
	}

	// Rule 5: horizon
	horizon := now.AddDate(0, HorizonMonths, 0)
	if w.StartAt.After(horizon) {
		return w, newError(KindBeyondHorizon, "start is more than %d months ahead", HorizonMonths)
	}

	// Rule 6: a window may cross at most one midnight
	days := calendarDays(w.StartAt, w.EndAt)
	if days > 1 {
		return w, newError(KindTooManyDays, "window spans %d calendar days", days+1)
	}

	// Rule 7: overnight windows are restricted to evening-to-noon
	if days == 1 {
		if w.StartAt.Hour() < OvernightStartHour || w.EndAt.Hour() > OvernightEndHour {
			return w, newError(KindCrossDayWindow,
				"overnight bookings must start at or after %d:00 and end by %d:00 the next day",
				OvernightStartHour, OvernightEndHour)
		}
	}

	return w, nil
}
