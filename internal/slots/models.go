package slots

import (
	"time"
)

// ReservationWindow is a candidate booking window for a set of seats at a location
type ReservationWindow struct {
	Location    string    `json:"location"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	SeatNumbers []string  `json:"seat_numbers"`
}

// Duration returns the length of the window
func (w ReservationWindow) Duration() time.Duration {
	return w.EndAt.Sub(w.StartAt)
}

// SpansMidnight reports whether the window crosses into a following calendar day
func (w ReservationWindow) SpansMidnight() bool {
	return calendarDays(w.StartAt, w.EndAt) >= 1
}

// calendarDays returns the number of calendar-day boundaries between two instants
func calendarDays(start, end time.Time) int {
	startMidnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endMidnight := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	return int(endMidnight.Sub(startMidnight) / (24 * time.Hour))
}
