package availability

import (
	"fmt"
	"sort"
)

// ConflictError reports why a seat request cannot be satisfied.
// Recoverable: the user reselects seats.
type ConflictError struct {
	// OverlappingSeats are requested seats already taken in the window
	OverlappingSeats []string
	// CapacityExceeded is set when the request asks for more seats than the location has
	CapacityExceeded bool
}

func (e *ConflictError) Error() string {
	if e.CapacityExceeded {
		return "seat request exceeds location capacity"
	}
	return fmt.Sprintf("seats already booked: %v", e.OverlappingSeats)
}

// Check accepts or rejects a seat request against a booked-seat snapshot.
//
// bookedSeats must already be filtered to the overlapping time window by the
// booking store; this gate does no time math. It is an advisory pre-flight
// check, the store's transactional write is the real arbiter.
func Check(requestedSeats, bookedSeats []string, capacity int) error {
	if capacity > 0 && len(requestedSeats) > capacity {
		return &ConflictError{CapacityExceeded: true}
	}

	taken := make(map[string]struct{}, len(bookedSeats))
	for _, seat := range bookedSeats {
		taken[seat] = struct{}{}
	}

	var overlapping []string
	for _, seat := range requestedSeats {
		if _, ok := taken[seat]; ok {
			overlapping = append(overlapping, seat)
		}
	}

	if len(overlapping) > 0 {
		sort.Strings(overlapping)
		return &ConflictError{OverlappingSeats: overlapping}
	}

	return nil
}
