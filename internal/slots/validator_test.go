package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func window(start, end time.Time) ReservationWindow {
	return ReservationWindow{
		Location:    "raffles-place",
		StartAt:     start,
		EndAt:       end,
		SeatNumbers: []string{"A1"},
	}
}

func at(day, hour, min int) time.Time {
	return time.Date(2025, 3, day, hour, min, 0, 0, time.UTC)
}

func TestSnapToGridRoundsDown(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"already on grid", at(10, 10, 0), at(10, 10, 0)},
		{"quarter boundary", at(10, 10, 15), at(10, 10, 15)},
		{"rounds down not up", at(10, 10, 14), at(10, 10, 0)},
		{"just past boundary", at(10, 10, 16), at(10, 10, 15)},
		{"seconds stripped", at(10, 10, 30).Add(59 * time.Second), at(10, 10, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnapToGrid(tt.in))
		})
	}
}

func TestSnapToGridIsIdempotent(t *testing.T) {
	for _, min := range []int{0, 1, 7, 14, 15, 29, 44, 59} {
		in := at(10, 11, min)
		once := SnapToGrid(in)
		assert.Equal(t, once, SnapToGrid(once), "snapping twice must equal snapping once for minute %d", min)
	}
}

func TestValidateAcceptsPlainWindow(t *testing.T) {
	w, err := Validate(window(at(10, 10, 0), at(10, 11, 30)), testNow, Options{})
	require.NoError(t, err)
	assert.Equal(t, at(10, 10, 0), w.StartAt)
	assert.Equal(t, at(10, 11, 30), w.EndAt)
}

func TestValidateNormalizesOffGridTimes(t *testing.T) {
	w, err := Validate(window(at(10, 10, 7), at(10, 11, 38)), testNow, Options{})
	require.NoError(t, err)
	assert.Equal(t, at(10, 10, 0), w.StartAt)
	assert.Equal(t, at(10, 11, 30), w.EndAt)
}

func TestValidateStrictGridRejectsOffGrid(t *testing.T) {
	_, err := Validate(window(at(10, 10, 7), at(10, 11, 30)), testNow, Options{StrictGrid: true})
	assertKind(t, err, KindOffGrid)

	// On-grid input still passes in strict mode
	_, err = Validate(window(at(10, 10, 0), at(10, 11, 30)), testNow, Options{StrictGrid: true})
	assert.NoError(t, err)
}

func TestValidateRejectsPastStart(t *testing.T) {
	_, err := Validate(window(at(10, 8, 0), at(10, 10, 0)), testNow, Options{})
	assertKind(t, err, KindPastStart)
}

func TestValidateRejectsReversedWindow(t *testing.T) {
	_, err := Validate(window(at(10, 12, 0), at(10, 10, 0)), testNow, Options{})
	assertKind(t, err, KindInvalidOrder)

	_, err = Validate(window(at(10, 12, 0), at(10, 12, 0)), testNow, Options{})
	assertKind(t, err, KindInvalidOrder)
}

func TestValidateRejectsShortWindow(t *testing.T) {
	_, err := Validate(window(at(10, 10, 0), at(10, 10, 45)), testNow, Options{})
	assertKind(t, err, KindTooShort)

	// Exactly one hour is the floor
	_, err = Validate(window(at(10, 10, 0), at(10, 11, 0)), testNow, Options{})
	assert.NoError(t, err)
}

func TestValidateRejectsBeyondHorizon(t *testing.T) {
	farStart := testNow.AddDate(0, 2, 1)
	_, err := Validate(window(farStart, farStart.Add(2*time.Hour)), testNow, Options{})
	assertKind(t, err, KindBeyondHorizon)

	// Exactly at the horizon is allowed
	edgeStart := testNow.AddDate(0, 2, 0)
	_, err = Validate(window(edgeStart, edgeStart.Add(2*time.Hour)), testNow, Options{})
	assert.NoError(t, err)
}

func TestValidateRejectsMultiDaySpan(t *testing.T) {
	_, err := Validate(window(at(10, 18, 0), at(12, 10, 0)), testNow, Options{})
	assertKind(t, err, KindTooManyDays)
}

func TestValidateOvernightWindowPolicy(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantKind ErrorKind
	}{
		{"evening to morning accepted", at(10, 17, 0), at(11, 9, 0), ""},
		{"late evening to noon accepted", at(10, 22, 0), at(11, 12, 0), ""},
		{"ends at midnight accepted", at(10, 18, 0), at(11, 0, 0), ""},
		{"starts before five pm rejected", at(10, 16, 45), at(11, 10, 0), KindCrossDayWindow},
		{"ends after noon rejected", at(10, 18, 0), at(11, 13, 0), KindCrossDayWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(window(tt.start, tt.end), testNow, Options{})
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assertKind(t, err, tt.wantKind)
			}
		})
	}
}

func TestValidateRejectsEmptySeatSelection(t *testing.T) {
	w := window(at(10, 10, 0), at(10, 12, 0))
	w.SeatNumbers = nil
	_, err := Validate(w, testNow, Options{})
	assertKind(t, err, KindNoSeats)
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Equal(t, kind, verr.Kind)
}
