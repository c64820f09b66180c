package slots

import "fmt"

// ErrorKind identifies which booking-window rule a candidate violated
type ErrorKind string

const (
	KindOffGrid        ErrorKind = "OFF_GRID"
	KindPastStart      ErrorKind = "PAST_START"
	KindInvalidOrder   ErrorKind = "INVALID_ORDER"
	KindTooShort       ErrorKind = "TOO_SHORT"
	KindBeyondHorizon  ErrorKind = "BEYOND_HORIZON"
	KindTooManyDays    ErrorKind = "TOO_MANY_DAYS"
	KindCrossDayWindow ErrorKind = "CROSS_DAY_WINDOW"
	KindNoSeats        ErrorKind = "NO_SEATS"
)

// ValidationError reports a violated booking-window rule.
// It is recoverable: the user corrects the input and retries.
type ValidationError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("slot validation failed (%s): %s", e.Kind, e.Detail)
}

func newError(kind ErrorKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}
