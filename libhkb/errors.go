package libhkb

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidTime is returned when a clock time is outside 00:00..23:59.
	ErrInvalidTime = errors.New("invalid time")

	// ErrInvalidDate is returned when a day does not exist in its month.
	ErrInvalidDate = errors.New("invalid date")

	// ErrAmountOutOfRange is returned when an IN offset is too large to
	// represent, roughly 292 years in any unit.
	ErrAmountOutOfRange = errors.New("amount out of range")

	// ErrInternalInvariantViolation means a token the matcher guaranteed failed to
	// decode. It is always a defect in the matcher or the resolver, never user input.
	ErrInternalInvariantViolation = errors.New("internal invariant violation")
)

// IsUserError reports whether err should be shown to the person who typed the phrase.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrAmountOutOfRange)
}

func invariantf(format string, args ...any) error {
	return errors.Wrapf(ErrInternalInvariantViolation, format, args...)
}
