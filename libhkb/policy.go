package libhkb

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// AtRollover decides which day a bare "at HH:MM" refers to.
type AtRollover string

const (
	// RollToNextDay moves a clock time that is not after now to tomorrow, so
	// "at HH:MM" always means the next occurrence of that time.
	RollToNextDay AtRollover = "next-day"
	// KeepSameDay always uses today's date, even when the time has passed.
	KeepSameDay AtRollover = "same-day"
)

// ParseAtRollover validates a rollover policy name. Empty selects RollToNextDay.
func ParseAtRollover(s string) (AtRollover, error) {
	switch AtRollover(s) {
	case "", RollToNextDay:
		return RollToNextDay, nil
	case KeepSameDay:
		return KeepSameDay, nil
	}
	return "", fmt.Errorf("unknown at rollover policy %q (use %s or %s)", s, RollToNextDay, KeepSameDay)
}

func (p AtRollover) apply(now time.Time, c ClockTime) time.Time {
	t := atClock(now, c)
	if p == KeepSameDay || t.After(now) {
		return t
	}
	return atClock(addDays(now, 1), c)
}

// YearPolicy infers the year of an "on DAY of MONTH" date. The grammar has no way
// to say the year, so every date-only phrase goes through one of these.
type YearPolicy string

const (
	// NearestFutureYear picks the first year, starting with the current one, in
	// which the date exists and its midnight is strictly after now.
	NearestFutureYear YearPolicy = "nearest-future"
	// CurrentYear always uses now's year, even when the date has passed.
	CurrentYear YearPolicy = "current"
)

// leapSearchYears bounds the year search. The longest gap between two
// Gregorian leap years is eight years (2096 to 2104).
const leapSearchYears = 8

// ParseYearPolicy validates a year policy name. Empty selects NearestFutureYear.
func ParseYearPolicy(s string) (YearPolicy, error) {
	switch YearPolicy(s) {
	case "", NearestFutureYear:
		return NearestFutureYear, nil
	case CurrentYear:
		return CurrentYear, nil
	}
	return "", fmt.Errorf("unknown year policy %q (use %s or %s)", s, NearestFutureYear, CurrentYear)
}

// inferYear returns the midnight of d in the year chosen by the policy.
// NearestFutureYear compares that midnight, not the instant an AT clause later
// composes onto it: "on the 16th of october at 23:00" said at 10:00 on October 16
// lands on the following year.
func (p YearPolicy) inferYear(now time.Time, d CalendarDate) (time.Time, error) {
	if err := validateDayOfMonth(d); err != nil {
		return time.Time{}, err
	}

	if p == CurrentYear {
		if err := validateDate(now.Year(), d); err != nil {
			return time.Time{}, err
		}
		return time.Date(now.Year(), d.Month, d.Day, 0, 0, 0, 0, now.Location()), nil
	}

	for year := now.Year(); year <= now.Year()+leapSearchYears; year++ {
		if validateDate(year, d) != nil {
			continue
		}
		candidate := time.Date(year, d.Month, d.Day, 0, 0, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "no year after %d holds %s %d", now.Year(), d.Month, d.Day)
}
