package libhkb

import (
	"time"

	"github.com/pkg/errors"
)

// ClockTime is a validated time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// CalendarDate is a day of a month with the year still to be inferred.
type CalendarDate struct {
	Day   int
	Month time.Month
}

func validateClock(c ClockTime) error {
	if c.Hour < 0 || c.Hour > 23 {
		return errors.Wrapf(ErrInvalidTime, "hour %d is not in 0..23", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return errors.Wrapf(ErrInvalidTime, "minute %d is not in 0..59", c.Minute)
	}
	return nil
}

// validateDayOfMonth rejects days that no year can hold, such as the 31st of April.
func validateDayOfMonth(d CalendarDate) error {
	if d.Day < 1 || d.Day > maxDaysIn(d.Month) {
		return errors.Wrapf(ErrInvalidDate, "%s has no day %d", d.Month, d.Day)
	}
	return nil
}

// validateDate checks d against the length of its month in year.
func validateDate(year int, d CalendarDate) error {
	if err := validateDayOfMonth(d); err != nil {
		return err
	}
	if d.Month == time.February && d.Day == 29 && !isLeapYear(year) {
		return errors.Wrapf(ErrInvalidDate, "%d is not a leap year", year)
	}
	return nil
}

func decodeClock(c AtClause) (ClockTime, error) {
	hour, err := decodeClockField(c.Hour)
	if err != nil {
		return ClockTime{}, err
	}
	minute, err := decodeClockField(c.Minute)
	if err != nil {
		return ClockTime{}, err
	}
	ct := ClockTime{Hour: hour, Minute: minute}
	if err := validateClock(ct); err != nil {
		return ClockTime{}, err
	}
	return ct, nil
}

func decodeDate(c OnClause) (CalendarDate, error) {
	day, err := decodeOrdinal(c.Day)
	if err != nil {
		return CalendarDate{}, err
	}
	month, err := decodeMonth(c.Month)
	if err != nil {
		return CalendarDate{}, err
	}
	d := CalendarDate{Day: day, Month: month}
	if err := validateDayOfMonth(d); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}
