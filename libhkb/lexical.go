package libhkb

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var cardinals = map[string]int{
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
}

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var units = map[string]DurationUnit{
	"second": Second,
	"minute": Minute,
	"hour":   Hour,
	"day":    Day,
	"week":   Week,
	"month":  Month,
	"year":   Year,
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// decodeAmount decodes the amount of an IN sentence. The grammar only matches
// digit runs without a leading zero, so anything else is a matcher defect. A run
// too long for an int is valid input and reported as ErrAmountOutOfRange.
func decodeAmount(s string) (int, error) {
	if !isDigits(s) || s[0] == '0' {
		return 0, invariantf("amount %q is not a positive number", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrAmountOutOfRange, "amount %s", s)
	}
	return n, nil
}

// decodeClockField decodes an hour or minute field. Leading zeros are allowed;
// range checks happen in validateClock.
func decodeClockField(s string) (int, error) {
	if len(s) > 2 || !isDigits(s) {
		return 0, invariantf("clock field %q is not 1-2 digits", s)
	}
	n, _ := strconv.Atoi(s)
	return n, nil
}

func decodeCardinal(s string) (int, error) {
	n, ok := cardinals[strings.ToLower(s)]
	if !ok {
		return 0, invariantf("unknown cardinal %q", s)
	}
	return n, nil
}

func ordinalSuffix(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return "th"
	case n%10 == 1:
		return "st"
	case n%10 == 2:
		return "nd"
	case n%10 == 3:
		return "rd"
	default:
		return "th"
	}
}

// decodeOrdinal decodes a day-of-month token such as "1st", "22nd" or "30th".
// Whether the day exists in its month is checked later, once the month is known.
func decodeOrdinal(s string) (int, error) {
	s = strings.ToLower(s)
	if len(s) < 3 {
		return 0, invariantf("unknown ordinal %q", s)
	}
	digits, suffix := s[:len(s)-2], s[len(s)-2:]
	if !isDigits(digits) || digits[0] == '0' {
		return 0, invariantf("unknown ordinal %q", s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > 31 || suffix != ordinalSuffix(n) {
		return 0, invariantf("unknown ordinal %q", s)
	}
	return n, nil
}

func decodeMonth(s string) (time.Month, error) {
	m, ok := months[strings.ToLower(s)]
	if !ok {
		return 0, invariantf("unknown month %q", s)
	}
	return m, nil
}

func decodeWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(s)]
	if !ok {
		return 0, invariantf("unknown weekday %q", s)
	}
	return d, nil
}

// decodeUnit maps a duration word to its unit. The trailing "s" is syntax only.
func decodeUnit(s string) (DurationUnit, error) {
	word := strings.ToLower(s)
	if u, ok := units[word]; ok {
		return u, nil
	}
	if u, ok := units[strings.TrimSuffix(word, "s")]; ok {
		return u, nil
	}
	return 0, invariantf("unknown duration unit %q", s)
}
