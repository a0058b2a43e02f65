package libhkb

import "time"

// Calendar arithmetic is delegated to the time package, which implements the
// proleptic Gregorian calendar. These helpers only add clamping where AddDate
// would normalize an overflowing day into the following month.

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeapYear(year int) bool {
	return daysIn(time.February, year) == 29
}

// maxDaysIn is the longest the month can be in any year.
func maxDaysIn(month time.Month) int {
	return daysIn(month, 2000)
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// addMonths moves t by n calendar months, clamping the day to the last day of the
// target month: Jan 31 + 1 month is Feb 28 (or 29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	ty, tm, _ := first.Date()
	if last := daysIn(tm, ty); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysUntil returns how many days after from the next target weekday falls,
// always in 1..7 so that today never counts.
func daysUntil(from time.Time, target time.Weekday) int {
	days := (int(target) - int(from.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return days
}

// atClock returns the calendar day of date at hour:minute, seconds zeroed.
func atClock(date time.Time, c ClockTime) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}
