package libhkb

import "time"

// composeDate merges a date produced by ON, NEXT, TOMORROW or IN_ALT with its
// optional trailing AT clause. The date's own time of day is discarded: with an AT
// clause the result is that clock time, without one it is midnight.
func composeDate(date time.Time, at *AtClause) (TimeSpec, error) {
	var c ClockTime
	if at != nil {
		var err error
		if c, err = decodeClock(*at); err != nil {
			return nil, err
		}
	}
	return Absolute{Time: atClock(date, c)}, nil
}
