package libhkb

import (
	"fmt"
	"math"
	"time"
)

// DurationUnit is the unit of a relative offset.
type DurationUnit int

const (
	Second DurationUnit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{
	Second: "second",
	Minute: "minute",
	Hour:   "hour",
	Day:    "day",
	Week:   "week",
	Month:  "month",
	Year:   "year",
}

// unitSpans is the longest one unit can last; months and years are rounded up.
var unitSpans = [...]time.Duration{
	Second: time.Second,
	Minute: time.Minute,
	Hour:   time.Hour,
	Day:    24 * time.Hour,
	Week:   7 * 24 * time.Hour,
	Month:  31 * 24 * time.Hour,
	Year:   366 * 24 * time.Hour,
}

// MaxAmount is the largest amount of u whose offset fits in a time.Duration.
func (u DurationUnit) MaxAmount() int {
	if u < Second || u > Year {
		return 0
	}
	return int(math.MaxInt64 / int64(unitSpans[u]))
}

// String returns the singular grammar word for the unit.
func (u DurationUnit) String() string {
	if u < Second || u > Year {
		return fmt.Sprintf("DurationUnit(%d)", int(u))
	}
	return unitNames[u]
}

// MarshalText encodes the unit as its grammar word.
func (u DurationUnit) MarshalText() ([]byte, error) {
	if u < Second || u > Year {
		return nil, fmt.Errorf("unknown duration unit %d", int(u))
	}
	return []byte(unitNames[u]), nil
}

// UnmarshalText accepts the grammar word, singular or plural.
func (u *DurationUnit) UnmarshalText(text []byte) error {
	v, err := decodeUnit(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
