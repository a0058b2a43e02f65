package libhkb

import (
	"fmt"
	"time"
)

// TimeSpec is the result of resolving a sentence: Relative or Absolute.
type TimeSpec interface {
	// Apply returns the concrete instant the spec denotes when evaluated at now.
	Apply(now time.Time) time.Time
	isTimeSpec()
}

// Relative is an offset to be added to the reference time.
type Relative struct {
	Amount int
	Unit   DurationUnit
}

// Absolute is a concrete instant.
type Absolute struct {
	Time time.Time
}

func (Relative) isTimeSpec() {}
func (Absolute) isTimeSpec() {}

// Apply adds the offset to now. Second, minute and hour offsets are exact
// durations; day and week offsets keep the wall-clock time across DST changes;
// month and year offsets clamp the day to the target month's length.
// Amounts beyond the unit's MaxAmount saturate at MaxAmount.
func (r Relative) Apply(now time.Time) time.Time {
	amount := r.Amount
	if limit := r.Unit.MaxAmount(); amount > limit {
		amount = limit
	} else if amount < -limit {
		amount = -limit
	}

	switch r.Unit {
	case Second:
		return now.Add(time.Duration(amount) * time.Second)
	case Minute:
		return now.Add(time.Duration(amount) * time.Minute)
	case Hour:
		return now.Add(time.Duration(amount) * time.Hour)
	case Day:
		return addDays(now, amount)
	case Week:
		return addDays(now, 7*amount)
	case Month:
		return addMonths(now, amount)
	case Year:
		return addMonths(now, 12*amount)
	}
	return now
}

func (r Relative) String() string {
	if r.Amount == 1 {
		return fmt.Sprintf("in 1 %s", r.Unit)
	}
	return fmt.Sprintf("in %d %ss", r.Amount, r.Unit)
}

// Apply returns the absolute time; now is ignored.
func (a Absolute) Apply(time.Time) time.Time {
	return a.Time
}

func (a Absolute) String() string {
	return "at " + a.Time.Format("2006-01-02 15:04 MST")
}
