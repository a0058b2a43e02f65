package libhkb

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ResolverConfig configures a Resolver. Zero values select the defaults.
type ResolverConfig struct {
	Clock      Clock        // defaults to SystemClock{} in time.Local
	AtRollover AtRollover   // defaults to RollToNextDay
	YearPolicy YearPolicy   // defaults to NearestFutureYear
	Logger     *slog.Logger // defaults to a discarding logger
}

// Resolver turns Sentences into TimeSpecs. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	clock    Clock
	rollover AtRollover
	years    YearPolicy
	logger   *slog.Logger
}

// NewResolver creates a resolver from cfg.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := &Resolver{
		clock:    cfg.Clock,
		rollover: cfg.AtRollover,
		years:    cfg.YearPolicy,
		logger:   cfg.Logger,
	}
	if r.clock == nil {
		r.clock = SystemClock{}
	}
	if r.rollover == "" {
		r.rollover = RollToNextDay
	}
	if r.years == "" {
		r.years = NearestFutureYear
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Resolve resolves s against the resolver's clock, which is read exactly once.
func (r *Resolver) Resolve(s Sentence) (TimeSpec, error) {
	now := r.clock.Now()
	spec, err := r.resolve(now, s)
	if err != nil {
		r.logger.Debug("sentence rejected", "shape", Shape(s), "now", now, "error", err)
		return nil, err
	}
	r.logger.Debug("sentence resolved", "shape", Shape(s), "now", now, "spec", spec)
	return spec, nil
}

func (r *Resolver) resolve(now time.Time, s Sentence) (TimeSpec, error) {
	switch s := s.(type) {
	case In:
		return resolveIn(s)
	case InAlt:
		return resolveInAlt(now, s)
	case At:
		return r.resolveAt(now, s)
	case On:
		return r.resolveOn(now, s)
	case Next:
		return resolveNext(now, s)
	case Tomorrow:
		return composeDate(addDays(now, 1), s.At)
	case nil:
		return nil, invariantf("nil sentence")
	default:
		return nil, invariantf("unsupported sentence type %T", s)
	}
}

func resolveIn(s In) (TimeSpec, error) {
	amount, err := decodeAmount(s.Amount)
	if err != nil {
		return nil, err
	}
	unit, err := decodeUnit(s.Unit)
	if err != nil {
		return nil, err
	}
	if amount > unit.MaxAmount() {
		return nil, errors.Wrapf(ErrAmountOutOfRange, "%d %ss exceeds %d", amount, unit, unit.MaxAmount())
	}
	return Relative{Amount: amount, Unit: unit}, nil
}

// resolveInAlt handles "in <cardinal> days". Only two..nine reach this shape;
// "in one day" is matched by IN instead.
func resolveInAlt(now time.Time, s InAlt) (TimeSpec, error) {
	amount, err := decodeCardinal(s.Cardinal)
	if err != nil {
		return nil, err
	}
	if s.At == nil {
		return Relative{Amount: amount, Unit: Day}, nil
	}
	return composeDate(addDays(now, amount), s.At)
}

func (r *Resolver) resolveAt(now time.Time, s At) (TimeSpec, error) {
	c, err := decodeClock(s.Clock)
	if err != nil {
		return nil, err
	}
	if s.On != nil {
		d, err := decodeDate(*s.On)
		if err != nil {
			return nil, err
		}
		date, err := r.years.inferYear(now, d)
		if err != nil {
			return nil, err
		}
		return Absolute{Time: atClock(date, c)}, nil
	}
	// A bare clock time means today, rolled per the configured policy.
	return Absolute{Time: r.rollover.apply(now, c)}, nil
}

func (r *Resolver) resolveOn(now time.Time, s On) (TimeSpec, error) {
	d, err := decodeDate(s.Date)
	if err != nil {
		return nil, err
	}
	date, err := r.years.inferYear(now, d)
	if err != nil {
		return nil, err
	}
	return composeDate(date, s.At)
}

func resolveNext(now time.Time, s Next) (TimeSpec, error) {
	switch strings.ToLower(s.Target) {
	case "week":
		if s.At == nil {
			return Relative{Amount: 7, Unit: Day}, nil
		}
		return composeDate(addDays(now, 7), s.At)
	case "month":
		return composeDate(addMonths(now, 1), s.At)
	}
	day, err := decodeWeekday(s.Target)
	if err != nil {
		return nil, err
	}
	return composeDate(addDays(now, daysUntil(now, day)), s.At)
}
