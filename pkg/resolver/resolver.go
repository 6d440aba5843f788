package resolver

import (
	"errors"
	"fmt"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/codec"
)

// Resolver errors.
var (
	ErrInvalidForcedResolution = errors.New("invalid forced resolution")
	ErrInvalidPeriod           = errors.New("invalid period")
)

// ResolveError describes the period a resolution failed for.
type ResolveError struct {
	Start    int64
	End      int64
	Unit     calendar.Unit
	Duration int
	Err      error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	between := fmt.Sprintf("between %s and %s", calendar.FromValue(e.Start), calendar.FromValue(e.End))
	switch {
	case errors.Is(e.Err, ErrInvalidPeriod) && e.Duration > 0:
		return fmt.Sprintf("%v: %d %s %s", e.Err, e.Duration, e.Unit, between)
	case e.Unit != 0:
		return fmt.Sprintf("%v %s for period %s", e.Err, e.Unit, between)
	default:
		return fmt.Sprintf("%v %s", e.Err, between)
	}
}

// Unwrap returns the sentinel error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Options configures Resolve.
type Options struct {
	// Resolution forces the unit of the result. The zero Unit detects it.
	Resolution calendar.Unit

	// RequireSingleUnit rejects periods longer than one unit.
	RequireSingleUnit bool
}

// DefaultOptions detects the resolution and requires a single unit.
func DefaultOptions() Options {
	return Options{RequireSingleUnit: true}
}

// Result is a resolved period.
type Result struct {
	// Unit is the resolution.
	Unit calendar.Unit

	// Duration is the number of Unit instances in the period.
	Duration int

	// ISO is the FIRST/NEXT rendering.
	ISO string

	// Abbr is the FIRST..LAST rendering, or FIRST alone for one unit.
	Abbr string

	// First, Next and Last are the unreduced tokens of the first unit, the
	// unit right after the period and the last unit in it.
	First string
	Next  string
	Last  string
}

// Resolve resolves the period [start, end) given in milliseconds.
func Resolve(start, end int64, opts Options) (Result, error) {
	fail := func(err error, u calendar.Unit, n int) (Result, error) {
		return Result{}, &ResolveError{Start: start, End: end, Unit: u, Duration: n, Err: err}
	}
	if end <= start {
		return fail(ErrInvalidPeriod, 0, 0)
	}

	s, e := calendar.FromValue(start), calendar.FromValue(end)
	level := max(s.StartLevel(), e.StartLevel())

	forced := opts.Resolution
	if forced != 0 {
		if !forced.Valid() || forced.Level() < level {
			return fail(ErrInvalidForcedResolution, forced, 0)
		}
		level = forced.Level()
	}

	var (
		r  Result
		ok bool
	)
	switch level {
	case calendar.LevelYear:
		r, ok = reduceYears(s, e, forced)
	case calendar.LevelMonth:
		r, ok = reduceMonths(s, e, forced)
	case calendar.LevelDay:
		r, ok = reduceDays(s, e, end-start, forced)
	default:
		r, ok = reduceFixed(level, s, e, end-start)
	}

	if !ok || (forced != 0 && r.Unit != forced) {
		return fail(ErrInvalidForcedResolution, forced, 0)
	}
	if opts.RequireSingleUnit && r.Duration != 1 {
		return fail(ErrInvalidPeriod, r.Unit, r.Duration)
	}

	r.ISO = codec.ISOInterval(r.First, r.Next)
	r.Abbr = codec.AbbrInterval(r.First, r.Last)
	return r, nil
}

func admits(forced, u calendar.Unit) bool {
	return forced == 0 || forced == u
}

// reduceYears tries the year-level units coarsest first. A unit fits when
// it divides the span and the start year sits on its base.
func reduceYears(s, e calendar.Components, forced calendar.Unit) (Result, bool) {
	y1, y2 := s.Year(), e.Year()
	span := y2 - y1
	for _, u := range calendar.UnitsAt(calendar.LevelYear) {
		m := u.Multiplier()
		if !admits(forced, u) || span%m != 0 || (y1-u.Base())%m != 0 {
			continue
		}
		return tokens(u, span/m, s, e, calendar.FromFields(y2-m)), true
	}
	return Result{}, false
}

// reduceMonths is reduceYears on the month axis.
func reduceMonths(s, e calendar.Components, forced calendar.Unit) (Result, bool) {
	span := 12*e.Year() + e.Month() - 12*s.Year() - s.Month()
	for _, u := range calendar.UnitsAt(calendar.LevelMonth) {
		m := u.Multiplier()
		if !admits(forced, u) || span%m != 0 || (s.Month()-u.Base())%m != 0 {
			continue
		}
		return tokens(u, span/m, s, e, calendar.Increment(e, u, -1)), true
	}
	return Result{}, false
}

// reduceDays prefers whole ISO weeks starting on a Monday, then days.
func reduceDays(s, e calendar.Components, ms int64, forced calendar.Unit) (Result, bool) {
	days := roundDiv(ms, calendar.MsPerDay)
	if admits(forced, calendar.Week) && days%7 == 0 {
		if _, _, ok := calendar.YearWeek(s.Year(), calendar.YearDay(s)); ok {
			return tokens(calendar.Week, days/7, s, e, calendar.Increment(e, calendar.Week, -1)), true
		}
	}
	if !admits(forced, calendar.Day) {
		return Result{}, false
	}
	return tokens(calendar.Day, days, s, e, calendar.Increment(e, calendar.Day, -1)), true
}

// reduceFixed handles the hour, minute and second levels, which have a
// single unit each.
func reduceFixed(level calendar.Level, s, e calendar.Components, ms int64) (Result, bool) {
	u := calendar.LevelUnit(level)
	var per int64
	switch level {
	case calendar.LevelHour:
		per = calendar.MsPerHour
	case calendar.LevelMinute:
		per = calendar.MsPerMinute
	default:
		per = calendar.MsPerSecond
	}
	n := roundDiv(ms, per)
	return tokens(u, n, s, e, e.Add(level, -1)), true
}

func tokens(u calendar.Unit, n int, s, e, last calendar.Components) Result {
	r := Result{
		Unit:     u,
		Duration: n,
		First:    codec.Format(u, s),
		Next:     codec.Format(u, e),
	}
	r.Last = r.First
	if n != 1 {
		r.Last = codec.Format(u, last)
	}
	return r
}

func roundDiv(a, b int64) int {
	return int((a + b/2) / b)
}
