package period

import (
	"time"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/codec"
	"github.com/calperiod/calperiod-go/pkg/resolver"
)

// Range is the half-open period [start, end) resolved to a calendar unit.
type Range struct {
	start    int64
	end      int64
	unit     calendar.Unit
	duration int
	text     string
	iso      string
}

// newRange resolves [start, end). With fallback set a forced unit that
// cannot represent the period is treated as a hint and the unit is
// detected instead.
func newRange(start, end int64, unit calendar.Unit, fallback bool) (Range, error) {
	r := Range{start: start, end: end, unit: unit}
	if start >= end {
		return r, nil
	}
	res, err := resolver.Resolve(start, end, resolver.Options{Resolution: unit})
	if err != nil && fallback && unit != 0 {
		res, err = resolver.Resolve(start, end, resolver.Options{})
	}
	if err != nil {
		return Range{}, err
	}
	r.unit, r.duration, r.text, r.iso = res.Unit, res.Duration, res.Abbr, res.ISO
	return r, nil
}

func mustRange(start, end int64, unit calendar.Unit, fallback bool) Range {
	r, err := newRange(start, end, unit, fallback)
	if err != nil {
		panic("period: " + err.Error())
	}
	return r
}

// FromText parses a token or interval. The unit of the left token is kept
// when it can represent the whole interval, so "2019Q1..2020Q4" stays in
// quarters. The text of the result is the canonical rendering.
func FromText(text string) (Range, error) {
	span, err := codec.Parse(text)
	if err != nil {
		return Range{}, err
	}
	return newRange(span.StartValue(), span.EndValue(), span.Unit, true)
}

// FromISO parses text in any accepted form. It is FromText under the name
// callers holding ISO-8601 intervals look for.
func FromISO(text string) (Range, error) {
	return FromText(text)
}

// OpenBounds supplies the instants substituted for the missing side of an
// open interval.
type OpenBounds struct {
	Past   Instant
	Future Instant
}

// DefaultOpenBounds returns year 0 as the past and year 10000 as the future.
func DefaultOpenBounds() OpenBounds {
	return OpenBounds{Past: FromFields(0), Future: FromFields(10000)}
}

// FromTextOpen parses text that may leave either side of the interval open,
// e.g. "2018.." or "/2019-05".
func FromTextOpen(text string, bounds OpenBounds) (Range, error) {
	span, err := codec.ParseOpen(text)
	if err != nil {
		return Range{}, err
	}
	start, end := span.StartValue(), span.EndValue()
	if span.OpenStart {
		start = bounds.Past.Value()
	}
	if span.OpenEnd {
		end = bounds.Future.Value()
	}
	return newRange(start, end, span.Unit, true)
}

// FromStartEndValues builds [start, end) from millisecond values. A non-zero
// unit forces the resolution and fails with
// resolver.ErrInvalidForcedResolution if the period is not a whole number of
// aligned instances of it.
func FromStartEndValues(start, end int64, unit calendar.Unit) (Range, error) {
	return newRange(start, end, unit, false)
}

// FromStartEnd builds [start, end) from two instants.
func FromStartEnd(start, end Instant, unit calendar.Unit) (Range, error) {
	return newRange(start.Value(), end.Value(), unit, false)
}

// FromStartValueDuration builds the period of duration instances of unit
// starting at start rounded to a unit boundary with mode.
func FromStartValueDuration(start int64, duration int, unit calendar.Unit, mode calendar.RoundMode) (Range, error) {
	if !unit.Valid() {
		return Range{}, calendar.ErrUnknownUnit
	}
	s := calendar.Round(start, unit, mode)
	return newRange(s, calendar.IncrementValue(s, unit, duration), unit, false)
}

// FromStartDuration is FromStartValueDuration on an Instant.
func FromStartDuration(start Instant, duration int, unit calendar.Unit, mode calendar.RoundMode) (Range, error) {
	return FromStartValueDuration(start.Value(), duration, unit, mode)
}

// Start returns the first instant of the period.
func (r Range) Start() Instant { return FromValue(r.start) }

// End returns the instant right after the period.
func (r Range) End() Instant { return FromValue(r.end) }

func (r Range) StartValue() int64 { return r.start }
func (r Range) EndValue() int64   { return r.end }

// Unit returns the resolution.
func (r Range) Unit() calendar.Unit { return r.unit }

// Duration returns the number of Unit instances in the period.
func (r Range) Duration() int { return r.duration }

// Text returns the abbreviated rendering, e.g. "2018-05..12". It is empty
// for an empty Range.
func (r Range) Text() string { return r.text }

// ISO returns the ISO-8601 rendering, e.g. "2018-05/2019-01".
func (r Range) ISO() string { return r.iso }

// String implements fmt.Stringer.
func (r Range) String() string { return r.text }

// IsEmpty reports whether the period contains no time.
func (r Range) IsEmpty() bool { return r.start >= r.end }

// IsCalendarUnit reports whether the period is exactly one unit instance,
// such as one month or one ISO week.
func (r Range) IsCalendarUnit() bool { return r.duration == 1 }

// DurationSeconds returns the exact length of the period in seconds.
func (r Range) DurationSeconds() float64 {
	if r.IsEmpty() {
		return 0
	}
	return float64(r.end-r.start) / float64(calendar.MsPerSecond)
}

// Elapsed returns the exact length of the period.
func (r Range) Elapsed() time.Duration {
	if r.IsEmpty() {
		return 0
	}
	return time.Duration(r.end-r.start) * time.Millisecond
}

// DurationIn converts the duration to instances of u. Conversions between
// levels use a year of 365.2425 days and a month of a twelfth of that, so
// "2018-05" is about 30.4 days long.
func (r Range) DurationIn(u calendar.Unit) float64 {
	if r.IsEmpty() || !u.Valid() {
		return 0
	}
	own := float64(r.duration * r.unit.Multiplier())
	if u.Level() == r.unit.Level() {
		return own / float64(u.Multiplier())
	}
	return own * calendar.LevelMs(r.unit.Level()) /
		(calendar.LevelMs(u.Level()) * float64(u.Multiplier()))
}

// In resolves the same period to u. It fails with
// resolver.ErrInvalidForcedResolution if the period is not a whole number
// of aligned instances of u.
func (r Range) In(u calendar.Unit) (Range, error) {
	return newRange(r.start, r.end, u, false)
}

// Contains reports whether o lies within r.
func (r Range) Contains(o Range) bool {
	return r.start <= o.start && o.end <= r.end
}

// ContainsValue reports whether the instant v lies within r.
func (r Range) ContainsValue(v int64) bool {
	return r.start <= v && v < r.end
}

// ContainsInstant reports whether i lies within r.
func (r Range) ContainsInstant(i Instant) bool {
	return r.ContainsValue(i.Value())
}

// IsDisjoint reports whether r and o share no time.
func (r Range) IsDisjoint(o Range) bool {
	return r.end <= o.start || o.end <= r.start
}

// Intersects reports whether r and o share some time.
func (r Range) Intersects(o Range) bool {
	return !r.IsDisjoint(o)
}

// Precedes reports whether r ends at or before the start of o.
func (r Range) Precedes(o Range) bool { return r.end <= o.start }

// Succeeds reports whether r starts at or after the end of o.
func (r Range) Succeeds(o Range) bool { return o.end <= r.start }

func (r Range) StartsBefore(v int64) bool     { return r.start < v }
func (r Range) StartsBeforeOrAt(v int64) bool { return r.start <= v }

// StartsAfter reports whether r starts at or after v.
func (r Range) StartsAfter(v int64) bool { return r.start >= v }

// StartsAfterOrAt is StartsAfter.
func (r Range) StartsAfterOrAt(v int64) bool { return r.StartsAfter(v) }

func (r Range) EndsBefore(v int64) bool { return r.end <= v }
func (r Range) EndsAfter(v int64) bool  { return r.end > v }

// Equivalent reports whether r and o cover the same time.
func (r Range) Equivalent(o Range) bool {
	return r.start == o.start && r.end == o.end
}

// Identical reports whether r and o cover the same time at the same unit.
func (r Range) Identical(o Range) bool {
	return r.Equivalent(o) && r.unit == o.unit
}

// Intersection returns the time r and o share, resolved to the coarser of
// their units where that unit fits. The result is empty if they are
// disjoint.
func (r Range) Intersection(o Range) Range {
	return mustRange(max(r.start, o.start), min(r.end, o.end), calendar.Coarser(r.unit, o.unit), true)
}

// Union returns the smallest period covering both r and o, resolved to the
// coarser of their units where that unit fits.
func (r Range) Union(o Range) Range {
	switch {
	case r.IsEmpty():
		return o
	case o.IsEmpty():
		return r
	}
	return mustRange(min(r.start, o.start), max(r.end, o.end), calendar.Coarser(r.unit, o.unit), true)
}

// Next returns the period of the same unit and duration right after r.
func (r Range) Next() Range {
	return mustRange(r.end, calendar.IncrementValue(r.end, r.unit, r.duration), r.unit, true)
}

// Prev returns the period of the same unit and duration right before r.
func (r Range) Prev() Range {
	return mustRange(calendar.IncrementValue(r.start, r.unit, -r.duration), r.start, r.unit, true)
}

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.text), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Range) UnmarshalText(text []byte) error {
	v, err := FromText(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
