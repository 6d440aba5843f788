package period

import (
	"time"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/codec"
	"github.com/calperiod/calperiod-go/pkg/resolver"
)

// NowFunc returns the current time. Tests replace it to pin the clock.
var NowFunc = time.Now

// Instant is a point in time at second precision. The zero Instant is the
// Unix epoch.
type Instant struct {
	value int64
	c     calendar.Components
	text  string
}

func newInstant(c calendar.Components) Instant {
	v := c.Value()
	res, err := resolver.Resolve(v, v+calendar.MsPerSecond, resolver.Options{})
	if err != nil {
		panic("period: resolving one second: " + err.Error())
	}
	return Instant{value: v, c: c, text: res.Abbr}
}

// FromValue builds an Instant from milliseconds since the Unix epoch.
// Sub-second precision is truncated toward the earlier second.
func FromValue(ms int64) Instant {
	return newInstant(calendar.FromValue(ms))
}

// FromComponents builds an Instant from a tuple, normalizing overflowing
// fields.
func FromComponents(c calendar.Components) Instant {
	return newInstant(calendar.FromFields(c[:]...))
}

// FromFields builds an Instant from its leading fields; see
// calendar.FromFields.
func FromFields(fields ...int) Instant {
	return newInstant(calendar.FromFields(fields...))
}

// FromTime builds an Instant from the UTC fields of t.
func FromTime(t time.Time) Instant {
	return newInstant(calendar.FromTime(t.UTC()))
}

// FromLocalTime builds an Instant from the wall-clock fields of t in its own
// location, as if they were UTC.
func FromLocalTime(t time.Time) Instant {
	return newInstant(calendar.FromTime(t))
}

// InstantFromText parses a period token or interval and returns its start.
func InstantFromText(text string) (Instant, error) {
	span, err := codec.Parse(text)
	if err != nil {
		return Instant{}, err
	}
	return newInstant(span.Start), nil
}

// Now returns the current UTC instant.
func Now() Instant {
	return FromTime(NowFunc())
}

// NowLocal returns the current local wall-clock instant.
func NowLocal() Instant {
	return FromLocalTime(NowFunc())
}

// Value returns the instant in milliseconds since the Unix epoch.
func (i Instant) Value() int64 { return i.value }

// Components returns the decoded fields.
func (i Instant) Components() calendar.Components { return i.built().c }

func (i Instant) Year() int   { return i.built().c.Year() }
func (i Instant) Month() int  { return i.built().c.Month() }
func (i Instant) Day() int    { return i.built().c.Day() }
func (i Instant) Hour() int   { return i.built().c.Hour() }
func (i Instant) Minute() int { return i.built().c.Minute() }
func (i Instant) Second() int { return i.built().c.Second() }

// Text returns the second-level rendering, e.g. "2018-05-12T07:00:00".
func (i Instant) Text() string { return i.built().text }

// built fills in the derived fields of the zero Instant.
func (i Instant) built() Instant {
	if i.text == "" {
		return FromValue(i.value)
	}
	return i
}

// String implements fmt.Stringer.
func (i Instant) String() string { return i.Text() }

// Time returns the instant as a UTC time.
func (i Instant) Time() time.Time { return time.UnixMilli(i.value).UTC() }

// Add moves the instant by n instances of u.
func (i Instant) Add(u calendar.Unit, n int) Instant {
	return newInstant(calendar.Increment(i.built().c, u, n))
}

// Round aligns the instant to a u boundary. An invalid unit returns i.
func (i Instant) Round(u calendar.Unit, mode calendar.RoundMode) Instant {
	if !u.Valid() {
		return i
	}
	return FromValue(calendar.Round(i.value, u, mode))
}

// RoundDown aligns the instant to the start of the u instance containing it.
func (i Instant) RoundDown(u calendar.Unit) Instant {
	return i.Round(u, calendar.RoundFloor)
}

// RoundUp aligns the instant to the next u boundary unless it is one.
func (i Instant) RoundUp(u calendar.Unit) Instant {
	return i.Round(u, calendar.RoundCeil)
}

// Compare returns -1, 0 or 1 as i is before, equal to or after o.
func (i Instant) Compare(o Instant) int {
	switch {
	case i.value < o.value:
		return -1
	case i.value > o.value:
		return 1
	}
	return 0
}

func (i Instant) Before(o Instant) bool { return i.value < o.value }
func (i Instant) After(o Instant) bool  { return i.value > o.value }
func (i Instant) Equal(o Instant) bool  { return i.value == o.value }

// MarshalText implements encoding.TextMarshaler.
func (i Instant) MarshalText() ([]byte, error) {
	return []byte(i.Text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Instant) UnmarshalText(text []byte) error {
	v, err := InstantFromText(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
