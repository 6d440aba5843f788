package calendar

import (
	"fmt"
	"strings"
)

// RoundMode selects the direction of Round.
type RoundMode int

const (
	// RoundFloor aligns down to the unit boundary at or before the value.
	RoundFloor RoundMode = iota

	// RoundCeil aligns up to the unit boundary at or after the value. A value
	// already on a boundary is returned unchanged.
	RoundCeil
)

func (m RoundMode) String() string {
	switch m {
	case RoundFloor:
		return "floor"
	case RoundCeil:
		return "ceil"
	default:
		return fmt.Sprintf("roundmode(%d)", int(m))
	}
}

// ParseRoundMode accepts floor, down, ceil and up.
func ParseRoundMode(s string) (RoundMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "floor", "down", "":
		return RoundFloor, nil
	case "ceil", "up":
		return RoundCeil, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRoundMode, s)
	}
}

// Increment moves c by n instances of u using calendar arithmetic, so a
// month step from January 1st always lands on February 1st.
func Increment(c Components, u Unit, n int) Components {
	return c.Add(u.Level(), n*u.Multiplier())
}

// IncrementValue is Increment on millisecond values.
func IncrementValue(v int64, u Unit, n int) int64 {
	return Increment(FromValue(v), u, n).Value()
}

// Floor aligns c down to the start of the u instance containing it.
// An invalid unit leaves c unchanged.
func Floor(c Components, u Unit) Components {
	if !u.Valid() {
		return c
	}
	if u == Week {
		d := c.Truncate(LevelDay)
		return d.Add(LevelDay, 1-ISOWeekday(d.Year(), d.Month(), d.Day()))
	}
	l := u.Level()
	f := c.Truncate(l)
	if m := u.Multiplier(); m > 1 {
		b := u.Base()
		f[l] = b + floorDiv(f[l]-b, m)*m
	}
	return f
}

// Ceil aligns c up to the next u boundary unless it already is one.
func Ceil(c Components, u Unit) Components {
	f := Floor(c, u)
	if f == c {
		return c
	}
	return Increment(f, u, 1)
}

// Round aligns a millisecond value to a u boundary.
func Round(v int64, u Unit, mode RoundMode) int64 {
	f := Floor(FromValue(v), u).Value()
	if mode == RoundCeil && f != v {
		return IncrementValue(f, u, 1)
	}
	return f
}

// IsAligned reports whether c starts an instance of u.
func IsAligned(c Components, u Unit) bool {
	return Floor(c, u) == c
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
