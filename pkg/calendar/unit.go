package calendar

import (
	"fmt"
	"strings"
)

// Unit is a calendar unit: a named number of base units of one Level,
// aligned on a fixed base.
type Unit uint8

// Units ordered coarsest first. The zero Unit means "no unit".
const (
	Millennium Unit = iota + 1
	Century
	Decade
	Year
	Semester
	Trimester
	Quarter
	Month
	Week
	Day
	Hour
	Minute
	Second
)

type unitInfo struct {
	name       string
	level      Level
	multiplier int
	base       int
}

var unitTable = [...]unitInfo{
	Millennium: {"millennium", LevelYear, 1000, 1},
	Century:    {"century", LevelYear, 100, 1},
	Decade:     {"decade", LevelYear, 10, 0},
	Year:       {"year", LevelYear, 1, 0},
	Semester:   {"semester", LevelMonth, 6, 1},
	Trimester:  {"trimester", LevelMonth, 4, 1},
	Quarter:    {"quarter", LevelMonth, 3, 1},
	Month:      {"month", LevelMonth, 1, 1},
	Week:       {"week", LevelDay, 7, 1},
	Day:        {"day", LevelDay, 1, 1},
	Hour:       {"hour", LevelHour, 1, 0},
	Minute:     {"minute", LevelMinute, 1, 0},
	Second:     {"second", LevelSecond, 1, 0},
}

var allUnits = []Unit{
	Millennium, Century, Decade, Year,
	Semester, Trimester, Quarter, Month,
	Week, Day, Hour, Minute, Second,
}

// Units returns every unit, coarsest first.
func Units() []Unit {
	return append([]Unit(nil), allUnits...)
}

// UnitsAt returns the units subdividing level l, coarsest first.
func UnitsAt(l Level) []Unit {
	var units []Unit
	for _, u := range allUnits {
		if u.Level() == l {
			units = append(units, u)
		}
	}
	return units
}

// LevelUnit returns the single-multiplier unit of level l.
func LevelUnit(l Level) Unit {
	switch l {
	case LevelYear:
		return Year
	case LevelMonth:
		return Month
	case LevelDay:
		return Day
	case LevelHour:
		return Hour
	case LevelMinute:
		return Minute
	default:
		return Second
	}
}

// ParseUnit parses one of the unit names, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, u := range allUnits {
		if unitTable[u].name == name {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	return u >= Millennium && u <= Second
}

// String returns the unit name, or "" for the zero Unit.
func (u Unit) String() string {
	if u == 0 {
		return ""
	}
	if !u.Valid() {
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
	return u.info().name
}

func (u Unit) info() unitInfo {
	if !u.Valid() {
		return unitInfo{}
	}
	return unitTable[u]
}

// Level returns the level the unit subdivides.
func (u Unit) Level() Level {
	return u.info().level
}

// Multiplier returns how many level units make one u.
func (u Unit) Multiplier() int {
	return u.info().multiplier
}

// Base returns the alignment offset of the unit's start on its level.
// Week alignment follows ISO-8601 instead.
func (u Unit) Base() int {
	return u.info().base
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if u != 0 && !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, uint8(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text decodes to
// the zero Unit.
func (u *Unit) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = 0
		return nil
	}
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Compare orders units by the span of time they cover. It returns -1 when a
// is finer than b, +1 when a is coarser, and 0 when they are the same unit.
// The zero Unit is finer than everything.
func Compare(a, b Unit) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return -1
	case b == 0:
		return 1
	}
	if la, lb := a.Level(), b.Level(); la != lb {
		if la < lb {
			return 1
		}
		return -1
	}
	if a.Multiplier() > b.Multiplier() {
		return 1
	}
	return -1
}

// Coarser returns whichever of a and b covers the larger span.
func Coarser(a, b Unit) Unit {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// Finer returns whichever of a and b covers the smaller span, ignoring the
// zero Unit unless both are zero.
func Finer(a, b Unit) Unit {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	case Compare(a, b) <= 0:
		return a
	default:
		return b
	}
}
