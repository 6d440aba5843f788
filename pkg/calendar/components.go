package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Milliseconds per fixed-length level.
const (
	MsPerSecond int64 = 1000
	MsPerMinute       = 60 * MsPerSecond
	MsPerHour         = 60 * MsPerMinute
	MsPerDay          = 24 * MsPerHour
)

// Average lengths used when converting between year- or month-based units and
// fixed-length ones.
const (
	AvgMsPerYear  = 365.2425 * float64(MsPerDay)
	AvgMsPerMonth = AvgMsPerYear / 12
)

// Calendar errors.
var (
	ErrUnknownLevel     = errors.New("unknown level")
	ErrUnknownUnit      = errors.New("unknown calendar unit")
	ErrUnknownRoundMode = errors.New("unknown round mode")
)

// Level is one of the six component axes of a point in time.
type Level int

const (
	LevelYear Level = iota
	LevelMonth
	LevelDay
	LevelHour
	LevelMinute
	LevelSecond
)

// NumLevels is the number of fields in a Components tuple.
const NumLevels = 6

var levelNames = [NumLevels]string{"year", "month", "day", "hour", "minute", "second"}

// String returns the lower-case level name.
func (l Level) String() string {
	if l < LevelYear || l > LevelSecond {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel parses a level name.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// msPerLevel holds the exact length of the fixed-length levels and the
// average length of the year and month levels.
var msPerLevel = [NumLevels]float64{
	AvgMsPerYear,
	AvgMsPerMonth,
	float64(MsPerDay),
	float64(MsPerHour),
	float64(MsPerMinute),
	float64(MsPerSecond),
}

// LevelMs returns the length of one unit of level l in milliseconds, using
// the average year and month for the two variable-length levels.
func LevelMs(l Level) float64 {
	return msPerLevel[l]
}

// Components is a (year, month, day, hour, minute, second) tuple.
type Components [NumLevels]int

// startComponents holds the value each field takes when it is not specified.
var startComponents = Components{1, 1, 1, 0, 0, 0}

// FromFields builds a normalized tuple from its leading fields. Missing
// trailing fields take their start value, so FromFields(2017, 3) is
// 2017-03-01T00:00:00. Out-of-range fields roll over through calendar
// arithmetic: FromFields(2017, 13) is 2018-01-01.
func FromFields(fields ...int) Components {
	c := startComponents
	copy(c[:], fields)
	return c.normalize()
}

// FromValue decodes a millisecond value. Sub-second precision is truncated
// toward the earlier second.
func FromValue(ms int64) Components {
	return FromTime(time.UnixMilli(ms).UTC())
}

// FromTime takes the wall-clock fields of t as they are, in t's location.
func FromTime(t time.Time) Components {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return Components{y, int(mo), d, h, mi, s}
}

func (c Components) Year() int   { return c[LevelYear] }
func (c Components) Month() int  { return c[LevelMonth] }
func (c Components) Day() int    { return c[LevelDay] }
func (c Components) Hour() int   { return c[LevelHour] }
func (c Components) Minute() int { return c[LevelMinute] }
func (c Components) Second() int { return c[LevelSecond] }

// Get returns the field at level l.
func (c Components) Get(l Level) int {
	return c[l]
}

// Time returns the tuple as a UTC time.
func (c Components) Time() time.Time {
	return time.Date(c[LevelYear], time.Month(c[LevelMonth]), c[LevelDay],
		c[LevelHour], c[LevelMinute], c[LevelSecond], 0, time.UTC)
}

// Value returns the tuple as milliseconds since the Unix epoch.
func (c Components) Value() int64 {
	return c.Time().UnixMilli()
}

func (c Components) normalize() Components {
	return FromTime(c.Time())
}

// StartLevel returns the coarsest level L such that every field finer than L
// holds its start value.
func (c Components) StartLevel() Level {
	l := LevelSecond
	for l > LevelYear && c[l] == startComponents[l] {
		l--
	}
	return l
}

// Add adds n to the field at level l and renormalizes.
func (c Components) Add(l Level, n int) Components {
	c[l] += n
	return c.normalize()
}

// Truncate resets every field finer than l to its start value.
func (c Components) Truncate(l Level) Components {
	for i := l + 1; i <= LevelSecond; i++ {
		c[i] = startComponents[i]
	}
	return c
}

// String formats the tuple as YYYY-MM-DDTHH:MM:SS.
func (c Components) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		c[LevelYear], c[LevelMonth], c[LevelDay],
		c[LevelHour], c[LevelMinute], c[LevelSecond])
}

// DaysIn returns the number of days of month m in year y.
func DaysIn(y, m int) int {
	return time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
