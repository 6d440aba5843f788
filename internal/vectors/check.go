package vectors

import (
	"errors"
	"fmt"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/codec"
	"github.com/calperiod/calperiod-go/pkg/resolver"
)

// errorNames maps the names used in Expect.Error to engine errors.
var errorNames = map[string]error{
	"unrecognized":              codec.ErrUnrecognizedFormat,
	"invalid_period":            resolver.ErrInvalidPeriod,
	"invalid_forced_resolution": resolver.ErrInvalidForcedResolution,
	"unknown_unit":              calendar.ErrUnknownUnit,
	"not_week_start":            errNotWeekStart,
}

// errNotWeekStart stands in for YearWeek rejecting a day.
var errNotWeekStart = errors.New("not the first day of an ISO week")

// Failure describes a vector the engine did not satisfy.
type Failure struct {
	Suite  *Suite
	Index  int
	Vector Vector
	Err    error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s:%d: %s vector %d: %v", f.Suite.File, f.Vector.Line, f.Suite.Name, f.Index, f.Err)
}

// Run checks every vector of every suite and returns the failures.
func Run(suites []*Suite) []Failure {
	var failures []Failure
	for _, s := range suites {
		for i, v := range s.Vectors {
			if err := Check(s.Kind, v); err != nil {
				failures = append(failures, Failure{Suite: s, Index: i, Vector: v, Err: err})
			}
		}
	}
	return failures
}

// Count returns the number of vectors across suites.
func Count(suites []*Suite) int {
	n := 0
	for _, s := range suites {
		n += len(s.Vectors)
	}
	return n
}

// Check runs a single vector, returning nil when the engine behaves as
// expected.
func Check(k Kind, v Vector) error {
	switch k {
	case KindParse:
		return checkParse(v)
	case KindFormat:
		return checkFormat(v)
	case KindRound:
		return checkRound(v)
	case KindWeek:
		return checkWeek(v)
	}
	return fmt.Errorf("unknown kind %q", k)
}

func checkParse(v Vector) error {
	span, err := codec.Parse(v.Text)
	if done, err := expectError(v.Expect, err); done {
		return err
	}
	if err := expectFields("start", v.Expect.Start, span.Start); err != nil {
		return err
	}
	if err := expectFields("end", v.Expect.End, span.End); err != nil {
		return err
	}
	return expectString("unit", v.Expect.Unit, span.Unit.String())
}

func checkFormat(v Vector) error {
	var unit calendar.Unit
	if err := unit.UnmarshalText([]byte(v.Unit)); err != nil {
		return err
	}
	opts := resolver.Options{Resolution: unit, RequireSingleUnit: v.Single}
	start := calendar.FromFields(v.Start...).Value()
	end := calendar.FromFields(v.End...).Value()

	res, err := resolver.Resolve(start, end, opts)
	if done, err := expectError(v.Expect, err); done {
		return err
	}
	if err := expectString("unit", v.Expect.Unit, res.Unit.String()); err != nil {
		return err
	}
	if v.Expect.Duration != 0 && v.Expect.Duration != res.Duration {
		return fmt.Errorf("duration = %d, want %d", res.Duration, v.Expect.Duration)
	}
	if err := expectString("abbr", v.Expect.Abbr, res.Abbr); err != nil {
		return err
	}
	return expectString("iso", v.Expect.ISO, res.ISO)
}

func checkRound(v Vector) error {
	unit, err := calendar.ParseUnit(v.Unit)
	if done, err := expectError(v.Expect, err); done {
		return err
	}
	mode, err := calendar.ParseRoundMode(v.Mode)
	if err != nil {
		return err
	}
	got := calendar.Round(calendar.FromFields(v.Start...).Value(), unit, mode)
	return expectFields("start", v.Expect.Start, calendar.FromValue(got))
}

func checkWeek(v Vector) error {
	var err error
	y, w, ok := calendar.YearWeek(v.Year, v.YearDay)
	if !ok {
		err = errNotWeekStart
	}
	if done, err := expectError(v.Expect, err); done {
		return err
	}
	if y != v.Expect.ISOYear || w != v.Expect.Week {
		return fmt.Errorf("week = %d-W%02d, want %d-W%02d", y, w, v.Expect.ISOYear, v.Expect.Week)
	}
	return nil
}

// expectError reports whether the vector's outcome is settled by err: done
// is true when an error was expected or occurred, with a non-nil result if
// they disagree.
func expectError(want Expect, err error) (bool, error) {
	if want.Error == "" {
		if err != nil {
			return true, fmt.Errorf("unexpected error: %w", err)
		}
		return false, nil
	}
	target, ok := errorNames[want.Error]
	if !ok {
		return true, fmt.Errorf("unknown expected error %q", want.Error)
	}
	if !errors.Is(err, target) {
		return true, fmt.Errorf("error = %v, want %v", err, target)
	}
	return true, nil
}

func expectFields(name string, want []int, got calendar.Components) error {
	if len(want) == 0 {
		return nil
	}
	if w := calendar.FromFields(want...); w != got {
		return fmt.Errorf("%s = %s, want %s", name, got, w)
	}
	return nil
}

func expectString(name, want, got string) error {
	if want != "" && want != got {
		return fmt.Errorf("%s = %q, want %q", name, got, want)
	}
	return nil
}
