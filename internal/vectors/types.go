// Package vectors provides the YAML conformance vectors for the period
// engine and the code that checks the engine against them.
package vectors

import (
	"strconv"
)

// Kind selects what a suite's vectors exercise.
type Kind string

const (
	// KindParse vectors parse Text and expect its bounds and unit.
	KindParse Kind = "parse"

	// KindFormat vectors resolve [Start, End) and expect its renderings.
	KindFormat Kind = "format"

	// KindRound vectors round Start to Unit with Mode.
	KindRound Kind = "round"

	// KindWeek vectors map (Year, YearDay) to an ISO week.
	KindWeek Kind = "week"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindParse, KindFormat, KindRound, KindWeek:
		return true
	}
	return false
}

// Suite is one vectors file.
type Suite struct {
	// Name identifies the suite in failure reports.
	Name string `yaml:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description,omitempty"`

	// Kind applies to every vector in the suite.
	Kind Kind `yaml:"kind"`

	// Vectors are checked in order.
	Vectors []Vector `yaml:"vectors"`

	// File is the path the suite was loaded from.
	File string `yaml:"-"`
}

// Vector is a single input with its expected outcome. Instants are field
// lists as accepted by calendar.FromFields, e.g. [2018, 5] for
// 2018-05-01T00:00:00.
type Vector struct {
	Text    string `yaml:"text,omitempty"`
	Start   []int  `yaml:"start,omitempty,flow"`
	End     []int  `yaml:"end,omitempty,flow"`
	Unit    string `yaml:"unit,omitempty"`
	Mode    string `yaml:"mode,omitempty"`
	Single  bool   `yaml:"single,omitempty"`
	Year    int    `yaml:"year,omitempty"`
	YearDay int    `yaml:"yearday,omitempty"`

	Expect Expect `yaml:"expect"`

	// Line is the line of the vector in its file.
	Line int `yaml:"-"`
}

// Expect holds the expected outcome of a vector. Zero fields are not
// checked.
type Expect struct {
	Start    []int  `yaml:"start,omitempty,flow"`
	End      []int  `yaml:"end,omitempty,flow"`
	Unit     string `yaml:"unit,omitempty"`
	Duration int    `yaml:"duration,omitempty"`
	Abbr     string `yaml:"abbr,omitempty"`
	ISO      string `yaml:"iso,omitempty"`
	ISOYear  int    `yaml:"iso_year,omitempty"`
	Week     int    `yaml:"week,omitempty"`

	// Error names the expected failure: unrecognized, invalid_period,
	// invalid_forced_resolution, unknown_unit or not_week_start.
	Error string `yaml:"error,omitempty"`
}

// LoadError provides details about a vectors loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.File
	if e.Line > 0 {
		msg += ":" + strconv.Itoa(e.Line)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
