// Package version provides wire format version parsing and comparison.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the wire format version written by this library.
const Current = "1.0"

// ErrIncompatible is returned when a version's major number differs from
// Current.
var ErrIncompatible = errors.New("incompatible version")

// FormatVersion represents a parsed "major.minor" format version.
type FormatVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (FormatVersion, error) {
	majorText, minorText, ok := strings.Cut(s, ".")
	if !ok || strings.Contains(minorText, ".") {
		return FormatVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(majorText, 10, 16)
	if err != nil {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(minorText, 10, 16)
	if err != nil {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return FormatVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// MustParse is Parse for compile-time constants.
func MustParse(s string) FormatVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor".
func (v FormatVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v FormatVersion) Compatible(other FormatVersion) bool {
	return v.Major == other.Major
}

// Check parses s and verifies it can be read by this library. Minor
// versions newer than Current are accepted; unknown fields are ignored.
func Check(s string) (FormatVersion, error) {
	v, err := Parse(s)
	if err != nil {
		return FormatVersion{}, err
	}
	if current := MustParse(Current); !current.Compatible(v) {
		return v, fmt.Errorf("%w: %s, supported %d.x", ErrIncompatible, v, current.Major)
	}
	return v, nil
}
