package codec

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedFormat is returned when no token pattern matches.
var ErrUnrecognizedFormat = errors.New("unrecognized period format")

// SyntaxError reports the text that failed to parse and the token within it
// that no pattern accepted.
type SyntaxError struct {
	// Text is the complete input.
	Text string

	// Token is the offending token, after prefix completion.
	Token string

	// Reason is an optional detail such as an out-of-range field.
	Reason string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s: %q", ErrUnrecognizedFormat, e.Token)
	if e.Text != e.Token {
		msg += fmt.Sprintf(" in %q", e.Text)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns ErrUnrecognizedFormat.
func (e *SyntaxError) Unwrap() error {
	return ErrUnrecognizedFormat
}
