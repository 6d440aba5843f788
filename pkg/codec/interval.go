package codec

import (
	"errors"
	"regexp"
	"strings"

	"github.com/calperiod/calperiod-go/pkg/calendar"
)

// Interval separators.
const (
	AbbrSeparator   = ".."
	ISOSeparator    = "/"
	ISOAltSeparator = "--"
)

// separators in detection order.
var separators = []string{AbbrSeparator, ISOAltSeparator, ISOSeparator}

var (
	letterNumber = regexp.MustCompile(`^[A-Z]\d+$`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
)

// split cuts text at the first separator found, trying them in detection
// order. sep is "" when text is a single token.
func split(text string) (left, right, sep string) {
	for _, s := range separators {
		if l, r, ok := strings.Cut(text, s); ok {
			return l, r, s
		}
	}
	return text, "", ""
}

// Complete restores the prefix a shortened right-hand token shares with the
// left one. A bare number after a letter-prefixed token takes the letter
// (M1..3 is M1..M3); any other shorter token takes the leading characters
// of left it lacks (2017-03-12..14 is 2017-03-12..2017-03-14).
func Complete(left, right string) string {
	switch {
	case letterNumber.MatchString(left) && digitsOnly.MatchString(right):
		return left[:1] + right
	case len(right) < len(left):
		return left[:len(left)-len(right)] + right
	default:
		return right
	}
}

// Parse parses a single token or an interval of two tokens. The span's unit
// is that of the first token.
func Parse(text string) (Span, error) {
	left, right, sep := split(text)
	if sep != "" && (left == "" || right == "") {
		return Span{}, &SyntaxError{Text: text, Token: text, Reason: "open interval"}
	}
	span, err := parseSide(text, left)
	if err != nil {
		return Span{}, err
	}
	if sep == "" || right == left {
		return span, nil
	}
	last, err := parseSide(text, Complete(left, right))
	if err != nil {
		return Span{}, err
	}
	span.End = endOf(last, sep)
	return span, nil
}

// OpenSpan is a Span whose start or end may be unbounded. The fields of an
// open bound are zero.
type OpenSpan struct {
	Span
	OpenStart bool
	OpenEnd   bool
}

// ParseOpen is Parse extended to intervals with an empty side: "2000..",
// "..2000" and "..". An open start takes its unit from the end token.
func ParseOpen(text string) (OpenSpan, error) {
	left, right, sep := split(text)
	if sep == "" || (left != "" && right != "") {
		span, err := Parse(text)
		return OpenSpan{Span: span}, err
	}
	open := OpenSpan{OpenStart: left == "", OpenEnd: right == ""}
	switch {
	case !open.OpenStart:
		span, err := parseSide(text, left)
		if err != nil {
			return OpenSpan{}, err
		}
		open.Start, open.Unit = span.Start, span.Unit
	case !open.OpenEnd:
		span, err := parseSide(text, right)
		if err != nil {
			return OpenSpan{}, err
		}
		open.End, open.Unit = endOf(span, sep), span.Unit
	}
	return open, nil
}

// endOf returns the exclusive end contributed by the right-hand token: past
// it for the inclusive abbreviated notation, at its start for ISO.
func endOf(right Span, sep string) calendar.Components {
	if sep == AbbrSeparator {
		return right.End
	}
	return right.Start
}

func parseSide(text, token string) (Span, error) {
	span, err := ParseToken(token)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Text = text
		}
		return Span{}, err
	}
	return span, nil
}

// Reduce drops from b the prefix it shares with a. The cut only falls where
// a run of digits starts or ends in a, so the shortened token is never a
// fragment of a number.
func Reduce(a, b string) (string, string) {
	l := 0
	for l < len(a) && l < len(b) && a[l] == b[l] {
		l++
	}
	for l > 0 && isDigitAt(a, l-1) == isDigitAt(a, l) {
		l--
	}
	return a, b[l:]
}

func isDigitAt(s string, i int) bool {
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// ISOInterval joins the first unit and the unit following the period.
func ISOInterval(first, next string) string {
	first, next = Reduce(first, next)
	return first + ISOSeparator + next
}

// AbbrInterval joins the first and last unit of the period, or returns first
// alone when they are the same unit.
func AbbrInterval(first, last string) string {
	if first == last {
		return first
	}
	first, last = Reduce(first, last)
	return first + AbbrSeparator + last
}
