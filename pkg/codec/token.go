package codec

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/calperiod/calperiod-go/pkg/calendar"
)

// Span is the exact extent of a parsed token or interval. End is exclusive.
type Span struct {
	Start calendar.Components
	End   calendar.Components
	Unit  calendar.Unit
}

// StartValue returns Start in milliseconds.
func (s Span) StartValue() int64 { return s.Start.Value() }

// EndValue returns End in milliseconds.
func (s Span) EndValue() int64 { return s.End.Value() }

// rule is the token pattern of one unit. bounds receives the integer
// capture groups and reports false for out-of-range fields.
type rule struct {
	unit   calendar.Unit
	re     *regexp.Regexp
	bounds func(n []int) (start, end calendar.Components, ok bool)
}

var rules = []rule{
	{calendar.Millennium, regexp.MustCompile(`^M(\d+)$`), yearBounds(calendar.Millennium)},
	{calendar.Century, regexp.MustCompile(`^C(\d+)$`), yearBounds(calendar.Century)},
	{calendar.Decade, regexp.MustCompile(`^D(\d+)$`), yearBounds(calendar.Decade)},
	{calendar.Year, regexp.MustCompile(`^(\d+)$`), yearBounds(calendar.Year)},
	{calendar.Semester, regexp.MustCompile(`^(\d{4})S(\d)$`), monthBounds(calendar.Semester)},
	{calendar.Trimester, regexp.MustCompile(`^(\d{4})t(\d)$`), monthBounds(calendar.Trimester)},
	{calendar.Quarter, regexp.MustCompile(`^(\d{4})-?Q(\d)$`), monthBounds(calendar.Quarter)},
	{calendar.Month, regexp.MustCompile(`^(\d{4})-(\d\d)$`), monthBounds(calendar.Month)},
	{calendar.Week, regexp.MustCompile(`^(\d{4})-?W(\d\d)$`), weekBounds},
	{calendar.Day, regexp.MustCompile(`^(\d{4})-(\d\d)-(\d\d)$`), fieldBounds},
	{calendar.Hour, regexp.MustCompile(`^(\d{4})-(\d\d)-(\d\d)[T ](\d\d)$`), fieldBounds},
	{calendar.Minute, regexp.MustCompile(`^(\d{4})-(\d\d)-(\d\d)[T ](\d\d):(\d\d)$`), fieldBounds},
	{calendar.Second, regexp.MustCompile(`^(\d{4})-(\d\d)-(\d\d)[T ](\d\d):(\d\d):(\d\d)$`), fieldBounds},
}

// yearBounds maps instance n of a year-level unit to its years:
// the first year is (n-base)*multiplier+base.
func yearBounds(u calendar.Unit) func([]int) (calendar.Components, calendar.Components, bool) {
	m, b := u.Multiplier(), u.Base()
	return func(n []int) (calendar.Components, calendar.Components, bool) {
		year := func(k int) int { return (k-b)*m + b }
		if !validYear(year(n[0])) {
			return calendar.Components{}, calendar.Components{}, false
		}
		return calendar.FromFields(year(n[0])), calendar.FromFields(year(n[0] + 1)), true
	}
}

// monthBounds maps instance k of a month-level unit within a year to its
// months: the first month is (k-1)*multiplier+1.
func monthBounds(u calendar.Unit) func([]int) (calendar.Components, calendar.Components, bool) {
	m := u.Multiplier()
	return func(n []int) (calendar.Components, calendar.Components, bool) {
		y, k := n[0], n[1]
		if !validYear(y) || k < 1 || k > 12/m {
			return calendar.Components{}, calendar.Components{}, false
		}
		month := func(k int) int { return (k-1)*m + 1 }
		return calendar.FromFields(y, month(k)), calendar.FromFields(y, month(k+1)), true
	}
}

func weekBounds(n []int) (calendar.Components, calendar.Components, bool) {
	y, w := n[0], n[1]
	if !validYear(y) || w < 1 || w > calendar.WeeksInYear(y) {
		return calendar.Components{}, calendar.Components{}, false
	}
	return calendar.StartOfISOWeek(y, w), calendar.StartOfISOWeek(y, w+1), true
}

// fieldBounds handles day, hour, minute and second tokens: the end is the
// start with its finest field incremented.
func fieldBounds(n []int) (calendar.Components, calendar.Components, bool) {
	if !validFields(n) {
		return calendar.Components{}, calendar.Components{}, false
	}
	start := calendar.FromFields(n...)
	return start, start.Add(calendar.Level(len(n)-1), 1), true
}

// validYear bounds the first year of a token. Negative years come only
// from millennium and century instances before year 1.
func validYear(y int) bool {
	return y >= -maxYear && y <= maxYear
}

const maxYear = 9999

func validFields(n []int) bool {
	limits := [calendar.NumLevels][2]int{{0, 9999}, {1, 12}, {1, 31}, {0, 23}, {0, 59}, {0, 59}}
	for i, v := range n {
		if v < limits[i][0] || v > limits[i][1] {
			return false
		}
	}
	return len(n) < 3 || n[2] <= calendar.DaysIn(n[0], n[1])
}

// ParseToken parses a single unit token.
func ParseToken(token string) (Span, error) {
	for _, r := range rules {
		groups := r.re.FindStringSubmatch(token)
		if groups == nil {
			continue
		}
		n := make([]int, 0, len(groups)-1)
		for _, g := range groups[1:] {
			v, err := strconv.Atoi(g)
			if err != nil {
				return Span{}, &SyntaxError{Text: token, Token: token, Reason: err.Error()}
			}
			n = append(n, v)
		}
		start, end, ok := r.bounds(n)
		if !ok {
			return Span{}, &SyntaxError{Text: token, Token: token, Reason: fmt.Sprintf("%s field out of range", r.unit)}
		}
		return Span{Start: start, End: end, Unit: r.unit}, nil
	}
	return Span{}, &SyntaxError{Text: token, Token: token}
}

// Format renders the token of the u instance containing c.
func Format(u calendar.Unit, c calendar.Components) string {
	y := pad(c.Year(), 4)
	switch u {
	case calendar.Millennium:
		return "M" + strconv.Itoa(yearIndex(u, c.Year()))
	case calendar.Century:
		return "C" + strconv.Itoa(yearIndex(u, c.Year()))
	case calendar.Decade:
		return "D" + strconv.Itoa(yearIndex(u, c.Year()))
	case calendar.Year:
		return y
	case calendar.Semester:
		return fmt.Sprintf("%sS%d", y, monthIndex(u, c.Month()))
	case calendar.Trimester:
		return fmt.Sprintf("%st%d", y, monthIndex(u, c.Month()))
	case calendar.Quarter:
		return fmt.Sprintf("%s-Q%d", y, monthIndex(u, c.Month()))
	case calendar.Month:
		return fmt.Sprintf("%s-%02d", y, c.Month())
	case calendar.Week:
		iy, w := calendar.ISOWeek(c)
		return fmt.Sprintf("%s-W%02d", pad(iy, 4), w)
	case calendar.Day:
		return fmt.Sprintf("%s-%02d-%02d", y, c.Month(), c.Day())
	case calendar.Hour:
		return fmt.Sprintf("%s-%02d-%02dT%02d", y, c.Month(), c.Day(), c.Hour())
	case calendar.Minute:
		return fmt.Sprintf("%s-%02d-%02dT%02d:%02d", y, c.Month(), c.Day(), c.Hour(), c.Minute())
	default:
		return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d", y, c.Month(), c.Day(), c.Hour(), c.Minute(), c.Second())
	}
}

func yearIndex(u calendar.Unit, year int) int {
	return u.Base() + floorDiv(year-u.Base(), u.Multiplier())
}

func monthIndex(u calendar.Unit, month int) int {
	return 1 + (month-1)/u.Multiplier()
}

func pad(v, width int) string {
	return fmt.Sprintf("%0*d", width, v)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
