package resolver_test

import (
	"fmt"
	"testing"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/codec"
	"github.com/calperiod/calperiod-go/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(fields ...int) int64 {
	return calendar.FromFields(fields...).Value()
}

type resolveCase struct {
	start, end int64
	abbr       string
	iso        string
	duration   int
	unit       calendar.Unit
}

func (c resolveCase) name() string {
	return fmt.Sprintf("%s_%s", calendar.FromValue(c.start), calendar.FromValue(c.end))
}

// TestResolveSingleUnits verifies one-unit periods of every resolution.
func TestResolveSingleUnits(t *testing.T) {
	tests := []resolveCase{
		{v(2017), v(2018), "2017", "2017/2018", 1, calendar.Year},
		{v(2017, 12), v(2018, 1), "2017-12", "2017-12/2018-01", 1, calendar.Month},
		{v(2017, 1), v(2017, 2), "2017-01", "2017-01/02", 1, calendar.Month},
		{v(2017, 12, 1), v(2017, 12, 2), "2017-12-01", "2017-12-01/02", 1, calendar.Day},
		{v(2017, 12, 31), v(2018), "2017-12-31", "2017-12-31/2018-01-01", 1, calendar.Day},
		{v(2017, 11, 30), v(2017, 12), "2017-11-30", "2017-11-30/12-01", 1, calendar.Day},
		{v(2017, 1, 30), v(2017, 2, 6), "2017-W05", "2017-W05/06", 1, calendar.Week},
		{v(2013, 4, 8), v(2013, 4, 15), "2013-W15", "2013-W15/16", 1, calendar.Week},
		{v(2009, 12, 28), v(2010, 1, 4), "2009-W53", "2009-W53/2010-W01", 1, calendar.Week},
		{v(2010, 1, 4), v(2010, 1, 11), "2010-W01", "2010-W01/02", 1, calendar.Week},
		{v(2011, 12, 26), v(2012, 1, 2), "2011-W52", "2011-W52/2012-W01", 1, calendar.Week},
		{v(2013, 12, 30), v(2014, 1, 6), "2014-W01", "2014-W01/02", 1, calendar.Week},
		{v(2017, 1), v(2017, 4), "2017-Q1", "2017-Q1/2", 1, calendar.Quarter},
		{v(2017, 10), v(2018), "2017-Q4", "2017-Q4/2018-Q1", 1, calendar.Quarter},
		{v(2017, 1), v(2017, 7), "2017S1", "2017S1/2", 1, calendar.Semester},
		{v(2017, 5), v(2017, 9), "2017t2", "2017t2/3", 1, calendar.Trimester},
		{v(2017, 12, 1, 3), v(2017, 12, 1, 4), "2017-12-01T03", "2017-12-01T03/04", 1, calendar.Hour},
		{v(2017, 12, 31, 23), v(2018), "2017-12-31T23", "2017-12-31T23/2018-01-01T00", 1, calendar.Hour},
		{v(2017, 12, 1, 3, 2), v(2017, 12, 1, 3, 3), "2017-12-01T03:02", "2017-12-01T03:02/03", 1, calendar.Minute},
		{v(2018, 3, 4, 5, 6, 7), v(2018, 3, 4, 5, 6, 8), "2018-03-04T05:06:07", "2018-03-04T05:06:07/08", 1, calendar.Second},
		{v(2001), v(2101), "C21", "C21/22", 1, calendar.Century},
		{v(1901), v(2001), "C20", "C20/21", 1, calendar.Century},
		{v(2001), v(3001), "M3", "M3/4", 1, calendar.Millennium},
		{v(1001), v(2001), "M2", "M2/3", 1, calendar.Millennium},
		{v(2000), v(2010), "D200", "D200/201", 1, calendar.Decade},
		{v(2010), v(2020), "D201", "D201/202", 1, calendar.Decade},
	}
	for _, tt := range tests {
		t.Run(tt.name(), func(t *testing.T) {
			r, err := resolver.Resolve(tt.start, tt.end, resolver.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.abbr, r.Abbr)
			assert.Equal(t, tt.iso, r.ISO)
			assert.Equal(t, tt.duration, r.Duration)
			assert.Equal(t, tt.unit, r.Unit)
		})
	}
}

// TestResolveMultipleUnits verifies periods spanning several units.
func TestResolveMultipleUnits(t *testing.T) {
	tests := []resolveCase{
		{v(2001), v(4001), "M3..4", "M3/5", 2, calendar.Millennium},
		{v(1001), v(4001), "M2..4", "M2/5", 3, calendar.Millennium},
		{v(2001), v(2201), "C21..22", "C21/23", 2, calendar.Century},
		{v(1801), v(2001), "C19..20", "C19/21", 2, calendar.Century},
		{v(2000), v(2020), "D200..201", "D200/202", 2, calendar.Decade},
		{v(2000), v(2100), "D200..209", "D200/210", 10, calendar.Decade},
		{v(1000), v(2000), "D100..199", "D100/200", 100, calendar.Decade},
		{v(2017), v(2019), "2017..2018", "2017/2019", 2, calendar.Year},
		{v(2011), v(2021), "2011..2020", "2011/2021", 10, calendar.Year},
		{v(1833), v(1933), "1833..1932", "1833/1933", 100, calendar.Year},
		{v(1003), v(2003), "1003..2002", "1003/2003", 1000, calendar.Year},
		{v(2017, 12), v(2018, 4), "2017-12..2018-03", "2017-12/2018-04", 4, calendar.Month},
		{v(2017, 1), v(2017, 6), "2017-01..05", "2017-01/06", 5, calendar.Month},
		{v(2017, 2), v(2018, 2), "2017-02..2018-01", "2017-02/2018-02", 12, calendar.Month},
		{v(2001, 3), v(2101, 3), "2001-03..2101-02", "2001-03/2101-03", 1200, calendar.Month},
		{v(2017, 12, 1), v(2017, 12, 4), "2017-12-01..03", "2017-12-01/04", 3, calendar.Day},
		{v(2017, 12, 31), v(2018, 1, 3), "2017-12-31..2018-01-02", "2017-12-31/2018-01-03", 3, calendar.Day},
		{v(2017, 3, 28), v(2017, 4), "2017-03-28..31", "2017-03-28/04-01", 4, calendar.Day},
		{v(2017, 3, 30), v(2017, 4, 12), "2017-03-30..04-11", "2017-03-30/04-12", 13, calendar.Day},
		{v(2017, 1, 2), v(2018, 1, 2), "2017-01-02..2018-01-01", "2017-01-02/2018-01-02", 365, calendar.Day},
		{v(2017, 1, 29), v(2017, 2, 5), "2017-01-29..02-04", "2017-01-29/02-05", 7, calendar.Day},
		{v(2017, 1, 30), v(2017, 2, 13), "2017-W05..06", "2017-W05/07", 2, calendar.Week},
		{v(2009, 12, 28), v(2010, 1, 18), "2009-W53..2010-W02", "2009-W53/2010-W03", 3, calendar.Week},
		{v(2010, 1, 4), v(2010, 2, 1), "2010-W01..04", "2010-W01/05", 4, calendar.Week},
		{v(2013, 12, 30), v(2014, 1, 20), "2014-W01..03", "2014-W01/04", 3, calendar.Week},
		{v(2014, 1, 6), v(2015, 1, 12), "2014-W02..2015-W02", "2014-W02/2015-W03", 53, calendar.Week},
		{v(2014, 1, 6), v(2015, 1, 5), "2014-W02..2015-W01", "2014-W02/2015-W02", 52, calendar.Week},
		{v(2017, 4), v(2017, 10), "2017-Q2..3", "2017-Q2/4", 2, calendar.Quarter},
		{v(2017, 4), v(2018, 1), "2017-Q2..4", "2017-Q2/2018-Q1", 3, calendar.Quarter},
		{v(2017, 7), v(2018, 4), "2017-Q3..2018-Q1", "2017-Q3/2018-Q2", 3, calendar.Quarter},
		{v(2017, 10), v(2019), "2017-Q4..2018-Q4", "2017-Q4/2019-Q1", 5, calendar.Quarter},
		{v(2017, 12, 1, 3), v(2017, 12, 1, 5), "2017-12-01T03..04", "2017-12-01T03/05", 2, calendar.Hour},
		{v(2017, 12, 1, 23), v(2017, 12, 2, 3), "2017-12-01T23..02T02", "2017-12-01T23/02T03", 4, calendar.Hour},
		{v(2017, 12, 1, 0), v(2018, 1, 1, 1), "2017-12-01T00..2018-01-01T00", "2017-12-01T00/2018-01-01T01", 745, calendar.Hour},
		{v(2017, 12, 31, 23), v(2019), "2017-12-31T23..2018-12-31T23", "2017-12-31T23/2019-01-01T00", 8761, calendar.Hour},
		{v(2017, 12, 1, 3, 2), v(2017, 12, 2, 3, 2), "2017-12-01T03:02..02T03:01", "2017-12-01T03:02/02T03:02", 1440, calendar.Minute},
		{v(2017, 4, 3), v(2019, 5, 3, 13, 32), "2017-04-03T00:00..2019-05-03T13:31", "2017-04-03T00:00/2019-05-03T13:32", 1095212, calendar.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name(), func(t *testing.T) {
			r, err := resolver.Resolve(tt.start, tt.end, resolver.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.abbr, r.Abbr)
			assert.Equal(t, tt.iso, r.ISO)
			assert.Equal(t, tt.duration, r.Duration)
			assert.Equal(t, tt.unit, r.Unit)
		})
	}
}

// TestResolveForced verifies a forced resolution overrides detection.
func TestResolveForced(t *testing.T) {
	tests := []struct {
		start, end int64
		unit       calendar.Unit
		abbr       string
		duration   int
	}{
		{v(2001), v(3001), calendar.Century, "C21..30", 10},
		{v(1001), v(2001), calendar.Century, "C11..20", 10},
		{v(2001), v(4001), calendar.Century, "C21..40", 20},
		{v(1001), v(4001), calendar.Century, "C11..40", 30},
		{v(2018), v(2020), calendar.Year, "2018..2019", 2},
		{v(2018), v(2020), calendar.Month, "2018-01..2019-12", 24},
		{v(2018), v(2020), calendar.Day, "2018-01-01..2019-12-31", 730},
		{v(2017, 1, 30), v(2017, 2, 6), calendar.Day, "2017-01-30..02-05", 7},
		{v(2019, 1), v(2020, 1), calendar.Quarter, "2019-Q1..4", 4},
	}
	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			r, err := resolver.Resolve(tt.start, tt.end, resolver.Options{Resolution: tt.unit})
			require.NoError(t, err)
			assert.Equal(t, tt.abbr, r.Abbr)
			assert.Equal(t, tt.duration, r.Duration)
			assert.Equal(t, tt.unit, r.Unit)
		})
	}
}

// TestResolveErrors verifies both error kinds.
func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name       string
		start, end int64
		opts       resolver.Options
		want       error
	}{
		{"forced coarser than instants", v(2017, 3), v(2017, 4), resolver.Options{Resolution: calendar.Year}, resolver.ErrInvalidForcedResolution},
		{"forced unit does not divide", v(2017), v(2019), resolver.Options{Resolution: calendar.Decade}, resolver.ErrInvalidForcedResolution},
		{"forced week off monday", v(2017, 1, 29), v(2017, 2, 5), resolver.Options{Resolution: calendar.Week}, resolver.ErrInvalidForcedResolution},
		{"forced unknown unit", v(2017), v(2018), resolver.Options{Resolution: calendar.Unit(99)}, resolver.ErrInvalidForcedResolution},
		{"several units when one is required", v(2017), v(2019), resolver.DefaultOptions(), resolver.ErrInvalidPeriod},
		{"empty period", v(2017), v(2017), resolver.Options{}, resolver.ErrInvalidPeriod},
		{"reversed period", v(2018), v(2017), resolver.Options{}, resolver.ErrInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.start, tt.end, tt.opts)
			require.ErrorIs(t, err, tt.want)

			var re *resolver.ResolveError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.start, re.Start)
			assert.Equal(t, tt.end, re.End)
			assert.NotEmpty(t, re.Error())
		})
	}
}

// TestResolveUnitBoundaries verifies that every unit's own extent resolves
// to a single instance of that unit.
func TestResolveUnitBoundaries(t *testing.T) {
	for _, u := range calendar.Units() {
		t.Run(u.String(), func(t *testing.T) {
			c := calendar.Floor(calendar.FromFields(2019, 11, 20, 17, 45, 12), u)
			for i := 0; i < 30; i++ {
				next := calendar.Increment(c, u, 1)
				r, err := resolver.Resolve(c.Value(), next.Value(), resolver.DefaultOptions())
				require.NoError(t, err, c.String())
				assert.Equal(t, 1, r.Duration)
				assert.Equal(t, codec.Format(u, c), r.Abbr)
				c = next
			}
		})
	}
}

// TestResolveTextDuality verifies the abbreviated and ISO texts parse back
// to the resolved period.
func TestResolveTextDuality(t *testing.T) {
	periods := [][2]int64{
		{v(2017, 1, 30), v(2017, 2, 13)},
		{v(2009, 12, 28), v(2010, 1, 18)},
		{v(2017, 12, 1, 23), v(2017, 12, 2, 3)},
		{v(2001), v(2201)},
		{v(2000), v(2100)},
		{v(2017, 10), v(2019)},
		{v(2017, 3, 30), v(2017, 4, 12)},
		{v(2017, 12, 1, 3, 2), v(2017, 12, 2, 3, 2)},
	}
	for _, p := range periods {
		r, err := resolver.Resolve(p[0], p[1], resolver.Options{})
		require.NoError(t, err)

		for _, text := range []string{r.Abbr, r.ISO} {
			span, err := codec.Parse(text)
			require.NoError(t, err, text)
			assert.Equal(t, p[0], span.StartValue(), text)
			assert.Equal(t, p[1], span.EndValue(), text)
			assert.Equal(t, r.Unit, span.Unit, text)
		}
	}
}
