package calendar_test

import (
	"testing"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFloorCeil verifies alignment of a single instant on every unit.
func TestFloorCeil(t *testing.T) {
	c := calendar.Components{2018, 4, 12, 13, 34, 42}
	tests := []struct {
		unit  calendar.Unit
		floor calendar.Components
		ceil  calendar.Components
	}{
		{calendar.Millennium, calendar.FromFields(2001), calendar.FromFields(3001)},
		{calendar.Century, calendar.FromFields(2001), calendar.FromFields(2101)},
		{calendar.Decade, calendar.FromFields(2010), calendar.FromFields(2020)},
		{calendar.Year, calendar.FromFields(2018), calendar.FromFields(2019)},
		{calendar.Semester, calendar.FromFields(2018, 1), calendar.FromFields(2018, 7)},
		{calendar.Trimester, calendar.FromFields(2018, 1), calendar.FromFields(2018, 5)},
		{calendar.Quarter, calendar.FromFields(2018, 4), calendar.FromFields(2018, 7)},
		{calendar.Month, calendar.FromFields(2018, 4), calendar.FromFields(2018, 5)},
		{calendar.Week, calendar.FromFields(2018, 4, 9), calendar.FromFields(2018, 4, 16)},
		{calendar.Day, calendar.FromFields(2018, 4, 12), calendar.FromFields(2018, 4, 13)},
		{calendar.Hour, calendar.FromFields(2018, 4, 12, 13), calendar.FromFields(2018, 4, 12, 14)},
		{calendar.Minute, calendar.FromFields(2018, 4, 12, 13, 34), calendar.FromFields(2018, 4, 12, 13, 35)},
		{calendar.Second, c, c},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			floor := calendar.Floor(c, tt.unit)
			assert.Equal(t, tt.floor, floor)
			assert.Equal(t, tt.ceil, calendar.Ceil(c, tt.unit))

			// Idempotence on boundaries.
			assert.Equal(t, floor, calendar.Floor(floor, tt.unit))
			assert.Equal(t, floor, calendar.Ceil(floor, tt.unit))
			assert.True(t, calendar.IsAligned(floor, tt.unit))
		})
	}
}

func TestFloorBeforeYearOne(t *testing.T) {
	assert.Equal(t, calendar.FromFields(-999), calendar.Floor(calendar.FromFields(-5), calendar.Millennium))
	assert.Equal(t, calendar.FromFields(-10), calendar.Floor(calendar.FromFields(-5), calendar.Decade))
}

func TestFloorInvalidUnit(t *testing.T) {
	c := calendar.FromFields(2018, 4, 12, 13, 34, 42)
	for _, u := range []calendar.Unit{0, calendar.Unit(99)} {
		assert.Equal(t, c, calendar.Floor(c, u))
		assert.Equal(t, c, calendar.Ceil(c, u))
		assert.Equal(t, c.Value(), calendar.Round(c.Value(), u, calendar.RoundCeil))
	}
}

// TestRoundValues verifies rounding of millisecond values.
func TestRoundValues(t *testing.T) {
	v := func(fields ...int) int64 { return calendar.FromFields(fields...).Value() }
	tests := []struct {
		in   int64
		unit calendar.Unit
		mode calendar.RoundMode
		want int64
	}{
		{v(2018, 1, 1), calendar.Month, calendar.RoundFloor, v(2018, 1)},
		{v(2018, 1, 1), calendar.Month, calendar.RoundCeil, v(2018, 1)},
		{v(2018, 1, 1, 1), calendar.Month, calendar.RoundFloor, v(2018, 1)},
		{v(2018, 1, 1, 1), calendar.Month, calendar.RoundCeil, v(2018, 2)},
		{v(2018, 1, 1, 1), calendar.Day, calendar.RoundCeil, v(2018, 1, 2)},
		{v(2018, 1, 1, 4), calendar.Hour, calendar.RoundCeil, v(2018, 1, 1, 4)},
		{v(2018, 1, 1, 4, 1), calendar.Hour, calendar.RoundFloor, v(2018, 1, 1, 4)},
		{v(2018, 1, 1, 4, 1), calendar.Hour, calendar.RoundCeil, v(2018, 1, 1, 5)},
		{v(2018, 1, 3), calendar.Quarter, calendar.RoundFloor, v(2018, 1)},
		{v(2018, 1, 3), calendar.Quarter, calendar.RoundCeil, v(2018, 4)},
		{v(2018, 1, 1), calendar.Quarter, calendar.RoundCeil, v(2018, 1)},
		{v(2019, 5, 13), calendar.Week, calendar.RoundFloor, v(2019, 5, 13)},
		{v(2019, 5, 13, 13), calendar.Week, calendar.RoundFloor, v(2019, 5, 13)},
		{v(2019, 5, 19), calendar.Week, calendar.RoundFloor, v(2019, 5, 13)},
		{v(2019, 5, 12, 23), calendar.Week, calendar.RoundFloor, v(2019, 5, 6)},
		{v(2019, 5, 13), calendar.Week, calendar.RoundCeil, v(2019, 5, 13)},
		{v(2019, 5, 13, 13), calendar.Week, calendar.RoundCeil, v(2019, 5, 20)},
		{v(2019, 5, 12, 23), calendar.Week, calendar.RoundCeil, v(2019, 5, 13)},
		{v(2019, 5, 6, 0, 0, 1), calendar.Week, calendar.RoundCeil, v(2019, 5, 13)},
		{v(2018, 1, 1) + 500, calendar.Second, calendar.RoundFloor, v(2018, 1, 1)},
		{v(2018, 1, 1) + 500, calendar.Second, calendar.RoundCeil, v(2018, 1, 1, 0, 0, 1)},
	}
	for _, tt := range tests {
		name := calendar.FromValue(tt.in).String() + "/" + tt.unit.String() + "/" + tt.mode.String()
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.Round(tt.in, tt.unit, tt.mode))
		})
	}
}

// TestIncrement verifies calendar-aware steps.
func TestIncrement(t *testing.T) {
	assert.Equal(t, calendar.FromFields(2018, 1), calendar.Increment(calendar.FromFields(2017, 12), calendar.Month, 1))
	assert.Equal(t, calendar.FromFields(2018, 1), calendar.Increment(calendar.FromFields(2017, 10), calendar.Quarter, 1))
	assert.Equal(t, calendar.FromFields(2017, 10), calendar.Increment(calendar.FromFields(2018, 1), calendar.Quarter, -1))
	assert.Equal(t, calendar.FromFields(2018, 1, 1), calendar.Increment(calendar.FromFields(2017, 12, 25), calendar.Week, 1))
	assert.Equal(t, calendar.FromFields(2101), calendar.Increment(calendar.FromFields(2001), calendar.Century, 1))
	assert.Equal(t,
		calendar.FromFields(2017, 3).Value(),
		calendar.IncrementValue(calendar.FromFields(2017, 2).Value(), calendar.Month, 1))
}

func TestParseRoundMode(t *testing.T) {
	for in, want := range map[string]calendar.RoundMode{
		"floor": calendar.RoundFloor,
		"down":  calendar.RoundFloor,
		"ceil":  calendar.RoundCeil,
		"UP":    calendar.RoundCeil,
	} {
		got, err := calendar.ParseRoundMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := calendar.ParseRoundMode("nearest")
	assert.ErrorIs(t, err, calendar.ErrUnknownRoundMode)
}
