package period_test

import (
	"testing"

	"github.com/calperiod/calperiod-go/internal/vectors"
	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRangeVectors builds a Range for every resolvable format vector and
// parses its text back.
func TestRangeVectors(t *testing.T) {
	suites, err := vectors.Load()
	require.NoError(t, err)

	for _, s := range vectors.OfKind(suites, vectors.KindFormat) {
		for _, v := range s.Vectors {
			if v.Expect.Error != "" {
				continue
			}
			t.Run(v.Expect.Abbr, func(t *testing.T) {
				var unit calendar.Unit
				require.NoError(t, unit.UnmarshalText([]byte(v.Unit)))

				r, err := period.FromStartEnd(period.FromFields(v.Start...), period.FromFields(v.End...), unit)
				require.NoError(t, err)
				assert.Equal(t, v.Expect.Abbr, r.Text())
				assert.Equal(t, v.Expect.Duration, r.Duration())

				back, err := period.FromText(r.Text())
				require.NoError(t, err)
				assert.True(t, back.Equivalent(r), "%s parsed back as %s", r.Text(), back.Text())

				iso, err := period.FromISO(r.ISO())
				require.NoError(t, err)
				assert.True(t, iso.Equivalent(r), "%s parsed back as %s", r.ISO(), iso.Text())
			})
		}
	}
}

// TestInstantRoundVectors checks Instant.Round against the round vectors.
func TestInstantRoundVectors(t *testing.T) {
	suites, err := vectors.Load()
	require.NoError(t, err)

	for _, s := range vectors.OfKind(suites, vectors.KindRound) {
		for _, v := range s.Vectors {
			if v.Expect.Error != "" {
				continue
			}
			i := period.FromFields(v.Start...)
			t.Run(i.Text()+"_"+v.Unit+"_"+v.Mode, func(t *testing.T) {
				unit, err := calendar.ParseUnit(v.Unit)
				require.NoError(t, err)
				mode, err := calendar.ParseRoundMode(v.Mode)
				require.NoError(t, err)
				assert.Equal(t, period.FromFields(v.Expect.Start...).Text(), i.Round(unit, mode).Text())
			})
		}
	}
}
