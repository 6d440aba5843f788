package period

import (
	"iter"

	"github.com/calperiod/calperiod-go/pkg/calendar"
)

// BetweenValues yields consecutive periods of duration instances of unit,
// the first one starting at start rounded down, for as long as they end no
// later than end.
func BetweenValues(start, end int64, unit calendar.Unit, duration int) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		if duration <= 0 {
			return
		}
		r, err := FromStartValueDuration(start, duration, unit, calendar.RoundFloor)
		if err != nil {
			return
		}
		for ; r.EndsBefore(end); r = r.Next() {
			if !yield(r) {
				return
			}
		}
	}
}

// Between is BetweenValues on instants.
func Between(start, end Instant, unit calendar.Unit, duration int) iter.Seq[Range] {
	return BetweenValues(start.Value(), end.Value(), unit, duration)
}
