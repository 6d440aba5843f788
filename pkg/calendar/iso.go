package calendar

import "time"

// ISOWeekday returns the ISO-8601 day of the week of y-m-d, Monday=1 to
// Sunday=7.
func ISOWeekday(y, m, d int) int {
	wd := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Weekday()
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// DaysInYear returns 365 or 366.
func DaysInYear(y int) int {
	return time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// YearDay returns the 1-based day of the year of c.
func YearDay(c Components) int {
	return c.Time().YearDay()
}

// firstWeekStart returns the day of year of the Monday starting ISO week 1
// of y. It is 0 or negative when that Monday falls in December of y-1.
func firstWeekStart(y int) int {
	dow := ISOWeekday(y, 1, 1)
	if dow > 4 {
		return 9 - dow
	}
	return 2 - dow
}

// StartOfISOWeek returns the Monday starting week w of ISO year y.
func StartOfISOWeek(y, w int) Components {
	return FromFields(y, 1, firstWeekStart(y)+(w-1)*7)
}

// YearWeek returns the ISO year and week starting on day yd of year y.
// ok is false when that day is not a Monday. A week starting before week 1
// of y belongs to y-1; a week whose Thursday falls in y+1 belongs to y+1.
func YearWeek(y, yd int) (isoYear, week int, ok bool) {
	for step := 0; step < 2; step++ {
		start := firstWeekStart(y)
		if (yd-start)%7 != 0 {
			return 0, 0, false
		}
		switch {
		case yd < start:
			y--
			yd += DaysInYear(y)
		case yd+3 > DaysInYear(y):
			yd -= DaysInYear(y)
			y++
		default:
			return y, 1 + (yd-start)/7, true
		}
	}
	return 0, 0, false
}

// ISOWeek returns the ISO year and week of the week containing c.
func ISOWeek(c Components) (isoYear, week int) {
	monday := c.Truncate(LevelDay).Add(LevelDay, 1-ISOWeekday(c.Year(), c.Month(), c.Day()))
	isoYear, week, _ = YearWeek(monday.Year(), YearDay(monday))
	return isoYear, week
}

// WeeksInYear returns 52 or 53, the number of ISO weeks of ISO year y.
func WeeksInYear(y int) int {
	_, w := ISOWeek(Components{y, 12, 28, 0, 0, 0})
	return w
}
