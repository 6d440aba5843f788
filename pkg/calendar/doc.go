// Package calendar describes the calendar units the period engine works with
// and the proleptic Gregorian arithmetic underneath them.
//
// # Levels and Components
//
// A point in time is decoded into a six-field Components tuple
// (year, month, day, hour, minute, second). Each field belongs to a Level.
// Fields finer than the precision actually known hold their start value
// (month and day 1, hour, minute and second 0), so StartLevel reports the
// finest level at which a tuple carries information.
//
// Components are time-zone naive. Values are milliseconds since the Unix
// epoch with UTC as a fixed reference zone that is never converted.
//
// # Calendar Units
//
// Every Unit subdivides one Level: a quarter is three months, a century a
// hundred years starting at year 1, a week seven days starting on an ISO
// Monday. Units sharing a level are ordered coarsest first, and Compare
// orders any two units by the span of time they cover.
//
// # ISO Weeks
//
// YearWeek maps the day-of-year of a Monday to its ISO-8601 week-numbering
// year and week, correcting by at most one year in either direction. Years
// whose January 1st falls on a Friday, Saturday or Sunday start their first
// week later, and some years have 53 weeks.
package calendar
