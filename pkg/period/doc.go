// Package period provides the two value types applications work with:
// Instant, a point in time at second precision, and Range, a half-open
// period [start, end) resolved to a calendar unit.
//
// Both are immutable. Every derived field (text, ISO rendering, unit,
// duration) is computed when the value is built, so accessors never fail.
//
// Text parsing accepts single tokens ("2018-Q2", "2018-W05", "C21") and
// intervals in abbreviated ("2018-05..12"), ISO ("2018-05/2019-01") or
// ISO-alternative ("2018-05--2019-01") form. Open intervals ("2018.." or
// "/2019") are accepted by FromTextOpen, which substitutes bounds for the
// missing side.
//
// Ranges whose start is not before their end are empty. An empty Range has
// no text and a duration of zero, and never intersects anything.
package period
