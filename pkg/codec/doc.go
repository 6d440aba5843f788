// Package codec converts between calendar periods and their text forms.
//
// Every calendar unit owns a token pattern: M3 (millennium), C21 (century),
// D201 (decade), 2017 (year), 2017S1 (semester), 2017t2 (trimester),
// 2017-Q1 (quarter), 2017-03 (month), 2017-W05 (week), 2017-03-12 (day),
// 2017-03-12T14, 2017-03-12T14:05 and 2017-03-12T14:05:09. Parse accepts
// the compact forms 2017Q1 and 2017W05 and a space in place of T.
//
// Two tokens make an interval. The abbreviated notation FIRST..LAST names
// the first and the last unit of the period, both inclusive; a period of a
// single unit is written as that unit's token alone. The ISO notation
// FIRST/NEXT (or FIRST--NEXT) names the first unit and the unit right after
// the period.
//
// The second token of an interval drops the prefix it shares with the
// first, cut only where a run of digits ends or starts: 2017-03-12..14,
// 2017-Q1..3, M1..3, 2009-W53..2010-W02. Parse restores the dropped prefix
// before parsing the second token.
package codec
