/*
Package starlarkperiod exposes the period engine to Starlark scripts.

	outline: period
	  period parses, resolves and iterates calendar periods
	  path: period
	  functions:
	    parse(text) range
	      parse a token or interval such as "2018-Q2" or "2018-05..12"
	    parse_open(text, past=, future=) range
	      parse an interval that may leave a side open, such as "2018.."
	    instant(x) instant
	      an instant from period text or milliseconds since the Unix epoch
	    range(start, end, unit=) range
	      the period [start, end), optionally forced to a unit
	    now() instant
	      the current UTC instant
	    between(start, end, unit, duration=1) list
	      consecutive ranges of duration units ending no later than end
	    units() list
	      the unit names, coarsest first

	  types:
	    instant
	      fields:
	        year, month, day, hour, minute, second int
	        value int
	        text string
	      methods:
	        round(unit, mode="floor") instant
	        add(unit, n) instant
	      operators:
	        instant == instant, instant < instant
	    range
	      fields:
	        text, iso, unit string
	        duration int
	        start, end instant
	        empty bool
	        seconds float
	      methods:
	        next() range
	        prev() range
	        in_unit(unit) range
	        duration_in(unit) float
	        contains(range_or_instant) bool
	        intersects(range) bool
	        intersection(range) range
	        union(range) range
	        equivalent(range) bool
	      operators:
	        range == range compares bounds and unit
	        range < range orders by start then end
*/
package starlarkperiod
