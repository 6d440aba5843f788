package starlarkperiod

import (
	"fmt"
	"sort"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/period"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Instant is a Starlark representation of a period.Instant.
type Instant struct {
	v period.Instant
}

// NewInstant wraps i.
func NewInstant(i period.Instant) Instant { return Instant{i} }

// Value returns the wrapped instant.
func (i Instant) Value() period.Instant { return i.v }

// String implements the Stringer interface.
func (i Instant) String() string { return i.v.Text() }

// Type returns "period.instant".
func (i Instant) Type() string { return "period.instant" }

// Freeze is a no-op; instants are immutable.
func (i Instant) Freeze() {}

// Hash returns a function of x such that Equals(x, y) => Hash(x) == Hash(y).
func (i Instant) Hash() (uint32, error) {
	v := i.v.Value()
	return uint32(v) ^ uint32(v>>32), nil
}

// Truth returns true; every instant is a valid point in time.
func (i Instant) Truth() starlark.Bool { return starlark.True }

// Attr gets a value for a string attribute.
func (i Instant) Attr(name string) (starlark.Value, error) {
	switch name {
	case "year":
		return starlark.MakeInt(i.v.Year()), nil
	case "month":
		return starlark.MakeInt(i.v.Month()), nil
	case "day":
		return starlark.MakeInt(i.v.Day()), nil
	case "hour":
		return starlark.MakeInt(i.v.Hour()), nil
	case "minute":
		return starlark.MakeInt(i.v.Minute()), nil
	case "second":
		return starlark.MakeInt(i.v.Second()), nil
	case "value":
		return starlark.MakeInt64(i.v.Value()), nil
	case "text":
		return starlark.String(i.v.Text()), nil
	}
	return builtinAttr(i, name, instantMethods)
}

// AttrNames lists available dot expression strings for instants.
func (i Instant) AttrNames() []string {
	return append(builtinAttrNames(instantMethods),
		"year",
		"month",
		"day",
		"hour",
		"minute",
		"second",
		"value",
		"text",
	)
}

// CompareSameType implements comparison of two Instant values.
func (i Instant) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, i.v.Compare(yV.(Instant).v)), nil
}

var instantMethods = map[string]builtinMethod{
	"round": instantRound,
	"add":   instantAdd,
}

func instantRound(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		unit unitArg
		mode = "floor"
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "unit", &unit, "mode?", &mode); err != nil {
		return nil, err
	}
	m, err := calendar.ParseRoundMode(mode)
	if err != nil {
		return nil, err
	}
	if !unit.u.Valid() {
		return nil, fmt.Errorf("%s: unit is required", fnname)
	}
	return Instant{recV.(Instant).v.Round(unit.u, m)}, nil
}

func instantAdd(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		unit unitArg
		n    int
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "unit", &unit, "n", &n); err != nil {
		return nil, err
	}
	if !unit.u.Valid() {
		return nil, fmt.Errorf("%s: unit is required", fnname)
	}
	return Instant{recV.(Instant).v.Add(unit.u, n)}, nil
}

// Range is a Starlark representation of a period.Range.
type Range struct {
	r period.Range
}

// NewRange wraps r.
func NewRange(r period.Range) Range { return Range{r} }

// Value returns the wrapped range.
func (r Range) Value() period.Range { return r.r }

// String implements the Stringer interface.
func (r Range) String() string { return r.r.Text() }

// Type returns "period.range".
func (r Range) Type() string { return "period.range" }

// Freeze is a no-op; ranges are immutable.
func (r Range) Freeze() {}

// Hash returns a function of x such that Equals(x, y) => Hash(x) == Hash(y).
func (r Range) Hash() (uint32, error) {
	s, e := r.r.StartValue(), r.r.EndValue()
	return uint32(s) ^ uint32(s>>32) ^ uint32(e)*31 ^ uint32(r.r.Unit()), nil
}

// Truth reports whether the range is non-empty.
func (r Range) Truth() starlark.Bool { return starlark.Bool(!r.r.IsEmpty()) }

// Attr gets a value for a string attribute.
func (r Range) Attr(name string) (starlark.Value, error) {
	switch name {
	case "text":
		return starlark.String(r.r.Text()), nil
	case "iso":
		return starlark.String(r.r.ISO()), nil
	case "unit":
		return starlark.String(r.r.Unit().String()), nil
	case "duration":
		return starlark.MakeInt(r.r.Duration()), nil
	case "start":
		return Instant{r.r.Start()}, nil
	case "end":
		return Instant{r.r.End()}, nil
	case "empty":
		return starlark.Bool(r.r.IsEmpty()), nil
	case "seconds":
		return starlark.Float(r.r.DurationSeconds()), nil
	}
	return builtinAttr(r, name, rangeMethods)
}

// AttrNames lists available dot expression strings for ranges.
func (r Range) AttrNames() []string {
	return append(builtinAttrNames(rangeMethods),
		"text",
		"iso",
		"unit",
		"duration",
		"start",
		"end",
		"empty",
		"seconds",
	)
}

// CompareSameType orders ranges by start, then end. Equality also requires
// the same unit.
func (r Range) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	y := yV.(Range).r
	switch op {
	case syntax.EQL:
		return r.r.Identical(y), nil
	case syntax.NEQ:
		return !r.r.Identical(y), nil
	}
	cmp := compare(r.r.StartValue(), y.StartValue())
	if cmp == 0 {
		cmp = compare(r.r.EndValue(), y.EndValue())
	}
	return threeway(op, cmp), nil
}

var rangeMethods = map[string]builtinMethod{
	"next":         rangeNext,
	"prev":         rangePrev,
	"in_unit":      rangeIn,
	"duration_in":  rangeDurationIn,
	"contains":     rangeContains,
	"intersects":   rangeIntersects,
	"intersection": rangeIntersection,
	"union":        rangeUnion,
	"equivalent":   rangeEquivalent,
}

func rangeNext(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Range{recV.(Range).r.Next()}, nil
}

func rangePrev(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Range{recV.(Range).r.Prev()}, nil
}

func rangeIn(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var unit unitArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &unit); err != nil {
		return nil, err
	}
	r, err := recV.(Range).r.In(unit.u)
	if err != nil {
		return nil, err
	}
	return Range{r}, nil
}

func rangeDurationIn(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var unit unitArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &unit); err != nil {
		return nil, err
	}
	return starlark.Float(recV.(Range).r.DurationIn(unit.u)), nil
}

func rangeContains(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	recv := recV.(Range).r
	switch y := x.(type) {
	case Range:
		return starlark.Bool(recv.Contains(y.r)), nil
	case Instant:
		return starlark.Bool(recv.ContainsInstant(y.v)), nil
	}
	return nil, fmt.Errorf("%s: got %s, want period.range or period.instant", fnname, x.Type())
}

// rangeArg unpacks a Range or period text.
type rangeArg struct {
	r period.Range
}

func (a *rangeArg) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case Range:
		a.r = x.r
		return nil
	case starlark.String:
		r, err := period.FromText(string(x))
		if err != nil {
			return err
		}
		a.r = r
		return nil
	}
	return fmt.Errorf("cannot convert %s to period.range", v.Type())
}

func rangeIntersects(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y rangeArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return starlark.Bool(recV.(Range).r.Intersects(y.r)), nil
}

func rangeIntersection(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y rangeArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return Range{recV.(Range).r.Intersection(y.r)}, nil
}

func rangeUnion(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y rangeArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return Range{recV.(Range).r.Union(y.r)}, nil
}

func rangeEquivalent(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y rangeArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return starlark.Bool(recV.(Range).r.Equivalent(y.r)), nil
}

type builtinMethod func(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}

var (
	_ starlark.HasAttrs   = Instant{}
	_ starlark.Comparable = Instant{}
	_ starlark.HasAttrs   = Range{}
	_ starlark.Comparable = Range{}
)
