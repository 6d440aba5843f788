package starlarkperiod

import (
	"fmt"
	"log/slog"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/period"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "period"

// Module period is a Starlark module of calendar period functions.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"parse":      starlark.NewBuiltin("parse", parse),
		"parse_open": starlark.NewBuiltin("parse_open", parseOpen),
		"instant":    starlark.NewBuiltin("instant", newInstant),
		"range":      starlark.NewBuiltin("range", newRange),
		"now":        starlark.NewBuiltin("now", now),
		"between":    starlark.NewBuiltin("between", between),
		"units":      starlark.NewBuiltin("units", units),
	},
}

// LoadModule loads the period module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

// Exec runs a script with the period module predeclared. Output of the
// script's print calls goes to logger at info level.
func Exec(filename string, src any, logger *slog.Logger) (starlark.StringDict, error) {
	if logger == nil {
		logger = slog.Default()
	}
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			logger.Info(msg, "script", filename)
		},
	}
	predeclared, _ := LoadModule()
	return starlark.ExecFile(thread, filename, src, predeclared)
}

func parse(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
		return nil, err
	}
	r, err := period.FromText(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Range{r}, nil
}

func parseOpen(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		text         string
		past, future instantArg
		bounds       = period.DefaultOpenBounds()
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text, "past?", &past, "future?", &future); err != nil {
		return nil, err
	}
	if past.set {
		bounds.Past = past.v
	}
	if future.set {
		bounds.Future = future.v
	}
	r, err := period.FromTextOpen(text, bounds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Range{r}, nil
}

func newInstant(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x instantArg
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	return Instant{x.v}, nil
}

func newRange(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		start, end instantArg
		unit       unitArg
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "start", &start, "end", &end, "unit?", &unit); err != nil {
		return nil, err
	}
	r, err := period.FromStartEnd(start.v, end.v, unit.u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Range{r}, nil
}

func now(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return Instant{period.Now()}, nil
}

func between(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		start, end instantArg
		unit       unitArg
		duration   = 1
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "start", &start, "end", &end, "unit", &unit, "duration?", &duration); err != nil {
		return nil, err
	}
	if !unit.u.Valid() {
		return nil, fmt.Errorf("%s: unit is required", b.Name())
	}
	var out []starlark.Value
	for r := range period.Between(start.v, end.v, unit.u, duration) {
		out = append(out, Range{r})
	}
	return starlark.NewList(out), nil
}

func units(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	all := calendar.Units()
	out := make([]starlark.Value, len(all))
	for i, u := range all {
		out[i] = starlark.String(u.String())
	}
	return starlark.NewList(out), nil
}

// instantArg unpacks an Instant, period text or milliseconds.
type instantArg struct {
	v   period.Instant
	set bool
}

// assert at compile time that instantArg implements Unpacker.
var _ starlark.Unpacker = (*instantArg)(nil)

func (a *instantArg) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case Instant:
		a.v = x.v
	case starlark.String:
		i, err := period.InstantFromText(string(x))
		if err != nil {
			return err
		}
		a.v = i
	case starlark.Int:
		ms, ok := x.Int64()
		if !ok {
			return fmt.Errorf("int value out of range (want signed 64-bit value)")
		}
		a.v = period.FromValue(ms)
	default:
		return fmt.Errorf("cannot convert %s to period.instant", v.Type())
	}
	a.set = true
	return nil
}

// unitArg unpacks a unit name.
type unitArg struct {
	u calendar.Unit
}

func (a *unitArg) Unpack(v starlark.Value) error {
	s, ok := starlark.AsString(v)
	if !ok {
		return fmt.Errorf("got %s, want unit name", v.Type())
	}
	return a.u.UnmarshalText([]byte(s))
}
