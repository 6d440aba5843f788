package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/calperiod/calperiod-go/cmd/period/interactive"
	"github.com/calperiod/calperiod-go/internal/vectors"
	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/period"
	"github.com/calperiod/calperiod-go/pkg/resolver"
	"github.com/calperiod/calperiod-go/pkg/starlarkperiod"
	"github.com/calperiod/calperiod-go/pkg/wire"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// printer returns a printer for cmd's output in the configured format. An
// explicit --output flag wins, which matters inside the shell where the
// config is loaded once.
func (a *app) printer(cmd *cobra.Command) *printer {
	format := a.cfg.Output
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		format = a.output
	}
	return newPrinter(cmd.OutOrStdout(), format)
}

func instantArgs(args []string) ([]period.Instant, error) {
	out := make([]period.Instant, len(args))
	for i, arg := range args {
		v, err := period.InstantFromText(arg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (a *app) parseCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Parse period texts",
		Long:  "Parse period texts and print text, ISO text, unit, duration, start and end",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds, err := a.cfg.Bounds()
			if err != nil {
				return err
			}
			p := a.printer(cmd)
			for _, text := range args {
				var r period.Range
				if open {
					r, err = period.FromTextOpen(text, bounds)
				} else {
					r, err = period.FromText(text)
				}
				if err != nil {
					return err
				}
				a.logger.Debug("Parsed period",
					zap.String("input", text),
					zap.String("text", r.Text()),
					zap.Stringer("unit", r.Unit()))
				if err := p.describeRange(r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Accept open texts such as 2000.. and ..2000")

	return cmd
}

func (a *app) formatCmd() *cobra.Command {
	var (
		unit   calendar.Unit
		single bool
	)

	cmd := &cobra.Command{
		Use:   "format START END",
		Short: "Render the period between two instants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd, args, resolver.Options{Resolution: unit, RequireSingleUnit: single}, false)
		},
	}

	cmd.Flags().Var(unitFlag{&unit}, "unit", "Force the resolution")
	cmd.Flags().BoolVar(&single, "single", false, "Reject periods longer than one unit")

	return cmd
}

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve START END",
		Short: "Print the resolution and duration of the period between two instants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd, args, resolver.Options{}, true)
		},
	}
}

func (a *app) resolve(cmd *cobra.Command, args []string, opts resolver.Options, summary bool) error {
	bounds, err := instantArgs(args)
	if err != nil {
		return err
	}
	start, end := bounds[0].Value(), bounds[1].Value()
	res, err := resolver.Resolve(start, end, opts)
	if err != nil {
		return err
	}
	r, err := period.FromStartEndValues(start, end, res.Unit)
	if err != nil {
		return err
	}
	return a.printer(cmd).printResult(res, r, summary)
}

func (a *app) roundCmd() *cobra.Command {
	var (
		unit calendar.Unit
		mode string
	)

	cmd := &cobra.Command{
		Use:   "round INSTANT...",
		Short: "Round instants to a unit boundary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := calendar.ParseRoundMode(mode)
			if err != nil {
				return err
			}
			instants, err := instantArgs(args)
			if err != nil {
				return err
			}
			p := a.printer(cmd)
			for _, i := range instants {
				if err := p.printInstant(i.Round(unit, m)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Var(unitFlag{&unit}, "unit", "Unit to round to")
	cmd.Flags().StringVar(&mode, "mode", calendar.RoundFloor.String(), "Round mode: floor or ceil")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func (a *app) betweenCmd() *cobra.Command {
	var (
		unit     calendar.Unit
		duration int
	)

	cmd := &cobra.Command{
		Use:   "between START END",
		Short: "List consecutive periods from START that end by END",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds, err := instantArgs(args)
			if err != nil {
				return err
			}
			if duration <= 0 {
				return fmt.Errorf("duration must be positive, got %d", duration)
			}
			p := a.printer(cmd)
			for r := range period.Between(bounds[0], bounds[1], unit, duration) {
				if err := p.printRange(r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Var(unitFlag{&unit}, "unit", "Unit of each period")
	cmd.Flags().IntVar(&duration, "duration", 1, "Units per period")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func (a *app) stepCmd(name, short string, forward bool) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   name + " TEXT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := period.FromText(args[0])
			if err != nil {
				return err
			}
			p := a.printer(cmd)
			for range count {
				if forward {
					r = r.Next()
				} else {
					r = r.Prev()
				}
				if err := p.printRange(r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of periods to print")

	return cmd
}

func (a *app) encodeCmd() *cobra.Command {
	var (
		instant bool
		file    string
	)

	cmd := &cobra.Command{
		Use:   "encode TEXT...",
		Short: "Print the CBOR envelopes of periods as hex",
		Long:  "Print the CBOR envelope of each period as hex, or append the envelopes to a period file with --file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]any, len(args))
			for n, text := range args {
				if instant {
					i, err := period.InstantFromText(text)
					if err != nil {
						return err
					}
					values[n] = i
					continue
				}
				r, err := period.FromText(text)
				if err != nil {
					return err
				}
				values[n] = r
			}

			if file != "" {
				return a.appendFile(file, values)
			}
			p := newPrinter(cmd.OutOrStdout(), OutputCBOR)
			for _, v := range values {
				if err := p.cbor(v); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&instant, "instant", false, "Encode the start instants instead of the periods")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Append to a period file instead of printing")

	return cmd
}

func (a *app) appendFile(path string, values []any) error {
	f, err := wire.AppendFile(path)
	if err != nil {
		return fmt.Errorf("failed to open period file: %w", err)
	}
	for _, v := range values {
		if err := f.Write(v); err != nil {
			f.Close()
			return err
		}
	}
	a.logger.Debug("Appended to period file",
		zap.String("path", path),
		zap.Int("values", len(values)))
	return f.Close()
}

func (a *app) dumpCmd() *cobra.Command {
	var (
		kind   string
		unit   calendar.Unit
		within string
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the values of a period file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := wire.Filter{Unit: unit}
			switch kind {
			case "":
			case wire.KindInstant.String():
				filter.Kind = wire.KindInstant
			case wire.KindRange.String():
				filter.Kind = wire.KindRange
			default:
				return fmt.Errorf("%w: %q", wire.ErrUnknownKind, kind)
			}
			if within != "" {
				r, err := period.FromText(within)
				if err != nil {
					return err
				}
				filter.Within = r
			}

			r, err := wire.OpenFile(args[0], filter)
			if err != nil {
				return fmt.Errorf("failed to open period file: %w", err)
			}
			defer r.Close()

			p := a.printer(cmd)
			for {
				v, err := r.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				if err := p.printValue(v); err != nil {
					return err
				}
			}
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only values of this kind: instant or range")
	cmd.Flags().Var(unitFlag{&unit}, "unit", "Only ranges of this unit")
	cmd.Flags().StringVar(&within, "within", "", "Only values intersecting this period")

	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode HEX",
		Short: "Decode a hex CBOR envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}
			v, err := wire.Decode(data)
			if err != nil {
				return err
			}
			return a.printer(cmd).printValue(v)
		},
	}
}

func (a *app) unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List calendar units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, u := range calendar.Units() {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", u, u.Level(), u.Multiplier()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) vectorsCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Run the conformance vectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				suites []*vectors.Suite
				err    error
			)
			if dir != "" {
				suites, err = vectors.LoadDir(dir)
			} else {
				suites, err = vectors.Load()
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failures := vectors.Run(suites)
			for _, f := range failures {
				fmt.Fprintln(w, f)
			}
			total := vectors.Count(suites)
			fmt.Fprintf(w, "%d suites, %d vectors, %d failures\n", len(suites), total, len(failures))
			a.logger.Info("Ran conformance vectors",
				zap.Int("suites", len(suites)),
				zap.Int("vectors", total),
				zap.Int("failures", len(failures)))

			if len(failures) > 0 {
				return fmt.Errorf("%d of %d vectors failed", len(failures), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of vector files (default: built-in vectors)")

	return cmd
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Run a Starlark script with the period module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.OutOrStdout(), &slog.HandlerOptions{
				ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
					if len(groups) == 0 && (attr.Key == slog.TimeKey || attr.Key == slog.LevelKey) {
						return slog.Attr{}
					}
					return attr
				},
			}))
			_, err := starlarkperiod.Exec(args[0], nil, logger)
			return err
		},
	}
}

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := interactive.New(interactive.Config{
				Prompt:      a.cfg.Shell.Prompt,
				HistoryFile: a.cfg.Shell.HistoryFile,
			}, a.runLine)
			if err != nil {
				return err
			}
			a.logger.Debug("Starting shell")
			sh.Run(context.Background())
			return nil
		},
	}
}

// runLine executes one shell line as a subcommand.
func (a *app) runLine(args []string, w io.Writer) error {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(w)
	cmd.SetErr(w)
	return cmd.Execute()
}

// unitFlag adapts a calendar.Unit to pflag.Value.
type unitFlag struct {
	u *calendar.Unit
}

func (f unitFlag) String() string {
	if f.u == nil {
		return ""
	}
	return f.u.String()
}

func (f unitFlag) Set(s string) error {
	return f.u.UnmarshalText([]byte(s))
}

func (f unitFlag) Type() string {
	return "unit"
}
