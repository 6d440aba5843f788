// Package interactive provides the interactive shell of the period command.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/starlarkperiod"
	"github.com/chzyer/readline"
	"go.starlark.net/starlark"
)

// DefaultPrompt is used when Config.Prompt is empty.
const DefaultPrompt = "period> "

// Runner executes one command line, already split into arguments, and
// writes its output to w.
type Runner func(args []string, w io.Writer) error

// Config configures the shell.
type Config struct {
	// Prompt replaces DefaultPrompt.
	Prompt string

	// HistoryFile persists the command history. Empty disables it.
	HistoryFile string
}

// Shell handles interactive mode for the period command.
type Shell struct {
	run         Runner
	rl          *readline.Instance
	out         io.Writer
	thread      *starlark.Thread
	predeclared starlark.StringDict
}

// New creates a shell reading from the terminal.
func New(cfg Config, run Runner) (*Shell, error) {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(rl.Stdout(), run)
	s.rl = rl
	return s, nil
}

func newShell(out io.Writer, run Runner) *Shell {
	predeclared, _ := starlarkperiod.LoadModule()
	s := &Shell{
		run:         run,
		out:         out,
		predeclared: predeclared,
	}
	s.thread = &starlark.Thread{
		Name: "shell",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(s.out, msg)
		},
	}
	return s
}

// Stdout returns a writer that coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run starts the interactive command loop. It returns when ctx is done, on
// EOF or on quit.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	fmt.Fprintln(s.out, "Type 'help' for commands.")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if s.Exec(line) {
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
	}
}

// Exec runs one input line and reports whether the shell should exit.
func (s *Shell) Exec(line string) (quit bool) {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "units":
		for _, u := range calendar.Units() {
			fmt.Fprintf(s.out, "  %-11s %s x%d\n", u, u.Level(), u.Multiplier())
		}

	case "eval", "=":
		s.cmdEval(strings.TrimSpace(strings.TrimPrefix(input, parts[0])))

	case "shell":
		fmt.Fprintln(s.out, "Already in the shell")

	case "quit", "exit", "q":
		return true

	default:
		if err := s.run(parts, s.out); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
	return false
}

func (s *Shell) cmdEval(expr string) {
	if expr == "" {
		fmt.Fprintln(s.out, "Usage: eval <expression>")
		return
	}
	v, err := starlark.Eval(s.thread, "<shell>", expr, s.predeclared)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if v != starlark.None {
		fmt.Fprintln(s.out, v.String())
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Period Shell Commands:
  Periods:
    parse <text>...              - Parse period texts
    format <start> <end>         - Render the period between two instants
    resolve <start> <end>        - Show resolution and duration
    round <instant> --unit <u>   - Round an instant to a unit
    between <start> <end> --unit <u>
                                 - List consecutive periods
    next <text>, prev <text>     - Step to the adjacent period
    encode <text>, decode <hex>  - CBOR wire format

  Scripting:
    eval <expr>                  - Evaluate a Starlark expression (module 'period')
    units                        - List calendar units

  Other:
    help                         - Show this help
    quit                         - Exit the shell`)
}

func completer() *readline.PrefixCompleter {
	unitNames := func(string) []string {
		units := calendar.Units()
		names := make([]string, len(units))
		for i, u := range units {
			names[i] = u.String()
		}
		return names
	}
	withUnit := readline.PcItem("--unit", readline.PcItemDynamic(unitNames))
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("parse"),
		readline.PcItem("format", withUnit),
		readline.PcItem("resolve"),
		readline.PcItem("round", withUnit),
		readline.PcItem("between", withUnit),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("encode"),
		readline.PcItem("decode"),
		readline.PcItem("eval"),
		readline.PcItem("units"),
		readline.PcItem("quit"),
	)
}
