package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/informatter/lox/internal/report"
)

// replCmd starts an interactive tree-walking REPL. Each line is scanned,
// parsed, resolved, and interpreted independently by a fresh interpreter,
// so variables, functions and classes defined on one line are not visible
// on later lines; a bad line reports its error and moves on rather than
// aborting the session.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive tree-walking REPL" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive Lox session.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Lox tree-walking REPL. Type 'exit' to quit.")

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	rep := report.New()
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return subcommands.ExitFailure
		}
		if line == "exit" {
			return subcommands.ExitSuccess
		}
		if line == "" {
			continue
		}

		rep.Reset()
		runSource(line, rep, "")
	}
}
