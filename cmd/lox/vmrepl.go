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

// vmReplCmd starts an interactive REPL backed by the bytecode pipeline:
// each line is compiled fresh into its own chunk and executed on a fresh
// VM, since the compiler only ever emits one expression at a time.
type vmReplCmd struct{}

func (*vmReplCmd) Name() string     { return "vmrepl" }
func (*vmReplCmd) Synopsis() string { return "Start an interactive REPL backed by the bytecode VM" }
func (*vmReplCmd) Usage() string {
	return `vmrepl:
  Start an interactive bytecode-VM session, one expression per line.
`
}
func (*vmReplCmd) SetFlags(f *flag.FlagSet) {}

func (*vmReplCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Lox bytecode-VM REPL. Type 'exit' to quit.")

	rl, err := readline.New("vm>>> ")
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
		runCompiled(line, rep)
	}
}
