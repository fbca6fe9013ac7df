package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/informatter/lox/compiler"
	"github.com/informatter/lox/internal/report"
	"github.com/informatter/lox/lexer"
	vmpkg "github.com/informatter/lox/vm"
)

// vmCmd compiles a single Lox expression from a source file and executes
// it on the bytecode VM.
type vmCmd struct{}

func (*vmCmd) Name() string     { return "vm" }
func (*vmCmd) Synopsis() string { return "Compile and execute a Lox expression with the bytecode VM" }
func (*vmCmd) Usage() string {
	return `vm <script>:
  Compile a Lox expression and execute it on the bytecode VM.
`
}
func (*vmCmd) SetFlags(f *flag.FlagSet) {}

func (*vmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox vm <script>")
		return subcommands.ExitUsageError
	}

	source, status := readSource(args[0])
	if status != subcommands.ExitSuccess {
		return status
	}

	rep := report.New()
	return runCompiled(source, rep)
}

// runCompiled drives the bytecode pipeline against one expression: scan,
// compile, execute.
func runCompiled(source string, rep *report.Reporter) subcommands.ExitStatus {
	tokens, scanErrs := lexer.New(source).Scan()
	if len(scanErrs) > 0 {
		for _, err := range scanErrs {
			rep.Error(err)
		}
		return subcommands.ExitStatus(exDataErr)
	}

	chunk, compileErrs := compiler.New(tokens).Compile()
	if len(compileErrs) > 0 {
		for _, err := range compileErrs {
			rep.Error(err)
		}
		return subcommands.ExitStatus(exDataErr)
	}

	machine := vmpkg.New()
	if err := machine.Interpret(chunk); err != nil {
		rep.RuntimeError(err)
		return subcommands.ExitStatus(exSoftware)
	}
	return subcommands.ExitSuccess
}
