package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/informatter/lox/interpreter"
	"github.com/informatter/lox/internal/report"
	"github.com/informatter/lox/lexer"
	"github.com/informatter/lox/parser"
	"github.com/informatter/lox/resolver"
)

// runCmd executes a Lox source file through the tree-walking pipeline.
type runCmd struct {
	dumpASTPath string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Lox source file with the tree-walking interpreter" }
func (*runCmd) Usage() string {
	return `run <script>:
  Execute a Lox script through the tree-walking interpreter.
`
}
func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.dumpASTPath, "dumpAST", "", "write the parsed AST as JSON to this file before executing")
}

func (cmd *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox run <script>")
		return subcommands.ExitUsageError
	}

	source, status := readSource(args[0])
	if status != subcommands.ExitSuccess {
		return status
	}

	rep := report.New()
	if status := runSource(source, rep, cmd.dumpASTPath); status != subcommands.ExitSuccess {
		return status
	}
	return subcommands.ExitSuccess
}

// runSource drives the full tree-walking pipeline against one program,
// stopping at whichever stage first reports an error. If dumpASTPath is
// non-empty, the parsed AST is written there as JSON before resolving or
// interpreting, so a parse failure still leaves no file behind.
func runSource(source string, rep *report.Reporter, dumpASTPath string) subcommands.ExitStatus {
	tokens, scanErrs := lexer.New(source).Scan()
	if len(scanErrs) > 0 {
		for _, err := range scanErrs {
			rep.Error(err)
		}
		return subcommands.ExitStatus(exDataErr)
	}

	statements, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		for _, err := range parseErrs {
			rep.Error(err)
		}
		return subcommands.ExitStatus(exDataErr)
	}

	if dumpASTPath != "" {
		if err := parser.PrintToFile(statements, dumpASTPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to dump AST: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	locals, resolveErrs := resolver.New().Resolve(statements)
	if len(resolveErrs) > 0 {
		for _, err := range resolveErrs {
			rep.Error(err)
		}
		return subcommands.ExitStatus(exDataErr)
	}

	interp := interpreter.New(locals)
	if err := interp.Interpret(statements); err != nil {
		rep.RuntimeError(formatRuntimeError(err))
		return subcommands.ExitStatus(exSoftware)
	}
	return subcommands.ExitSuccess
}

// formatRuntimeError renders an interpreter.RuntimeError in the same
// "MESSAGE\n[line L] in script" shape the VM's own RuntimeError.Error()
// produces, since the tree-walk RuntimeError deliberately keeps its line
// out of Error() and leaves that to whichever layer reports it.
func formatRuntimeError(err error) error {
	if rerr, ok := err.(interpreter.RuntimeError); ok {
		return fmt.Errorf("%s\n[line %d] in script", rerr.Message, rerr.Token.Line)
	}
	return err
}
