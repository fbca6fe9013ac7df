package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/informatter/lox/compiler"
	"github.com/informatter/lox/lexer"
)

// disasmCmd compiles a source file and prints the human-readable
// disassembly of the resulting chunk instead of executing it.
type disasmCmd struct {
	dumpPath string
}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Compile a Lox expression and print its disassembled bytecode" }
func (*disasmCmd) Usage() string {
	return `disasm <script>:
  Compile a Lox expression and print its chunk's disassembly.
`
}
func (cmd *disasmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.dumpPath, "dump", "", "also write the chunk's binary encoding to this file")
}

func (cmd *disasmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox disasm <script>")
		return subcommands.ExitUsageError
	}

	source, status := readSource(args[0])
	if status != subcommands.ExitSuccess {
		return status
	}

	tokens, scanErrs := lexer.New(source).Scan()
	if len(scanErrs) > 0 {
		for _, err := range scanErrs {
			fmt.Fprintln(os.Stderr, err)
		}
		return subcommands.ExitStatus(exDataErr)
	}

	chunk, compileErrs := compiler.New(tokens).Compile()
	if len(compileErrs) > 0 {
		for _, err := range compileErrs {
			fmt.Fprintln(os.Stderr, err)
		}
		return subcommands.ExitStatus(exDataErr)
	}

	fmt.Print(chunk.Disassemble(args[0]))

	if cmd.dumpPath != "" {
		out, err := os.Create(cmd.dumpPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create dump file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := chunk.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode bytecode: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
