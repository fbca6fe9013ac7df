// Command lox is the driver binary for both pipelines: a tree-walking
// interpreter ("run"/"repl") and a bytecode compiler+VM ("vm"/"vmrepl"),
// plus a "disasm" utility for inspecting compiled chunks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&vmCmd{}, "")
	subcommands.Register(&vmReplCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	status := subcommands.Execute(ctx)
	if status == subcommands.ExitUsageError {
		status = subcommands.ExitFailure
	}
	os.Exit(int(status))
}

// sysexits-style exit codes: 0 success, 1 usage error (main maps the
// subcommands package's ExitUsageError to 1), 65 static/compile error,
// 70 runtime error.
const (
	exDataErr  = 65
	exSoftware = 70
)

func readSource(path string) (string, subcommands.ExitStatus) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		return "", subcommands.ExitFailure
	}
	return string(data), subcommands.ExitSuccess
}
