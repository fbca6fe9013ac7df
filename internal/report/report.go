// Package report centralizes how every pipeline stage (lexer, parser,
// resolver, interpreter, compiler, vm) surfaces a diagnostic to the user,
// and tracks whether a static or a runtime error has occurred so callers
// can choose the right process exit code.
package report

import (
	"fmt"
	"io"
	"os"
)

// Reporter prints diagnostics to an underlying writer and remembers
// whether it has seen a static error, a runtime error, or both, across
// the lifetime of one run/REPL line.
type Reporter struct {
	out             io.Writer
	hadError        bool
	hadRuntimeError bool
}

// New returns a Reporter writing to os.Stderr.
func New() *Reporter {
	return &Reporter{out: os.Stderr}
}

// NewWithWriter returns a Reporter writing to w, useful for tests that
// want to inspect what was reported without touching the real stderr.
func NewWithWriter(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// Error reports a static diagnostic: a lexing, parsing, resolving, or
// compiling error. Its Error() string is already formatted per the
// "[line L] Error ..." convention, so Reporter only needs to print it.
func (r *Reporter) Error(err error) {
	fmt.Fprintln(r.out, err)
	r.hadError = true
}

// RuntimeError reports an error raised while a program was executing,
// whose Error() string already ends in "\n[line L] in script".
func (r *Reporter) RuntimeError(err error) {
	fmt.Fprintln(r.out, err)
	r.hadRuntimeError = true
}

func (r *Reporter) HadError() bool        { return r.hadError }
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears both error flags, used by REPLs between lines so one bad
// line doesn't poison the exit code of the whole session.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}
