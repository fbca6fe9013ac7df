package vm

import "fmt"

// RuntimeError is raised by the VM when an instruction's operands don't
// satisfy its type requirements (e.g. arithmetic on a non-Number). Unlike
// compiler.Error/parser.SyntaxError, it carries no lexeme: by the time the
// VM is running, only the originating source line survives in the chunk.
type RuntimeError struct {
	Line    int
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}

func newRuntimeError(line int, format string, args ...any) RuntimeError {
	return RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}
