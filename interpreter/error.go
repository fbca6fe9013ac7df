package interpreter

import (
	"fmt"

	"github.com/informatter/lox/token"
)

// RuntimeError is a dynamic failure: a type mismatch, an undefined
// name, a bad call. It carries the token whose line should be reported
// alongside the message.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e RuntimeError) Error() string {
	return e.Message
}

func newRuntimeError(tok token.Token, format string, args ...any) RuntimeError {
	return RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// returnSignal is the distinguished non-local control-flow carrier used
// to unwind a function body on "return". It is deliberately not an
// error: a generic error-handling path further up the call stack must
// never be able to swallow a return by mistake.
type returnSignal struct {
	Value any
}
