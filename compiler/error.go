package compiler

import (
	"fmt"

	"github.com/informatter/lox/token"
)

// Error is a compile-time diagnostic, formatted identically to the
// tree-walk parser's syntax errors so the two pipelines present the
// same error surface to the test harness.
type Error struct {
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string
}

func (e Error) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	}
	if e.Lexeme == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}

func errorAt(tok token.Token, message string) error {
	if tok.Type == token.EOF {
		return Error{Line: tok.Line, AtEnd: true, Message: message}
	}
	return Error{Line: tok.Line, Lexeme: tok.Lexeme, Message: message}
}
