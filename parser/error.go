package parser

import "fmt"

// SyntaxError is a static diagnostic raised while parsing. AtEnd
// distinguishes the "at end" wording from the "at 'LEX'" wording, since
// the offending token (EOF) has no useful lexeme to quote.
type SyntaxError struct {
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string
}

func (e SyntaxError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	}
	if e.Lexeme == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}
