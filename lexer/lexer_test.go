package lexer

import (
	"testing"

	"github.com/informatter/lox/token"
)

func types(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	l := New("(){},.-+;*!= = == <= >= < >")
	toks, errs := l.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.COMMA, token.DOT,
		token.MINUS, token.PLUS, token.SEMI, token.STAR, token.NOT_EQUAL,
		token.ASSIGN, token.EQUAL_EQUAL, token.LESS_EQUAL, token.LARGER_EQUAL,
		token.LESS, token.LARGER, token.EOF,
	}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanLineComment(t *testing.T) {
	l := New("var a = 1; // a comment\nvar b = 2;")
	toks, errs := l.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// second "var" should be on line 2
	var sawSecondVar bool
	for _, tok := range toks {
		if tok.Type == token.VAR && tok.Line == 2 {
			sawSecondVar = true
		}
	}
	if !sawSecondVar {
		t.Errorf("expected a VAR token on line 2, got %v", toks)
	}
}

func TestScanStringLiteral(t *testing.T) {
	l := New(`"hello, world"`)
	toks, errs := l.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != token.STRING || toks[0].Literal != "hello, world" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestScanUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	_, errs := l.Scan()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestScanNumberLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"123", 123},
		{"123.456", 123.456},
		{"0.5", 0.5},
	}
	for _, tt := range tests {
		toks, errs := New(tt.src).Scan()
		if len(errs) != 0 {
			t.Fatalf("unexpected errors for %q: %v", tt.src, errs)
		}
		if toks[0].Type != token.NUMBER || toks[0].Literal != tt.want {
			t.Errorf("Scan(%q) = %+v, want NUMBER(%v)", tt.src, toks[0], tt.want)
		}
	}
}

// TestScanTrailingDotAtEOF covers the spec.md §9 open question: "1."
// with nothing following the dot must not consume the dot into the
// number literal.
func TestScanTrailingDotAtEOF(t *testing.T) {
	toks, errs := New("1.").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.TokenType{token.NUMBER, token.DOT, token.EOF}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
	if toks[0].Literal != float64(1) {
		t.Errorf("number literal = %v, want 1", toks[0].Literal)
	}
}

func TestScanTracksColumnPerLine(t *testing.T) {
	toks, errs := New("var a\n  b").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// "var a" -> var@0, a@4, then newline resets the column for "b" on line 2.
	want := map[string]int{"var": 0, "a": 4, "b": 2}
	for _, tok := range toks {
		if wantCol, ok := want[tok.Lexeme]; ok && tok.Column != wantCol {
			t.Errorf("token %q column = %d, want %d", tok.Lexeme, tok.Column, wantCol)
		}
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	l := New("and class else false for fun if nil or print return super this true var while myVar")
	toks, _ := l.Scan()
	wantKeywordCount := 16
	var kwCount int
	for _, tok := range toks[:wantKeywordCount] {
		if tok.Type != token.IDENTIFIER && tok.Type != token.EOF {
			kwCount++
		}
	}
	if kwCount != wantKeywordCount {
		t.Errorf("got %d keyword tokens, want %d", kwCount, wantKeywordCount)
	}
	if toks[wantKeywordCount].Type != token.IDENTIFIER {
		t.Errorf("expected IDENTIFIER for myVar, got %s", toks[wantKeywordCount].Type)
	}
}

func TestScanUnexpectedCharacterContinues(t *testing.T) {
	toks, errs := New("var a = 1; @ var b = 2;").Scan()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	// scanning continued past the bad character
	var sawB bool
	for _, tok := range toks {
		if tok.Type == token.IDENTIFIER && tok.Lexeme == "b" {
			sawB = true
		}
	}
	if !sawB {
		t.Errorf("expected scanning to continue past unexpected character, got %v", toks)
	}
}
