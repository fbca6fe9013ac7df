// Package compiler implements the bytecode pipeline's single-pass
// compiler: a Pratt/precedence-climbing parser that emits directly into
// a bytecode.Chunk without ever building an AST.
package compiler

import (
	"github.com/informatter/lox/bytecode"
	"github.com/informatter/lox/token"
)

type prefixRule func(c *Compiler) error
type infixRule func(c *Compiler) error

type rule struct {
	prefix     prefixRule
	infix      infixRule
	precedence Precedence
}

// rules is the single source of truth for both precedence and
// associativity: parsePrecedence never branches on token type directly,
// it only ever consults this table.
var rules map[token.TokenType]rule

func init() {
	rules = map[token.TokenType]rule{
		token.LPA:          {prefix: (*Compiler).grouping, precedence: PrecNone},
		token.MINUS:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
		token.PLUS:         {infix: (*Compiler).binary, precedence: PrecTerm},
		token.SLASH:        {infix: (*Compiler).binary, precedence: PrecFactor},
		token.STAR:         {infix: (*Compiler).binary, precedence: PrecFactor},
		token.BANG:         {prefix: (*Compiler).unary, precedence: PrecNone},
		token.NOT_EQUAL:    {infix: (*Compiler).binary, precedence: PrecEquality},
		token.EQUAL_EQUAL:  {infix: (*Compiler).binary, precedence: PrecEquality},
		token.LARGER:       {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LARGER_EQUAL: {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LESS:         {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LESS_EQUAL:   {infix: (*Compiler).binary, precedence: PrecComparison},
		token.NUMBER:       {prefix: (*Compiler).number, precedence: PrecNone},
		token.STRING:       {prefix: (*Compiler).stringLiteral, precedence: PrecNone},
		token.FALSE:        {prefix: (*Compiler).literal, precedence: PrecNone},
		token.NIL:          {prefix: (*Compiler).literal, precedence: PrecNone},
		token.TRUE:         {prefix: (*Compiler).literal, precedence: PrecNone},
	}
}

// Compiler is the bytecode pipeline's parser. Its position, like the
// tree-walk parser's, always points at the next unconsumed token.
type Compiler struct {
	tokens   []token.Token
	position int
	chunk    *bytecode.Chunk
	errors   []error

	// panicMode suppresses cascaded diagnostics after the first syntax
	// error. Because this compiler has no statement-level
	// synchronization point, once set it stays set for the rest of the
	// compile.
	panicMode bool
}

func New(tokens []token.Token) *Compiler {
	return &Compiler{tokens: tokens, chunk: bytecode.NewChunk()}
}

// Compile parses and emits a single expression, followed by a trailing
// Return, into the compiler's chunk.
func (c *Compiler) Compile() (*bytecode.Chunk, []error) {
	if err := c.expression(); err != nil {
		c.reportError(err)
	}
	if !c.panicMode && !c.check(token.EOF) {
		c.reportError(errorAt(c.peek(), "Expect end of expression."))
	}

	line := 1
	if c.position > 0 {
		line = c.previous().Line
	}
	c.chunk.WriteOp(bytecode.OpReturn, line)
	return c.chunk, c.errors
}

func (c *Compiler) reportError(err error) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.errors = append(c.errors, err)
}

func (c *Compiler) expression() error {
	return c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(precedence Precedence) error {
	c.advance()
	prefix := rules[c.previous().Type].prefix
	if prefix == nil {
		return errorAt(c.previous(), "Expect expression.")
	}
	if err := prefix(c); err != nil {
		return err
	}

	for precedence <= rules[c.peek().Type].precedence {
		c.advance()
		infix := rules[c.previous().Type].infix
		if infix == nil {
			break
		}
		if err := infix(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) number() error {
	tok := c.previous()
	return c.emitConstant(bytecode.Number(tok.Literal.(float64)), tok.Line)
}

func (c *Compiler) stringLiteral() error {
	tok := c.previous()
	return c.emitConstant(bytecode.String(tok.Literal.(string)), tok.Line)
}

func (c *Compiler) literal() error {
	tok := c.previous()
	switch tok.Type {
	case token.FALSE:
		c.chunk.WriteOp(bytecode.OpFalse, tok.Line)
	case token.NIL:
		c.chunk.WriteOp(bytecode.OpNil, tok.Line)
	case token.TRUE:
		c.chunk.WriteOp(bytecode.OpTrue, tok.Line)
	}
	return nil
}

func (c *Compiler) grouping() error {
	if err := c.expression(); err != nil {
		return err
	}
	if !c.match(token.RPA) {
		return errorAt(c.peek(), "Expect ')' after expression.")
	}
	return nil
}

func (c *Compiler) unary() error {
	opType := c.previous().Type
	line := c.previous().Line

	if err := c.parsePrecedence(PrecUnary); err != nil {
		return err
	}

	switch opType {
	case token.MINUS:
		c.chunk.WriteOp(bytecode.OpNegate, line)
	case token.BANG:
		c.chunk.WriteOp(bytecode.OpNot, line)
	}
	return nil
}

// binary parses the right operand at one precedence level tighter than
// its own, which is what makes left-associative chains like "1-2-3"
// group as "(1-2)-3" rather than "1-(2-3)".
func (c *Compiler) binary() error {
	opType := c.previous().Type
	line := c.previous().Line
	opRule := rules[opType]

	if err := c.parsePrecedence(opRule.precedence + 1); err != nil {
		return err
	}

	switch opType {
	case token.PLUS:
		c.chunk.WriteOp(bytecode.OpAdd, line)
	case token.MINUS:
		c.chunk.WriteOp(bytecode.OpSubtract, line)
	case token.STAR:
		c.chunk.WriteOp(bytecode.OpMultiply, line)
	case token.SLASH:
		c.chunk.WriteOp(bytecode.OpDivide, line)
	case token.EQUAL_EQUAL:
		c.chunk.WriteOp(bytecode.OpEqual, line)
	case token.NOT_EQUAL:
		c.chunk.WriteOp(bytecode.OpEqual, line)
		c.chunk.WriteOp(bytecode.OpNot, line)
	case token.LARGER:
		c.chunk.WriteOp(bytecode.OpGreater, line)
	case token.LARGER_EQUAL:
		c.chunk.WriteOp(bytecode.OpLess, line)
		c.chunk.WriteOp(bytecode.OpNot, line)
	case token.LESS:
		c.chunk.WriteOp(bytecode.OpLess, line)
	case token.LESS_EQUAL:
		c.chunk.WriteOp(bytecode.OpGreater, line)
		c.chunk.WriteOp(bytecode.OpNot, line)
	}
	return nil
}

func (c *Compiler) emitConstant(v bytecode.Value, line int) error {
	idx, err := c.chunk.AddConstant(v)
	if err != nil {
		return errorAt(c.previous(), err.Error())
	}
	c.chunk.WriteOp(bytecode.OpConstant, line)
	c.chunk.Write(byte(idx), line)
	return nil
}

// ---- token-stream primitives ----

func (c *Compiler) peek() token.Token {
	return c.tokens[c.position]
}

func (c *Compiler) previous() token.Token {
	return c.tokens[c.position-1]
}

func (c *Compiler) advance() token.Token {
	if c.peek().Type != token.EOF {
		c.position++
	}
	return c.previous()
}

func (c *Compiler) check(t token.TokenType) bool {
	return c.peek().Type == t
}

func (c *Compiler) match(t token.TokenType) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}
