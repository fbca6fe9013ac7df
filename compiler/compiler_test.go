package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatter/lox/bytecode"
	"github.com/informatter/lox/lexer"
)

func compile(t *testing.T, src string) (*bytecode.Chunk, []error) {
	t.Helper()
	toks, scanErrs := lexer.New(src).Scan()
	require.Empty(t, scanErrs)
	return New(toks).Compile()
}

func TestCompileNumberLiteralEmitsConstantAndReturn(t *testing.T) {
	chunk, errs := compile(t, "1.5")
	require.Empty(t, errs)
	assertOps(t, chunk, []bytecode.OpCode{bytecode.OpConstant, bytecode.OpReturn})
	require.Len(t, chunk.Constants, 1)
	assert.Equal(t, 1.5, chunk.Constants[0].Number)
}

func TestCompileArithmeticPrecedence(t *testing.T) {
	// "1 + 2 * 3" must multiply before adding.
	chunk, errs := compile(t, "1 + 2 * 3")
	require.Empty(t, errs)
	assertOps(t, chunk, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpConstant, bytecode.OpConstant,
		bytecode.OpMultiply, bytecode.OpAdd, bytecode.OpReturn,
	})
}

func TestCompileLeftAssociativeSubtraction(t *testing.T) {
	// "1 - 2 - 3" must group as (1-2)-3: two Subtracts in left-to-right order.
	chunk, errs := compile(t, "1 - 2 - 3")
	require.Empty(t, errs)
	assertOps(t, chunk, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpConstant, bytecode.OpSubtract,
		bytecode.OpConstant, bytecode.OpSubtract, bytecode.OpReturn,
	})
}

func TestCompileGroupingOverridesPrecedence(t *testing.T) {
	chunk, errs := compile(t, "(1 + 2) * 3")
	require.Empty(t, errs)
	assertOps(t, chunk, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpConstant, bytecode.OpAdd,
		bytecode.OpConstant, bytecode.OpMultiply, bytecode.OpReturn,
	})
}

func TestCompileUnaryNot(t *testing.T) {
	chunk, errs := compile(t, "!true")
	require.Empty(t, errs)
	assertOps(t, chunk, []bytecode.OpCode{bytecode.OpTrue, bytecode.OpNot, bytecode.OpReturn})
}

func TestCompileComparisonDerivedOperators(t *testing.T) {
	// ">=" and "<=" and "!=" are synthesized from their base opcode plus Not.
	chunk, errs := compile(t, "1 >= 2")
	require.Empty(t, errs)
	assertOps(t, chunk, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpConstant, bytecode.OpLess, bytecode.OpNot, bytecode.OpReturn,
	})
}

func TestCompileMissingClosingParenReportsError(t *testing.T) {
	_, errs := compile(t, "(1 + 2")
	require.Len(t, errs, 1)
}

func TestCompileUnexpectedTokenReportsError(t *testing.T) {
	_, errs := compile(t, "+")
	require.Len(t, errs, 1)
}

func assertOps(t *testing.T, chunk *bytecode.Chunk, want []bytecode.OpCode) {
	t.Helper()
	var got []bytecode.OpCode
	offset := 0
	for offset < len(chunk.Code) {
		op := bytecode.OpCode(chunk.Code[offset])
		got = append(got, op)
		if op == bytecode.OpConstant {
			offset += 2
		} else {
			offset++
		}
	}
	assert.Equal(t, want, got)
}
