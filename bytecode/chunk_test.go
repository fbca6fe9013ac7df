package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteKeepsCodeAndLinesParallel(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpReturn, 1)
	assert.Len(t, c.Lines, len(c.Code))
}

func TestAddConstantReturnsIndex(t *testing.T) {
	c := NewChunk()
	idx, err := c.AddConstant(Number(1.5))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx2, err := c.AddConstant(Number(2.5))
	require.NoError(t, err)
	assert.Equal(t, 1, idx2)
}

func TestAddConstantOverflowsAtMax(t *testing.T) {
	c := NewChunk()
	for i := 0; i < maxConstants; i++ {
		_, err := c.AddConstant(Number(float64(i)))
		require.NoError(t, err, "adding constant %d", i)
	}
	_, err := c.AddConstant(Number(999))
	assert.Error(t, err, "expected an error adding the 257th constant")
}

func TestDisassembleConstantAndReturn(t *testing.T) {
	c := NewChunk()
	idx, err := c.AddConstant(Number(1.2))
	require.NoError(t, err)
	c.WriteOp(OpConstant, 1)
	c.Write(byte(idx), 1)
	c.WriteOp(OpReturn, 1)

	out := c.Disassemble("test")
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "OP_RETURN")
	assert.Contains(t, out, "'1.2'")
}

func TestDisassembleRepeatsLineAsPipe(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpNil, 5)
	c.WriteOp(OpReturn, 5)
	assert.Contains(t, c.Disassemble("test"), "   | ")
}

func TestValueEqualityAndTruthiness(t *testing.T) {
	assert.True(t, Nil().Equal(Nil()))
	assert.False(t, Nil().Equal(Bool(false)))
	assert.False(t, Number(1).Equal(String("1")), "mixed kinds should never be equal")
	assert.False(t, Nil().IsTruthy())
	assert.False(t, Bool(false).IsTruthy())
	assert.True(t, Bool(true).IsTruthy())
	assert.True(t, Number(0).IsTruthy())
}

func TestValueStringFormatsNumbersMinimally(t *testing.T) {
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "3.5", Number(3.5).String())
}
