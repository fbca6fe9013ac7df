package bytecode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrips(t *testing.T) {
	c := NewChunk()
	idx, err := c.AddConstant(Number(1.25))
	require.NoError(t, err)
	c.WriteOp(OpConstant, 1)
	c.Write(byte(idx), 1)

	idx2, err := c.AddConstant(String("hi"))
	require.NoError(t, err)
	c.WriteOp(OpConstant, 2)
	c.Write(byte(idx2), 2)

	_, err = c.AddConstant(Bool(true))
	require.NoError(t, err)
	c.WriteOp(OpNil, 3)
	c.WriteOp(OpReturn, 3)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, c.Code, decoded.Code)
	assert.Equal(t, c.Lines, decoded.Lines)
	require.Len(t, decoded.Constants, len(c.Constants))
	for i := range c.Constants {
		assert.True(t, c.Constants[i].Equal(decoded.Constants[i]), "constant %d mismatch", i)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0, 0, 0, 0}))
	assert.Error(t, err)
}
