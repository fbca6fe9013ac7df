package bytecode

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// magic tags the start of an encoded chunk so Decode can fail fast on
// garbage input instead of reading nonsense lengths.
const magic uint32 = 0x4c4f5843 // "LOXC"

// Encode writes a binary representation of the chunk to w: the
// length-prefixed code, the parallel line table (one entry per code
// byte, so it needs no prefix of its own), and the count-prefixed
// constant pool.
// This is what backs "lox disasm"'s bytecode dump, the equivalent of the
// teacher's DumpBytecode.
func (c *Chunk) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.BigEndian, magic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(len(c.Code))); err != nil {
		return err
	}
	if _, err := bw.Write(c.Code); err != nil {
		return err
	}
	for _, line := range c.Lines {
		if err := binary.Write(bw, binary.BigEndian, uint32(line)); err != nil {
			return err
		}
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(len(c.Constants))); err != nil {
		return err
	}
	for _, v := range c.Constants {
		if err := encodeValue(bw, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encodeValue(w *bufio.Writer, v Value) error {
	if err := binary.Write(w, binary.BigEndian, uint8(v.Kind)); err != nil {
		return err
	}
	switch v.Kind {
	case KindNumber:
		return binary.Write(w, binary.BigEndian, v.Number)
	case KindBool:
		b := uint8(0)
		if v.Bool {
			b = 1
		}
		return binary.Write(w, binary.BigEndian, b)
	case KindString:
		if err := binary.Write(w, binary.BigEndian, uint32(len(v.Str))); err != nil {
			return err
		}
		_, err := w.WriteString(v.Str)
		return err
	case KindNil:
		return nil
	}
	return fmt.Errorf("bytecode: unknown value kind %d", v.Kind)
}

// Decode reads a chunk previously written by Encode.
func Decode(r io.Reader) (*Chunk, error) {
	br := bufio.NewReader(r)

	var got uint32
	if err := binary.Read(br, binary.BigEndian, &got); err != nil {
		return nil, fmt.Errorf("bytecode: reading magic: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("bytecode: not a chunk (bad magic %#x)", got)
	}

	var codeLen uint32
	if err := binary.Read(br, binary.BigEndian, &codeLen); err != nil {
		return nil, err
	}
	code := make([]byte, codeLen)
	if _, err := io.ReadFull(br, code); err != nil {
		return nil, err
	}

	lines := make([]int, codeLen)
	for i := range lines {
		var l uint32
		if err := binary.Read(br, binary.BigEndian, &l); err != nil {
			return nil, err
		}
		lines[i] = int(l)
	}

	var constCount uint32
	if err := binary.Read(br, binary.BigEndian, &constCount); err != nil {
		return nil, err
	}
	constants := make([]Value, constCount)
	for i := range constants {
		v, err := decodeValue(br)
		if err != nil {
			return nil, err
		}
		constants[i] = v
	}

	return &Chunk{Code: code, Lines: lines, Constants: constants}, nil
}

func decodeValue(r io.Reader) (Value, error) {
	var kind uint8
	if err := binary.Read(r, binary.BigEndian, &kind); err != nil {
		return Value{}, err
	}
	switch ValueKind(kind) {
	case KindNumber:
		var n float64
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return Value{}, err
		}
		return Number(n), nil
	case KindBool:
		var b uint8
		if err := binary.Read(r, binary.BigEndian, &b); err != nil {
			return Value{}, err
		}
		return Bool(b != 0), nil
	case KindString:
		var strLen uint32
		if err := binary.Read(r, binary.BigEndian, &strLen); err != nil {
			return Value{}, err
		}
		buf := make([]byte, strLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Value{}, err
		}
		return String(string(buf)), nil
	case KindNil:
		return Nil(), nil
	}
	return Value{}, fmt.Errorf("bytecode: unknown value kind %d", kind)
}
