// Package vm implements the bytecode pipeline's stack machine: it fetches,
// decodes and dispatches each instruction in a bytecode.Chunk produced by
// the compiler package.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/informatter/lox/bytecode"
)

// Vm executes a single bytecode.Chunk. Its ip always points at the next
// instruction to fetch, mirroring the compiler's tokens/position split
// between "what's been consumed" and "what's next".
type Vm struct {
	chunk  *bytecode.Chunk
	ip     int
	stack  Stack
	stdout io.Writer
}

func New() *Vm {
	return &Vm{stdout: os.Stdout}
}

func (vm *Vm) SetOutput(w io.Writer) {
	vm.stdout = w
}

// Interpret resets the VM against a freshly compiled chunk and runs it to
// completion, returning a RuntimeError if execution failed.
func (vm *Vm) Interpret(chunk *bytecode.Chunk) error {
	vm.chunk = chunk
	vm.ip = 0
	vm.stack.reset()
	return vm.run()
}

func (vm *Vm) run() error {
	for {
		instruction := vm.readByte()
		op := bytecode.OpCode(instruction)

		switch op {
		case bytecode.OpConstant:
			vm.stack.push(vm.readConstant())

		case bytecode.OpNil:
			vm.stack.push(bytecode.Nil())

		case bytecode.OpTrue:
			vm.stack.push(bytecode.Bool(true))

		case bytecode.OpFalse:
			vm.stack.push(bytecode.Bool(false))

		case bytecode.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(bytecode.Bool(a.Equal(b)))

		case bytecode.OpGreater:
			a, b, err := vm.numberOperands()
			if err != nil {
				return err
			}
			vm.stack.push(bytecode.Bool(a > b))

		case bytecode.OpLess:
			a, b, err := vm.numberOperands()
			if err != nil {
				return err
			}
			vm.stack.push(bytecode.Bool(a < b))

		case bytecode.OpAdd:
			if vm.stack.peek(0).Kind == bytecode.KindString && vm.stack.peek(1).Kind == bytecode.KindString {
				b := vm.stack.pop()
				a := vm.stack.pop()
				vm.stack.push(bytecode.String(a.Str + b.Str))
				break
			}
			a, b, err := vm.numberOperands()
			if err != nil {
				return err
			}
			vm.stack.push(bytecode.Number(a + b))

		case bytecode.OpSubtract:
			a, b, err := vm.numberOperands()
			if err != nil {
				return err
			}
			vm.stack.push(bytecode.Number(a - b))

		case bytecode.OpMultiply:
			a, b, err := vm.numberOperands()
			if err != nil {
				return err
			}
			vm.stack.push(bytecode.Number(a * b))

		case bytecode.OpDivide:
			a, b, err := vm.numberOperands()
			if err != nil {
				return err
			}
			vm.stack.push(bytecode.Number(a / b))

		case bytecode.OpNot:
			v := vm.stack.pop()
			vm.stack.push(bytecode.Bool(!v.IsTruthy()))

		case bytecode.OpNegate:
			if !vm.stack.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			v := vm.stack.pop()
			vm.stack.push(bytecode.Number(-v.Number))

		case bytecode.OpReturn:
			if vm.stack.len() > 0 {
				fmt.Fprintln(vm.stdout, vm.stack.pop().String())
			}
			return nil

		default:
			return vm.runtimeError("Unknown opcode %d.", instruction)
		}
	}
}

// numberOperands pops the top two stack values for a binary arithmetic or
// comparison opcode, returning them in (left, right) source order. It
// peeks before popping so that a type-mismatch error leaves the stack
// available for reset() rather than partially drained.
func (vm *Vm) numberOperands() (float64, float64, error) {
	if !vm.stack.peek(0).IsNumber() || !vm.stack.peek(1).IsNumber() {
		return 0, 0, vm.runtimeError("Operands must be numbers.")
	}
	b := vm.stack.pop()
	a := vm.stack.pop()
	return a.Number, b.Number, nil
}

func (vm *Vm) runtimeError(format string, args ...any) error {
	line := 0
	if vm.ip-1 >= 0 && vm.ip-1 < len(vm.chunk.Lines) {
		line = vm.chunk.Lines[vm.ip-1]
	}
	vm.stack.reset()
	return newRuntimeError(line, format, args...)
}

func (vm *Vm) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *Vm) readConstant() bytecode.Value {
	idx := vm.readByte()
	return vm.chunk.Constants[idx]
}
