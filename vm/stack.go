package vm

import "github.com/informatter/lox/bytecode"

// Stack is the VM's operand stack: every instruction other than
// Constant/Nil/True/False pops its operands from the top of this stack,
// and every instruction other than Return pushes its result onto it.
type Stack []bytecode.Value

func (s *Stack) push(v bytecode.Value) {
	*s = append(*s, v)
}

func (s *Stack) pop() bytecode.Value {
	last := len(*s) - 1
	v := (*s)[last]
	*s = (*s)[:last]
	return v
}

func (s *Stack) peek(distanceFromTop int) bytecode.Value {
	return (*s)[len(*s)-1-distanceFromTop]
}

func (s *Stack) len() int { return len(*s) }

func (s *Stack) reset() { *s = (*s)[:0] }
