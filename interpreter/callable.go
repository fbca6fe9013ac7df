package interpreter

import (
	"time"

	"github.com/informatter/lox/ast"
)

// Callable is anything that can appear on the left of a call
// expression: user-defined functions and methods, native functions, and
// class objects (calling a class constructs an instance).
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []any) (any, error)
	String() string
}

// Function is a user-defined function or method: a body of statements
// paired with the environment captured at its definition site.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

func (f *Function) String() string { return "<fn " + f.declaration.Name.Lexeme + ">" }

// bind returns a new Function whose closure is a fresh environment
// enclosing f's closure with "this" bound to instance. This is how a
// method value produced by property access remembers its receiver.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

// Call executes the function body in a fresh environment enclosing its
// closure, with parameters bound positionally to args. A "return"
// inside the body unwinds via returnSignal rather than an ordinary Go
// return, since arbitrarily deep nested statements may need to abort
// the whole body at once.
func (f *Function) Call(interp *Interpreter, args []any) (result any, err error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			ret, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.isInitializer {
				result = f.closure.GetAt(0, "this")
			} else {
				result = ret.Value
			}
			return
		}
		if f.isInitializer {
			result = f.closure.GetAt(0, "this")
		}
	}()

	err = interp.executeBlock(f.declaration.Body, env)
	return result, err
}

// NativeFunction wraps a host-provided function, e.g. clock().
type NativeFunction struct {
	name string
	fn   func(args []any) any
	arity int
}

func NewNativeFunction(name string, arity int, fn func(args []any) any) *NativeFunction {
	return &NativeFunction{name: name, fn: fn, arity: arity}
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(interp *Interpreter, args []any) (any, error) {
	return n.fn(args), nil
}

func (n *NativeFunction) String() string { return "<native fn>" }

// clockNative returns seconds since the Unix epoch as a float64, Lox's
// only number representation.
func clockNative(args []any) any {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
