// Package interpreter implements the tree-walking evaluator: it
// executes a resolved AST directly, against a chain of environments.
package interpreter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/informatter/lox/ast"
	"github.com/informatter/lox/token"
)

// Interpreter walks a parsed, resolved program and executes it.
// Globals persist across calls to Interpret, so a REPL can build up
// state one line at a time.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[int]int
	stdout      io.Writer
}

// New creates an Interpreter. locals is the resolver's hop-count
// side-table; a nil map is treated as empty (every reference resolves
// against globals).
func New(locals map[int]int) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", NewNativeFunction("clock", 0, clockNative))
	if locals == nil {
		locals = map[int]int{}
	}
	return &Interpreter{globals: globals, environment: globals, locals: locals, stdout: os.Stdout}
}

// SetOutput redirects where "print" statements write, for tests.
func (i *Interpreter) SetOutput(w io.Writer) { i.stdout = w }

// Interpret executes statements in order, stopping at the first runtime
// error. Earlier statements' side effects (prints, global assignments)
// remain visible, matching the REPL's line-at-a-time behavior.
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	return stmt.Accept(i)
}

func (i *Interpreter) evaluate(expr ast.Expression) (any, error) {
	return expr.Accept(i)
}

// executeBlock runs statements against env, restoring the interpreter's
// previous environment afterward regardless of how execution ends
// (normal completion, error, or a return unwinding through a panic).
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) lookupVariable(name token.Token, id int) (any, error) {
	if distance, ok := i.locals[id]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

// ---- display ----

func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Lox value the way "print" displays it.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case Callable:
		return v.String()
	case *Instance:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ---- ast.ExpressionVisitor ----

func (i *Interpreter) VisitLiteral(e *ast.Literal) (any, error) {
	return e.Value, nil
}

func (i *Interpreter) VisitGrouping(e *ast.Grouping) (any, error) {
	return i.evaluate(e.Expression)
}

func (i *Interpreter) VisitUnary(e *ast.Unary) (any, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -num, nil
	case token.BANG:
		return !isTruthy(right), nil
	}
	return nil, nil
}

func (i *Interpreter) VisitBinary(e *ast.Binary) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.PLUS:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	case token.MINUS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case token.STAR:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case token.SLASH:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil
	case token.LARGER:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln > rn, nil
	case token.LARGER_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln >= rn, nil
	case token.LESS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln < rn, nil
	case token.LESS_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln <= rn, nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	case token.NOT_EQUAL:
		return !isEqual(left, right), nil
	}
	return nil, nil
}

func numberOperands(operator token.Token, left, right any) (float64, float64, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, newRuntimeError(operator, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (i *Interpreter) VisitVariable(e *ast.Variable) (any, error) {
	return i.lookupVariable(e.Name, e.ID())
}

func (i *Interpreter) VisitAssign(e *ast.Assign) (any, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[e.ID()]; ok {
		i.environment.AssignAt(distance, e.Name, value)
	} else if err := i.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) VisitLogical(e *ast.Logical) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) VisitCall(e *ast.Call) (any, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := i.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) VisitGet(e *ast.Get) (any, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	return instance.Get(e.Name)
}

func (i *Interpreter) VisitSet(e *ast.Set) (any, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name, value)
	return value, nil
}

func (i *Interpreter) VisitThis(e *ast.This) (any, error) {
	return i.lookupVariable(e.Keyword, e.ID())
}

func (i *Interpreter) VisitSuper(e *ast.Super) (any, error) {
	distance := i.locals[e.ID()]
	superclass, _ := i.environment.GetAt(distance, "super").(*Class)
	instance, _ := i.environment.GetAt(distance-1, "this").(*Instance)

	method := superclass.findMethod(e.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance), nil
}

// ---- ast.StmtVisitor ----

func (i *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) error {
	_, err := i.evaluate(s.Expression)
	return err
}

func (i *Interpreter) VisitPrintStmt(s *ast.PrintStmt) error {
	value, err := i.evaluate(s.Expression)
	if err != nil {
		return err
	}
	fmt.Fprintln(i.stdout, stringify(value))
	return nil
}

func (i *Interpreter) VisitVarStmt(s *ast.VarStmt) error {
	var value any
	if s.Initializer != nil {
		v, err := i.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	i.environment.Define(s.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) VisitBlockStmt(s *ast.BlockStmt) error {
	return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.environment))
}

func (i *Interpreter) VisitIfStmt(s *ast.IfStmt) error {
	condition, err := i.evaluate(s.Condition)
	if err != nil {
		return err
	}
	if isTruthy(condition) {
		return i.execute(s.Then)
	}
	if s.Else != nil {
		return i.execute(s.Else)
	}
	return nil
}

func (i *Interpreter) VisitWhileStmt(s *ast.WhileStmt) error {
	for {
		condition, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(condition) {
			return nil
		}
		if err := i.execute(s.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) error {
	fn := NewFunction(s, i.environment, false)
	i.environment.Define(s.Name.Lexeme, fn)
	return nil
}

func (i *Interpreter) VisitReturnStmt(s *ast.ReturnStmt) error {
	var value any
	if s.Value != nil {
		v, err := i.evaluate(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	panic(returnSignal{Value: value})
}

func (i *Interpreter) VisitClassStmt(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		sc, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		class, ok := sc.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	i.environment.Define(s.Name.Lexeme, nil)

	env := i.environment
	if s.Superclass != nil {
		env = NewEnclosedEnvironment(i.environment)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = NewFunction(method, env, method.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	return i.environment.Assign(s.Name, class)
}
