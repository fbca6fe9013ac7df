// Package ast defines the abstract syntax tree shared by the parser,
// resolver, and tree-walking interpreter. Every node type follows the
// visitor pattern: a node's Accept method dispatches to the matching
// Visit method on whichever visitor is walking the tree.
package ast

import "github.com/informatter/lox/token"

// nextID is a monotonic counter handing out stable identities to
// expression nodes. The resolver keys its scope-depth side-table by
// this ID rather than by node value, since Go map keys must be
// comparable and struct-valued expression nodes sharing the same
// structure would otherwise collide (spec.md §3 invariant, §9 design
// note: "expression identity for the resolver").
var nextID int

func newID() int {
	nextID++
	return nextID
}

// Expression is the interface every expression AST node implements.
type Expression interface {
	Accept(v ExpressionVisitor) (any, error)
	ID() int
}

// Stmt is the interface every statement AST node implements. Unlike
// expressions, statements don't produce a value.
type Stmt interface {
	Accept(v StmtVisitor) error
}

// ExpressionVisitor is implemented by anything that operates over every
// expression node kind: the resolver, the interpreter, the JSON AST
// printer.
type ExpressionVisitor interface {
	VisitBinary(e *Binary) (any, error)
	VisitGrouping(e *Grouping) (any, error)
	VisitLiteral(e *Literal) (any, error)
	VisitUnary(e *Unary) (any, error)
	VisitVariable(e *Variable) (any, error)
	VisitAssign(e *Assign) (any, error)
	VisitLogical(e *Logical) (any, error)
	VisitCall(e *Call) (any, error)
	VisitGet(e *Get) (any, error)
	VisitSet(e *Set) (any, error)
	VisitThis(e *This) (any, error)
	VisitSuper(e *Super) (any, error)
}

// StmtVisitor is implemented by anything that operates over every
// statement node kind.
type StmtVisitor interface {
	VisitExpressionStmt(s *ExpressionStmt) error
	VisitPrintStmt(s *PrintStmt) error
	VisitVarStmt(s *VarStmt) error
	VisitBlockStmt(s *BlockStmt) error
	VisitIfStmt(s *IfStmt) error
	VisitWhileStmt(s *WhileStmt) error
	VisitFunctionStmt(s *FunctionStmt) error
	VisitReturnStmt(s *ReturnStmt) error
	VisitClassStmt(s *ClassStmt) error
}

// ---- expressions ----

// Binary is a binary operation, e.g. "a + b".
type Binary struct {
	id       int
	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewBinary(left Expression, op token.Token, right Expression) *Binary {
	return &Binary{id: newID(), Left: left, Operator: op, Right: right}
}
func (e *Binary) ID() int                                  { return e.id }
func (e *Binary) Accept(v ExpressionVisitor) (any, error) { return v.VisitBinary(e) }

// Grouping is a parenthesized expression, e.g. "(a + b)".
type Grouping struct {
	id         int
	Expression Expression
}

func NewGrouping(expr Expression) *Grouping { return &Grouping{id: newID(), Expression: expr} }
func (e *Grouping) ID() int                 { return e.id }
func (e *Grouping) Accept(v ExpressionVisitor) (any, error) { return v.VisitGrouping(e) }

// Literal wraps a compile-time constant value (number, string, bool, nil).
type Literal struct {
	id    int
	Value any
}

func NewLiteral(value any) *Literal { return &Literal{id: newID(), Value: value} }
func (e *Literal) ID() int          { return e.id }
func (e *Literal) Accept(v ExpressionVisitor) (any, error) { return v.VisitLiteral(e) }

// Unary is a prefix operation, e.g. "!a" or "-b".
type Unary struct {
	id       int
	Operator token.Token
	Right    Expression
}

func NewUnary(op token.Token, right Expression) *Unary {
	return &Unary{id: newID(), Operator: op, Right: right}
}
func (e *Unary) ID() int                                 { return e.id }
func (e *Unary) Accept(v ExpressionVisitor) (any, error) { return v.VisitUnary(e) }

// Variable reads the value bound to a declared name.
type Variable struct {
	id   int
	Name token.Token
}

func NewVariable(name token.Token) *Variable { return &Variable{id: newID(), Name: name} }
func (e *Variable) ID() int                  { return e.id }
func (e *Variable) Accept(v ExpressionVisitor) (any, error) { return v.VisitVariable(e) }

// Assign binds a new value to an existing variable.
type Assign struct {
	id    int
	Name  token.Token
	Value Expression
}

func NewAssign(name token.Token, value Expression) *Assign {
	return &Assign{id: newID(), Name: name, Value: value}
}
func (e *Assign) ID() int                                 { return e.id }
func (e *Assign) Accept(v ExpressionVisitor) (any, error) { return v.VisitAssign(e) }

// Logical is "and"/"or", which short-circuit and are evaluated
// separately from other binary operators.
type Logical struct {
	id       int
	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewLogical(left Expression, op token.Token, right Expression) *Logical {
	return &Logical{id: newID(), Left: left, Operator: op, Right: right}
}
func (e *Logical) ID() int                                 { return e.id }
func (e *Logical) Accept(v ExpressionVisitor) (any, error) { return v.VisitLogical(e) }

// Call invokes a callee with a list of argument expressions. Paren is
// the closing ")" token, kept for its line number in arity errors.
type Call struct {
	id     int
	Callee Expression
	Paren  token.Token
	Args   []Expression
}

func NewCall(callee Expression, paren token.Token, args []Expression) *Call {
	return &Call{id: newID(), Callee: callee, Paren: paren, Args: args}
}
func (e *Call) ID() int                                 { return e.id }
func (e *Call) Accept(v ExpressionVisitor) (any, error) { return v.VisitCall(e) }

// Get reads a property or method off an instance, e.g. "obj.field".
type Get struct {
	id     int
	Object Expression
	Name   token.Token
}

func NewGet(object Expression, name token.Token) *Get {
	return &Get{id: newID(), Object: object, Name: name}
}
func (e *Get) ID() int                                 { return e.id }
func (e *Get) Accept(v ExpressionVisitor) (any, error) { return v.VisitGet(e) }

// Set assigns a value to a property on an instance, e.g. "obj.field = v".
type Set struct {
	id     int
	Object Expression
	Name   token.Token
	Value  Expression
}

func NewSet(object Expression, name token.Token, value Expression) *Set {
	return &Set{id: newID(), Object: object, Name: name, Value: value}
}
func (e *Set) ID() int                                 { return e.id }
func (e *Set) Accept(v ExpressionVisitor) (any, error) { return v.VisitSet(e) }

// This refers to the receiver inside a method body.
type This struct {
	id      int
	Keyword token.Token
}

func NewThis(keyword token.Token) *This { return &This{id: newID(), Keyword: keyword} }
func (e *This) ID() int                 { return e.id }
func (e *This) Accept(v ExpressionVisitor) (any, error) { return v.VisitThis(e) }

// Super resolves a method on the enclosing class's superclass.
type Super struct {
	id      int
	Keyword token.Token
	Method  token.Token
}

func NewSuper(keyword, method token.Token) *Super {
	return &Super{id: newID(), Keyword: keyword, Method: method}
}
func (e *Super) ID() int                                 { return e.id }
func (e *Super) Accept(v ExpressionVisitor) (any, error) { return v.VisitSuper(e) }

// ---- statements ----

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct{ Expression Expression }

func (s *ExpressionStmt) Accept(v StmtVisitor) error { return v.VisitExpressionStmt(s) }

// PrintStmt evaluates an expression and writes its display form.
type PrintStmt struct{ Expression Expression }

func (s *PrintStmt) Accept(v StmtVisitor) error { return v.VisitPrintStmt(s) }

// VarStmt declares a variable, optionally with an initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expression
}

func (s *VarStmt) Accept(v StmtVisitor) error { return v.VisitVarStmt(s) }

// BlockStmt introduces a new lexical scope around a list of statements.
type BlockStmt struct{ Statements []Stmt }

func (s *BlockStmt) Accept(v StmtVisitor) error { return v.VisitBlockStmt(s) }

// IfStmt is a conditional, with an optional else branch.
type IfStmt struct {
	Condition Expression
	Then      Stmt
	Else      Stmt
}

func (s *IfStmt) Accept(v StmtVisitor) error { return v.VisitIfStmt(s) }

// WhileStmt is a condition-checked loop. "for" loops desugar to this.
type WhileStmt struct {
	Condition Expression
	Body      Stmt
}

func (s *WhileStmt) Accept(v StmtVisitor) error { return v.VisitWhileStmt(s) }

// FunctionStmt declares a named function or method.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (s *FunctionStmt) Accept(v StmtVisitor) error { return v.VisitFunctionStmt(s) }

// ReturnStmt returns (optionally with a value) from the innermost
// enclosing function.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expression
}

func (s *ReturnStmt) Accept(v StmtVisitor) error { return v.VisitReturnStmt(s) }

// ClassStmt declares a class, with an optional superclass expression
// (always a *Variable referring to the superclass's name) and a list of
// method declarations.
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*FunctionStmt
}

func (s *ClassStmt) Accept(v StmtVisitor) error { return v.VisitClassStmt(s) }
