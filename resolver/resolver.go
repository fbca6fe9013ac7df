// Package resolver performs static scope analysis over a parsed
// program, computing how many enclosing environments to skip for each
// variable reference at runtime. This lets closures capture lexical
// scope correctly even when a block later shadows a name.
package resolver

import (
	"fmt"

	"github.com/informatter/lox/ast"
	"github.com/informatter/lox/token"
)

type functionKind int

const (
	functionKindNone functionKind = iota
	functionKindFunction
	functionKindInitializer
	functionKindMethod
)

type classKind int

const (
	classKindNone classKind = iota
	classKindClass
	classKindSubclass
)

// Error is a static diagnostic raised by the resolver: a scope or
// control-flow rule violated regardless of the expression's runtime type.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// scope maps a name to whether it has finished being defined. A name
// present but false means its declaration is in progress, so a
// self-referential initializer like "var a = a;" can be rejected.
type scope map[string]bool

// Resolver walks the tree once before interpretation, computing the
// hop-count side-table the interpreter uses to locate each variable
// reference's binding environment.
type Resolver struct {
	scopes          []scope
	locals          map[int]int
	currentFunction functionKind
	currentClass    classKind
	errors          []error
}

func New() *Resolver {
	return &Resolver{locals: make(map[int]int)}
}

// Resolve walks the given statements and returns the hop-count
// side-table keyed by expression node ID, along with any static errors
// found. If errors is non-empty the side-table must not be used to drive
// execution.
func (r *Resolver) Resolve(statements []ast.Stmt) (map[int]int, []error) {
	r.resolveStmts(statements)
	return r.locals, r.errors
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	if err := s.Accept(r); err != nil {
		r.errors = append(r.errors, err)
	}
}

func (r *Resolver) resolveExpr(e ast.Expression) {
	if e == nil {
		return
	}
	if _, err := e.Accept(r); err != nil {
		r.errors = append(r.errors, err)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) peekScope() scope {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare marks a name as present but not yet initialized in the
// innermost scope. Redeclaring a name already present in that same
// scope is an error: shadowing across scopes is fine, but a duplicate
// local in one block is very likely a typo.
func (r *Resolver) declare(name token.Token) {
	s := r.peekScope()
	if s == nil {
		return
	}
	if _, ok := s[name.Lexeme]; ok {
		r.errors = append(r.errors, Error{Line: name.Line, Message: "Already a variable with this name in this scope."})
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	s := r.peekScope()
	if s == nil {
		return
	}
	s[name.Lexeme] = true
}

// resolveLocal walks outward from the innermost scope looking for name,
// recording the hop-count against id when found. Absence from every
// scope leaves the reference unresolved, meaning it is a global.
func (r *Resolver) resolveLocal(id int, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()

	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

// ---- ast.StmtVisitor ----

func (r *Resolver) VisitBlockStmt(s *ast.BlockStmt) error {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitVarStmt(s *ast.VarStmt) error {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.FunctionStmt) error {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s, functionKindFunction)
	return nil
}

func (r *Resolver) VisitExpressionStmt(s *ast.ExpressionStmt) error {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitIfStmt(s *ast.IfStmt) error {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.PrintStmt) error {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitReturnStmt(s *ast.ReturnStmt) error {
	if r.currentFunction == functionKindNone {
		r.errors = append(r.errors, Error{Line: s.Keyword.Line, Message: "Can't return from top-level code."})
	}
	if s.Value != nil {
		if r.currentFunction == functionKindInitializer {
			r.errors = append(r.errors, Error{Line: s.Keyword.Line, Message: "Can't return a value from an initializer."})
		}
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.WhileStmt) error {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Body)
	return nil
}

func (r *Resolver) VisitClassStmt(s *ast.ClassStmt) error {
	enclosingClass := r.currentClass
	r.currentClass = classKindClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errors = append(r.errors, Error{Line: s.Superclass.Name.Line, Message: "A class can't inherit from itself."})
		}
		r.currentClass = classKindSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true
	defer r.endScope()

	for _, method := range s.Methods {
		kind := functionKindMethod
		if method.Name.Lexeme == "init" {
			kind = functionKindInitializer
		}
		r.resolveFunction(method, kind)
	}

	return nil
}

// ---- ast.ExpressionVisitor ----

func (r *Resolver) VisitVariable(e *ast.Variable) (any, error) {
	if s := r.peekScope(); s != nil {
		if defined, ok := s[e.Name.Lexeme]; ok && !defined {
			return nil, Error{Line: e.Name.Line, Message: "Can't read local variable in its own initializer."}
		}
	}
	r.resolveLocal(e.ID(), e.Name)
	return nil, nil
}

func (r *Resolver) VisitAssign(e *ast.Assign) (any, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e.ID(), e.Name)
	return nil, nil
}

func (r *Resolver) VisitBinary(e *ast.Binary) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitCall(e *ast.Call) (any, error) {
	r.resolveExpr(e.Callee)
	for _, arg := range e.Args {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGet(e *ast.Get) (any, error) {
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitGrouping(e *ast.Grouping) (any, error) {
	r.resolveExpr(e.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteral(e *ast.Literal) (any, error) {
	return nil, nil
}

func (r *Resolver) VisitLogical(e *ast.Logical) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitSet(e *ast.Set) (any, error) {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitSuper(e *ast.Super) (any, error) {
	if r.currentClass == classKindNone {
		return nil, Error{Line: e.Keyword.Line, Message: "Can't use 'super' outside of a class."}
	}
	if r.currentClass != classKindSubclass {
		return nil, Error{Line: e.Keyword.Line, Message: "Can't use 'super' in a class with no superclass."}
	}
	r.resolveLocal(e.ID(), e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitThis(e *ast.This) (any, error) {
	if r.currentClass == classKindNone {
		return nil, Error{Line: e.Keyword.Line, Message: "Can't use 'this' outside of a class."}
	}
	r.resolveLocal(e.ID(), e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitUnary(e *ast.Unary) (any, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}
