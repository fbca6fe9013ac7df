package ast

import (
	"testing"

	"github.com/informatter/lox/token"
)

// recordingVisitor records which Visit method fired, so tests can
// assert Accept dispatches to the right one without building a full
// interpreter.
type recordingVisitor struct{ visited string }

func (r *recordingVisitor) VisitBinary(e *Binary) (any, error)     { r.visited = "binary"; return nil, nil }
func (r *recordingVisitor) VisitGrouping(e *Grouping) (any, error) { r.visited = "grouping"; return nil, nil }
func (r *recordingVisitor) VisitLiteral(e *Literal) (any, error)   { r.visited = "literal"; return nil, nil }
func (r *recordingVisitor) VisitUnary(e *Unary) (any, error)       { r.visited = "unary"; return nil, nil }
func (r *recordingVisitor) VisitVariable(e *Variable) (any, error) { r.visited = "variable"; return nil, nil }
func (r *recordingVisitor) VisitAssign(e *Assign) (any, error)     { r.visited = "assign"; return nil, nil }
func (r *recordingVisitor) VisitLogical(e *Logical) (any, error)   { r.visited = "logical"; return nil, nil }
func (r *recordingVisitor) VisitCall(e *Call) (any, error)         { r.visited = "call"; return nil, nil }
func (r *recordingVisitor) VisitGet(e *Get) (any, error)           { r.visited = "get"; return nil, nil }
func (r *recordingVisitor) VisitSet(e *Set) (any, error)           { r.visited = "set"; return nil, nil }
func (r *recordingVisitor) VisitThis(e *This) (any, error)         { r.visited = "this"; return nil, nil }
func (r *recordingVisitor) VisitSuper(e *Super) (any, error)       { r.visited = "super"; return nil, nil }

func tok(typ token.TokenType, lexeme string) token.Token {
	return token.New(typ, lexeme, nil, 1, 0)
}

func TestAcceptDispatchesToMatchingVisitMethod(t *testing.T) {
	lit := NewLiteral(1.0)
	cases := []struct {
		name string
		expr Expression
		want string
	}{
		{"binary", NewBinary(lit, tok(token.PLUS, "+"), lit), "binary"},
		{"grouping", NewGrouping(lit), "grouping"},
		{"literal", lit, "literal"},
		{"unary", NewUnary(tok(token.MINUS, "-"), lit), "unary"},
		{"variable", NewVariable(tok(token.IDENTIFIER, "a")), "variable"},
		{"assign", NewAssign(tok(token.IDENTIFIER, "a"), lit), "assign"},
		{"logical", NewLogical(lit, tok(token.AND, "and"), lit), "logical"},
		{"call", NewCall(lit, tok(token.RPA, ")"), nil), "call"},
		{"get", NewGet(lit, tok(token.IDENTIFIER, "f")), "get"},
		{"set", NewSet(lit, tok(token.IDENTIFIER, "f"), lit), "set"},
		{"this", NewThis(tok(token.THIS, "this")), "this"},
		{"super", NewSuper(tok(token.SUPER, "super"), tok(token.IDENTIFIER, "m")), "super"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v := &recordingVisitor{}
			if _, err := tt.expr.Accept(v); err != nil {
				t.Fatalf("Accept returned error: %v", err)
			}
			if v.visited != tt.want {
				t.Errorf("Accept dispatched to %q, want %q", v.visited, tt.want)
			}
		})
	}
}

func TestExpressionIDsAreUniqueAndStable(t *testing.T) {
	a := NewLiteral(1.0)
	b := NewLiteral(1.0)

	if a.ID() == b.ID() {
		t.Errorf("two distinct nodes got the same ID: %d", a.ID())
	}
	if a.ID() != a.ID() {
		t.Errorf("ID() is not stable across calls")
	}

	ids := map[int]bool{}
	nodes := []Expression{
		NewLiteral(nil),
		NewGrouping(a),
		NewUnary(tok(token.MINUS, "-"), a),
		NewVariable(tok(token.IDENTIFIER, "x")),
	}
	for _, n := range nodes {
		if ids[n.ID()] {
			t.Fatalf("duplicate ID %d", n.ID())
		}
		ids[n.ID()] = true
	}
}

// recordingStmtVisitor mirrors recordingVisitor for statements.
type recordingStmtVisitor struct{ visited string }

func (r *recordingStmtVisitor) VisitExpressionStmt(s *ExpressionStmt) error { r.visited = "expression"; return nil }
func (r *recordingStmtVisitor) VisitPrintStmt(s *PrintStmt) error          { r.visited = "print"; return nil }
func (r *recordingStmtVisitor) VisitVarStmt(s *VarStmt) error              { r.visited = "var"; return nil }
func (r *recordingStmtVisitor) VisitBlockStmt(s *BlockStmt) error          { r.visited = "block"; return nil }
func (r *recordingStmtVisitor) VisitIfStmt(s *IfStmt) error                { r.visited = "if"; return nil }
func (r *recordingStmtVisitor) VisitWhileStmt(s *WhileStmt) error          { r.visited = "while"; return nil }
func (r *recordingStmtVisitor) VisitFunctionStmt(s *FunctionStmt) error    { r.visited = "function"; return nil }
func (r *recordingStmtVisitor) VisitReturnStmt(s *ReturnStmt) error        { r.visited = "return"; return nil }
func (r *recordingStmtVisitor) VisitClassStmt(s *ClassStmt) error          { r.visited = "class"; return nil }

func TestStmtAcceptDispatchesToMatchingVisitMethod(t *testing.T) {
	cases := []struct {
		name string
		stmt Stmt
		want string
	}{
		{"expression", &ExpressionStmt{}, "expression"},
		{"print", &PrintStmt{}, "print"},
		{"var", &VarStmt{}, "var"},
		{"block", &BlockStmt{}, "block"},
		{"if", &IfStmt{}, "if"},
		{"while", &WhileStmt{}, "while"},
		{"function", &FunctionStmt{}, "function"},
		{"return", &ReturnStmt{}, "return"},
		{"class", &ClassStmt{}, "class"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			v := &recordingStmtVisitor{}
			if err := tt.stmt.Accept(v); err != nil {
				t.Fatalf("Accept returned error: %v", err)
			}
			if v.visited != tt.want {
				t.Errorf("Accept dispatched to %q, want %q", v.visited, tt.want)
			}
		})
	}
}
