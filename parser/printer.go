package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/informatter/lox/ast"
)

// astPrinter implements ast.ExpressionVisitor/ast.StmtVisitor and
// renders the tree into a JSON-friendly shape of maps and slices.
type astPrinter struct{}

func (p astPrinter) VisitBinary(e *ast.Binary) (any, error) {
	return map[string]any{
		"type":     "Binary",
		"operator": e.Operator.Lexeme,
		"left":     p.dump(e.Left),
		"right":    p.dump(e.Right),
	}, nil
}

func (p astPrinter) VisitGrouping(e *ast.Grouping) (any, error) {
	return map[string]any{"type": "Grouping", "expression": p.dump(e.Expression)}, nil
}

func (p astPrinter) VisitLiteral(e *ast.Literal) (any, error) {
	return e.Value, nil
}

func (p astPrinter) VisitUnary(e *ast.Unary) (any, error) {
	return map[string]any{"type": "Unary", "operator": e.Operator.Lexeme, "right": p.dump(e.Right)}, nil
}

func (p astPrinter) VisitVariable(e *ast.Variable) (any, error) {
	return map[string]any{"type": "Variable", "name": e.Name.Lexeme}, nil
}

func (p astPrinter) VisitAssign(e *ast.Assign) (any, error) {
	return map[string]any{"type": "Assign", "name": e.Name.Lexeme, "value": p.dump(e.Value)}, nil
}

func (p astPrinter) VisitLogical(e *ast.Logical) (any, error) {
	return map[string]any{
		"type":     "Logical",
		"operator": e.Operator.Lexeme,
		"left":     p.dump(e.Left),
		"right":    p.dump(e.Right),
	}, nil
}

func (p astPrinter) VisitCall(e *ast.Call) (any, error) {
	args := make([]any, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, p.dump(a))
	}
	return map[string]any{"type": "Call", "callee": p.dump(e.Callee), "arguments": args}, nil
}

func (p astPrinter) VisitGet(e *ast.Get) (any, error) {
	return map[string]any{"type": "Get", "object": p.dump(e.Object), "name": e.Name.Lexeme}, nil
}

func (p astPrinter) VisitSet(e *ast.Set) (any, error) {
	return map[string]any{
		"type":   "Set",
		"object": p.dump(e.Object),
		"name":   e.Name.Lexeme,
		"value":  p.dump(e.Value),
	}, nil
}

func (p astPrinter) VisitThis(e *ast.This) (any, error) {
	return map[string]any{"type": "This"}, nil
}

func (p astPrinter) VisitSuper(e *ast.Super) (any, error) {
	return map[string]any{"type": "Super", "method": e.Method.Lexeme}, nil
}

func (p astPrinter) dump(e ast.Expression) any {
	if e == nil {
		return nil
	}
	v, _ := e.Accept(p)
	return v
}

func (p astPrinter) VisitExpressionStmt(s *ast.ExpressionStmt) error { return nil }
func (p astPrinter) VisitPrintStmt(s *ast.PrintStmt) error           { return nil }
func (p astPrinter) VisitVarStmt(s *ast.VarStmt) error               { return nil }
func (p astPrinter) VisitBlockStmt(s *ast.BlockStmt) error           { return nil }
func (p astPrinter) VisitIfStmt(s *ast.IfStmt) error                 { return nil }
func (p astPrinter) VisitWhileStmt(s *ast.WhileStmt) error           { return nil }
func (p astPrinter) VisitFunctionStmt(s *ast.FunctionStmt) error     { return nil }
func (p astPrinter) VisitReturnStmt(s *ast.ReturnStmt) error         { return nil }
func (p astPrinter) VisitClassStmt(s *ast.ClassStmt) error           { return nil }

// dumpStmt renders a statement node through the same map-of-maps shape
// VisitExpressionStmt et al. can't return a value (ast.StmtVisitor
// methods return only error), so the printer walks statements directly
// instead of through Accept.
func dumpStmt(s ast.Stmt, p astPrinter) any {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		return map[string]any{"type": "ExpressionStmt", "expression": p.dump(n.Expression)}
	case *ast.PrintStmt:
		return map[string]any{"type": "PrintStmt", "expression": p.dump(n.Expression)}
	case *ast.VarStmt:
		return map[string]any{"type": "VarStmt", "name": n.Name.Lexeme, "initializer": p.dump(n.Initializer)}
	case *ast.BlockStmt:
		stmts := make([]any, 0, len(n.Statements))
		for _, inner := range n.Statements {
			stmts = append(stmts, dumpStmt(inner, p))
		}
		return map[string]any{"type": "BlockStmt", "statements": stmts}
	case *ast.IfStmt:
		var elseVal any
		if n.Else != nil {
			elseVal = dumpStmt(n.Else, p)
		}
		return map[string]any{
			"type":      "IfStmt",
			"condition": p.dump(n.Condition),
			"then":      dumpStmt(n.Then, p),
			"else":      elseVal,
		}
	case *ast.WhileStmt:
		return map[string]any{
			"type":      "WhileStmt",
			"condition": p.dump(n.Condition),
			"body":      dumpStmt(n.Body, p),
		}
	case *ast.FunctionStmt:
		params := make([]string, 0, len(n.Params))
		for _, param := range n.Params {
			params = append(params, param.Lexeme)
		}
		body := make([]any, 0, len(n.Body))
		for _, inner := range n.Body {
			body = append(body, dumpStmt(inner, p))
		}
		return map[string]any{"type": "FunctionStmt", "name": n.Name.Lexeme, "params": params, "body": body}
	case *ast.ReturnStmt:
		return map[string]any{"type": "ReturnStmt", "value": p.dump(n.Value)}
	case *ast.ClassStmt:
		var superclass any
		if n.Superclass != nil {
			superclass = n.Superclass.Name.Lexeme
		}
		methods := make([]any, 0, len(n.Methods))
		for _, m := range n.Methods {
			methods = append(methods, dumpStmt(m, p))
		}
		return map[string]any{"type": "ClassStmt", "name": n.Name.Lexeme, "superclass": superclass, "methods": methods}
	default:
		return nil
	}
}

// PrintJSON renders a parsed program as prettified JSON.
func PrintJSON(statements []ast.Stmt) (string, error) {
	p := astPrinter{}
	out := make([]any, 0, len(statements))
	for _, s := range statements {
		out = append(out, dumpStmt(s, p))
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PrintToFile writes the AST for the given statements to a JSON file.
func PrintToFile(statements []ast.Stmt, path string) error {
	s, err := PrintJSON(statements)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating AST dump file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(s); err != nil {
		return fmt.Errorf("writing AST dump file: %w", err)
	}
	return nil
}
