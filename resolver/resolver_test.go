package resolver

import (
	"testing"

	"github.com/informatter/lox/lexer"
	"github.com/informatter/lox/parser"
)

func resolve(t *testing.T, src string) ([]error, map[int]int) {
	t.Helper()
	toks, scanErrs := lexer.New(src).Scan()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	stmts, parseErrs := parser.New(toks).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	locals, errs := New().Resolve(stmts)
	return errs, locals
}

func TestResolveLocalVariableGetsHopCount(t *testing.T) {
	errs, locals := resolve(t, `var a = 1; { var b = 2; print a + b; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(locals) == 0 {
		t.Errorf("expected at least one resolved local, got none")
	}
}

func TestResolveDuplicateLocalDeclarationErrors(t *testing.T) {
	errs, _ := resolve(t, `{ var a = 1; var a = 2; }`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: Already a variable with this name in this scope." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveSelfReferentialInitializerErrors(t *testing.T) {
	errs, _ := resolve(t, `{ var a = a; }`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: Can't read local variable in its own initializer." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveReturnOutsideFunctionErrors(t *testing.T) {
	errs, _ := resolve(t, `return 1;`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: Can't return from top-level code." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveReturnValueInInitializerErrors(t *testing.T) {
	errs, _ := resolve(t, `class A { init() { return 1; } }`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: Can't return a value from an initializer." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveThisOutsideClassErrors(t *testing.T) {
	errs, _ := resolve(t, `print this;`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: Can't use 'this' outside of a class." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveSuperOutsideClassErrors(t *testing.T) {
	errs, _ := resolve(t, `print super.foo();`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: Can't use 'super' outside of a class." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveSuperWithoutSuperclassErrors(t *testing.T) {
	errs, _ := resolve(t, `class A { foo() { super.foo(); } }`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: Can't use 'super' in a class with no superclass." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveClassInheritingFromItselfErrors(t *testing.T) {
	errs, _ := resolve(t, `class A < A {}`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[line 1] Error: A class can't inherit from itself." {
		t.Errorf("got %q", errs[0].Error())
	}
}

func TestResolveValidSuperclassMethodCallHasNoErrors(t *testing.T) {
	errs, _ := resolve(t, `
class A { greet() { print "A"; } }
class B < A { greet() { super.greet(); } }
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
