package parser

import (
	"testing"

	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/perror"
)

func TestParseSimpleAssignmentAndReturn(t *testing.T) {
	script, err := ParseScript("x = 1 + 2\nreturn x\n", 1, "-c 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(script.Statements))
	}
	if _, ok := script.Statements[0].(*ast.ExprStatement); !ok {
		t.Errorf("expected ExprStatement, got %T", script.Statements[0])
	}
	if _, ok := script.Statements[1].(*ast.ReturnStatement); !ok {
		t.Errorf("expected ReturnStatement, got %T", script.Statements[1])
	}
}

func TestParseFunctionDouble(t *testing.T) {
	src := "function double(n)\n  return n * 2\nendfunction\nreturn double(N)\n"
	script, err := ParseScript(src, 1, "-c 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.Statements) != 2 {
		t.Fatalf("expected function + return, got %d statements", len(script.Statements))
	}
	fn, ok := script.Statements[0].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("expected FunctionStatement, got %T", script.Statements[0])
	}
	if fn.Name != "double" || len(fn.Args) != 1 || fn.Args[0] != "n" {
		t.Errorf("unexpected function header: %+v", fn)
	}
}

// TestMissingEndifScenario reproduces the exact §8 S3 scenario.
func TestMissingEndifScenario(t *testing.T) {
	src := "if x:\n  return 1\n"
	_, err := ParseScript(src, 1, "-c 0")
	if err == nil {
		t.Fatalf("expected parser error")
	}
	pe, ok := err.(*perror.ParserError)
	if !ok {
		t.Fatalf("expected *perror.ParserError, got %T", err)
	}
	if pe.LineNumber != 1 || pe.ColumnNumber != 1 {
		t.Errorf("expected line 1 col 1, got line %d col %d", pe.LineNumber, pe.ColumnNumber)
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "if a:\n  x = 1\nelif b:\n  x = 2\nelse:\n  x = 3\nendif\n"
	script, err := ParseScript(src, 1, "-c 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var labels, jumps int
	for _, s := range script.Statements {
		switch s.(type) {
		case *ast.LabelStatement:
			labels++
		case *ast.JumpStatement:
			jumps++
		}
	}
	if labels == 0 || jumps == 0 {
		t.Errorf("expected desugared jumps/labels, got labels=%d jumps=%d", labels, jumps)
	}
}

func TestParseWhileBreakContinue(t *testing.T) {
	src := "while x < 10:\n  if x == 5:\n    break\n  endif\n  x = x + 1\nendwhile\n"
	if _, err := ParseScript(src, 1, "-c 0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	if _, err := ParseScript("break\n", 1, "-c 0"); err == nil {
		t.Fatalf("expected error for break outside loop")
	}
}

func TestParseForLoopDesugarsArrayAccess(t *testing.T) {
	src := "for v, i in items:\n  x = v\nendfor\n"
	script, err := ParseScript(src, 1, "-c 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	foundArrayLength, foundArrayGet := false, false
	for _, s := range script.Statements {
		if es, ok := s.(*ast.ExprStatement); ok {
			if call, ok := es.Expr.(*ast.CallExpr); ok {
				if call.Name == "arrayLength" {
					foundArrayLength = true
				}
				if call.Name == "arrayGet" {
					foundArrayGet = true
				}
			}
		}
	}
	if !foundArrayLength || !foundArrayGet {
		t.Errorf("expected for-loop to desugar through arrayLength/arrayGet, got length=%v get=%v", foundArrayLength, foundArrayGet)
	}
}

func TestNestedFunctionIsError(t *testing.T) {
	src := "function outer()\n  function inner()\n  endfunction\nendfunction\n"
	if _, err := ParseScript(src, 1, "-c 0"); err == nil {
		t.Fatalf("expected error for nested function")
	}
}

func TestIncludeFolding(t *testing.T) {
	src := "include 'a.bare'\ninclude <b.bare>\nreturn 1\n"
	script, err := ParseScript(src, 1, "-c 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inc, ok := script.Statements[0].(*ast.IncludeStatement)
	if !ok {
		t.Fatalf("expected IncludeStatement, got %T", script.Statements[0])
	}
	if len(inc.Includes) != 2 {
		t.Fatalf("expected folded include with 2 entries, got %d", len(inc.Includes))
	}
	if inc.Includes[0].System || !inc.Includes[1].System {
		t.Errorf("expected first include non-system and second system, got %+v", inc.Includes)
	}
}

func TestParseExpressionArrayLiteralDesugar(t *testing.T) {
	expr, err := ParseExpression("[1, 2, 3]", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := expr.(*ast.CallExpr)
	if !ok || call.Name != "arrayNew" || len(call.Args) != 3 {
		t.Errorf("expected arrayNew(1,2,3), got %+v", expr)
	}
}

func TestParseExpressionArrayLiteralDisallowed(t *testing.T) {
	if _, err := ParseExpression("[1, 2, 3]", false); err == nil {
		t.Fatalf("expected error when array literals are disallowed")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	expr, err := ParseExpression("1 + 2 * 3", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %+v", expr)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected right side to be the tighter-binding * expression")
	}
}

func TestParseObjectLiteralDesugar(t *testing.T) {
	expr, err := ParseExpression(`{a: 1, 'b': 2}`, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := expr.(*ast.CallExpr)
	if !ok || call.Name != "objectNew" || len(call.Args) != 4 {
		t.Errorf("expected objectNew(a,1,b,2), got %+v", expr)
	}
}
