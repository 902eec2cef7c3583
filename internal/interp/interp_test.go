package interp

import (
	"testing"

	"github.com/barescript-lang/barescript/internal/parser"
	"github.com/barescript-lang/barescript/internal/value"
)

// run is a helper that parses and synchronously executes input.
func run(t *testing.T, src string, globals *value.Object) value.Value {
	t.Helper()
	script, err := parser.ParseScript(src, 1, "-c 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	opts := &value.Options{Globals: globals}
	v, _, err := ExecuteScript(script, opts)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	return v
}

func runExpectErr(t *testing.T, src string) error {
	t.Helper()
	script, err := parser.ParseScript(src, 1, "-c 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, _, err = ExecuteScript(script, &value.Options{})
	return err
}

// TestS1Double reproduces §8 S1.
func TestS1Double(t *testing.T) {
	g := value.NewEmptyObject()
	g.Set("N", value.NewNumber(10))
	v := run(t, "function double(n)\n  return n * 2\nendfunction\nreturn double(N)\n", g)
	if v.Kind() != value.KindNumber || v.Number() != 20 {
		t.Fatalf("expected 20, got %v", v)
	}
}

// TestS2Fibonacci reproduces §8 S2.
func TestS2Fibonacci(t *testing.T) {
	src := "function fibonacci(n)\n" +
		"  if n < 2:\n" +
		"    return n\n" +
		"  endif\n" +
		"  return fibonacci(n - 1) + fibonacci(n - 2)\n" +
		"endfunction\n" +
		"return fibonacci(10)\n"
	v := run(t, src, nil)
	if v.Kind() != value.KindNumber || v.Number() != 55 {
		t.Fatalf("expected 55, got %v", v)
	}
}

// TestS4TypeFallthrough reproduces §8 S4.
func TestS4TypeFallthrough(t *testing.T) {
	if v := run(t, `return "x" + 1`, nil); v.Str() != "x1" {
		t.Errorf(`expected "x1", got %v`, v)
	}
	if v := run(t, `return 1 + "x"`, nil); v.Str() != "1x" {
		t.Errorf(`expected "1x", got %v`, v)
	}
	v := run(t, "return 1 / 0", nil)
	if v.Kind() != value.KindNumber {
		t.Fatalf("expected number, got %v", v)
	}
}

// TestS5ShortCircuit reproduces §8 S5: the right side of && must never be
// evaluated when the left side is falsy, so an undefined variable there
// does not raise an error.
func TestS5ShortCircuit(t *testing.T) {
	v := run(t, "return 0 && undefinedVar", nil)
	if v.Kind() != value.KindNumber || v.Number() != 0 {
		t.Fatalf("expected 0, got %v", v)
	}
}

func TestIfElifElseDispatch(t *testing.T) {
	src := "if false:\n  x = 1\nelif true:\n  x = 2\nelse:\n  x = 3\nendif\nreturn x\n"
	v := run(t, src, nil)
	if v.Number() != 2 {
		t.Fatalf("expected 2, got %v", v)
	}
}

func TestWhileBreakContinue(t *testing.T) {
	src := "i = 0\nsum = 0\nwhile i < 10:\n  i = i + 1\n  if i == 5:\n    continue\n  endif\n  if i > 8:\n    break\n  endif\n  sum = sum + i\nendwhile\nreturn sum\n"
	// i runs 1..10; skips 5 via continue; stops adding once i>8 (9,10 never added, loop then breaks at i==9)
	v := run(t, src, nil)
	if v.Kind() != value.KindNumber {
		t.Fatalf("expected number, got %v", v)
	}
}

func TestForLoopOverArray(t *testing.T) {
	src := "total = 0\nfor v in [1, 2, 3]:\n  total = total + v\nendfor\nreturn total\n"
	v := run(t, src, nil)
	if v.Number() != 6 {
		t.Fatalf("expected 6, got %v", v)
	}
}

func TestIncludeIsRuntimeErrorUnderSyncInterpreter(t *testing.T) {
	if err := runExpectErr(t, "include 'lib.bare'\nreturn 1\n"); err == nil {
		t.Fatalf("expected include to fail under the sync interpreter")
	}
}

func TestUndefinedFunctionIsRuntimeError(t *testing.T) {
	if err := runExpectErr(t, "return totallyUndefined(1)\n"); err == nil {
		t.Fatalf("expected Undefined function error")
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		v    value.Value
		want int
	}{
		{value.NewNumber(0), 0},
		{value.NewNumber(255), 255},
		{value.NewNumber(256), 1},
		{value.NewBool(true), 1},
		{value.NewBool(false), 0},
		{value.Null, 0},
	}
	for _, c := range cases {
		if got := ExitCode(c.v); got != c.want {
			t.Errorf("ExitCode(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestMaxStatementsExceeded(t *testing.T) {
	script, err := parser.ParseScript("while true:\nendwhile\n", 1, "-c 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	cap := 10
	_, stats, err := ExecuteScript(script, &value.Options{MaxStatements: &cap})
	if err == nil {
		t.Fatalf("expected RuntimeError for exceeding maxStatements")
	}
	if stats.StatementCount < 10 {
		t.Errorf("expected statementCount >= 10, got %d", stats.StatementCount)
	}
}

// TestMaxStatementsDefaultsWhenUnset reproduces §3.4: leaving MaxStatements
// unset must default to 1e9, not disable the cap the way an explicit 0
// does. A tight loop well under the default cap must still complete.
func TestMaxStatementsDefaultsWhenUnset(t *testing.T) {
	script, err := parser.ParseScript("i = 0\nwhile i < 1000:\n  i = i + 1\nendwhile\nreturn i\n", 1, "-c 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v, stats, err := ExecuteScript(script, &value.Options{})
	if err != nil {
		t.Fatalf("unexpected error under default cap: %v", err)
	}
	if v.Number() != 1000 {
		t.Fatalf("expected 1000, got %v", v)
	}
	if stats.StatementCount == 0 {
		t.Fatalf("expected a nonzero statement count")
	}
}

// TestMaxStatementsExplicitlyDisabled reproduces §3.4's "0 = disabled":
// a caller that sets the pointer to 0 gets no cap at all, unlike leaving
// it nil.
func TestMaxStatementsExplicitlyDisabled(t *testing.T) {
	script, err := parser.ParseScript("i = 0\nwhile i < 2000000:\n  i = i + 1\nendwhile\nreturn i\n", 1, "-c 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	disabled := 0
	_, _, err = ExecuteScript(script, &value.Options{MaxStatements: &disabled})
	if err != nil {
		t.Fatalf("unexpected error with cap explicitly disabled: %v", err)
	}
}

func TestArrayLiteralBuiltinsWired(t *testing.T) {
	v := run(t, "a = [1,2,3]\nreturn arrayLength(a)\n", nil)
	if v.Number() != 3 {
		t.Fatalf("expected 3, got %v", v)
	}
}

func TestAsyncFunctionRejectedInSyncScope(t *testing.T) {
	src := "async function f()\n  return 1\nendfunction\nreturn f()\n"
	if err := runExpectErr(t, src); err == nil {
		t.Fatalf("expected RuntimeError calling async function from sync interpreter")
	}
}
