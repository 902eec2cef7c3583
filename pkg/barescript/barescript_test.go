package barescript

import "testing"

func TestParseAndExecuteScript(t *testing.T) {
	script, err := ParseScript("return 1 + 2\n", 1, "-c 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	globals := NewGlobals()
	v, stats, err := ExecuteScript(script, &Options{Globals: globals})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if v.Number() != 3 {
		t.Fatalf("expected 3, got %v", v)
	}
	if stats.StatementCount == 0 {
		t.Errorf("expected nonzero statement count")
	}
}

func TestParseAndEvaluateExpression(t *testing.T) {
	expr, err := ParseExpression("max(1, 7, 3)", false)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v, err := EvaluateExpression(expr, &Options{Globals: NewGlobals()}, nil, true)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}
	if v.Number() != 7 {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestLintScriptReportsEmptyScript(t *testing.T) {
	script, err := ParseScript("", 1, "-c 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	warnings := LintScript(script, nil)
	if len(warnings) == 0 {
		t.Fatalf("expected at least one warning for an empty script")
	}
}

func TestExitCodePassesThroughSmallIntegers(t *testing.T) {
	script, _ := ParseScript("return 42\n", 1, "-c 0")
	v, _, _ := ExecuteScript(script, &Options{Globals: NewGlobals()})
	if ExitCode(v) != 42 {
		t.Fatalf("expected exit code 42")
	}
}
