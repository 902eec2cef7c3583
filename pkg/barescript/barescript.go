// Package barescript is the public embedding API (§6): parse scripts and
// expressions, execute or lint them, and evaluate standalone expressions
// against a host-supplied variable store. Everything here is a thin,
// stable wrapper over the internal parser/interp/lint packages, which are
// free to change shape as long as this surface doesn't.
package barescript

import (
	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/interp"
	"github.com/barescript-lang/barescript/internal/lint"
	"github.com/barescript-lang/barescript/internal/parser"
	"github.com/barescript-lang/barescript/internal/value"
)

// Re-exported value types so callers never need to import internal/value.
type (
	Value         = value.Value
	Options       = value.Options
	FetchResponse = value.FetchResponse
	FetchFunc     = value.FetchFunc
)

// Re-exported AST types for callers that want to inspect a parsed script
// (e.g. a -dump-ast flag) without reaching into internal/ast directly.
type (
	Script     = ast.Script
	Expression = ast.Expression
)

// Stats reports run-level statistics back to the caller (§8.5).
type Stats = interp.Stats

// ParseScript parses text into a Script (§6 parse_script). startLine is
// the 1-based line number of text's first physical line; name becomes the
// script's diagnostic identifier in error messages and coverage records.
func ParseScript(text string, startLine int, name string) (*Script, error) {
	return parser.ParseScript(text, startLine, name)
}

// ParseExpression parses a single expression (§6 parse_expression).
// allowArrayLiteral permits `[...]` array literals anywhere in the
// expression; when false they are rejected at any depth. The -v CLI flag
// parses with it set.
func ParseExpression(text string, allowArrayLiteral bool) (Expression, error) {
	return parser.ParseExpression(text, allowArrayLiteral)
}

// ExecuteScript runs script synchronously (§6 execute_script). Include
// statements and calls to async-declared functions fail with a
// RuntimeError under this entry point.
func ExecuteScript(script *Script, opts *Options) (Value, *Stats, error) {
	return interp.ExecuteScript(script, opts)
}

// ExecuteScriptAsync runs script under the cooperative-asynchronous
// interpreter (§6 execute_script_async): Include resolves and async
// functions may be called.
func ExecuteScriptAsync(script *Script, opts *Options) (Value, *Stats, error) {
	return interp.ExecuteScriptAsync(script, opts)
}

// EvaluateExpression evaluates expr synchronously (§6 evaluate_expression).
// locals may be nil. builtins controls whether the expression-function
// alias table (max, min, len, ...) is consulted after locals/globals.
func EvaluateExpression(expr Expression, opts *Options, locals *value.Object, builtins bool) (Value, error) {
	return interp.EvaluateExpression(expr, opts, locals, builtins)
}

// EvaluateExpressionAsync evaluates expr allowing calls to async-declared
// functions (§6 evaluate_expression_async).
func EvaluateExpressionAsync(expr Expression, opts *Options, locals *value.Object, builtins bool) (Value, error) {
	return interp.EvaluateExpressionAsync(expr, opts, locals, builtins)
}

// LintScript runs the static analyses of §4.2 and returns warnings in the
// order lint.Script documents (§6 lint_script). knownGlobals, when non-nil, enables
// the "unknown global variable" check against a host-supplied mapping.
func LintScript(script *Script, knownGlobals map[string]bool) []string {
	return lint.Script(script, knownGlobals)
}

// ExitCode maps a script's return value to a process exit code (§4.4.4,
// §6 CLI exit-code semantics).
func ExitCode(v Value) int {
	return interp.ExitCode(v)
}

// NewGlobals returns a fresh, empty variable store suitable for Options.Globals.
func NewGlobals() *value.Object {
	return value.NewEmptyObject()
}
