// Package interp implements the tree-walking interpreter of components D
// and E: a statement stepper and expression evaluator shared by a
// synchronous run (ExecuteScript) and a cooperative-asynchronous run
// (ExecuteScriptAsync, which additionally supports Include and async
// function calls).
//
// The two modes are not two separate engines. A single runner carries an
// `async bool` fixed for the lifetime of one top-level run; every dispatch
// point that cares whether suspension is legal consults that one flag
// instead of duplicating the statement stepper and expression evaluator
// (§9 "Coroutine/async duality"). This differs from the source system's
// literal coroutine machinery: Go's goroutines already block the calling
// frame for the duration of a host call exactly as the language's
// single-threaded cooperative model requires, so no explicit suspend/
// resume state machine is needed to get the same observable behavior.
package interp

import (
	"time"

	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/lib"
	"github.com/barescript-lang/barescript/internal/perror"
	"github.com/barescript-lang/barescript/internal/value"
)

// Stats reports the statement-count invariant of §8.5 back to the caller,
// plus wall-clock duration (grounded on the teacher's --trace execution
// timing).
type Stats struct {
	StatementCount int
	Elapsed        time.Duration
}

// runState is the mutable counter state shared by every statement stepper
// invocation within one run (including calls into user-defined functions
// and included scripts).
type runState struct {
	count int
	max   int
}

func (rs *runState) step() error {
	rs.count++
	if rs.max > 0 && rs.count > rs.max {
		return perror.NewRuntimeError("Exceeded maximum script statements (%d)", rs.max)
	}
	return nil
}

// runner carries the state common to every statement/expression dispatch
// within a single ExecuteScript/ExecuteScriptAsync call: the ambient
// options, the statement counter, and whether this run is the async
// interpreter (which alone may execute Include statements and call async
// functions).
type runner struct {
	opts  *value.Options
	rs    *runState
	async bool
}

// defaultMaxStatements is the statement cap applied when a caller leaves
// Options.MaxStatements unset (§3.4: "default 10⁹, 0 = disabled").
const defaultMaxStatements = 1_000_000_000

func newRunner(opts *value.Options, async bool) (*runner, *value.Options) {
	var cp value.Options
	if opts != nil {
		cp = *opts
	}
	if cp.Globals == nil {
		cp.Globals = value.NewEmptyObject()
	}
	lib.Seed(cp.Globals)
	// The script-execution options table (§4.6) has no "builtins" switch;
	// only the bare expression-evaluation API exposes one (default true),
	// so alias resolution is always on for a full script run. The two
	// expression entry points overwrite this with the caller's choice.
	cp.Builtins = true

	max := defaultMaxStatements
	if cp.MaxStatements != nil {
		max = *cp.MaxStatements
	}
	return &runner{opts: &cp, rs: &runState{max: max}, async: async}, &cp
}

// ExecuteScript runs script synchronously. Include statements and calls to
// async-declared functions fail with a RuntimeError (§4.4.1, §4.5.3).
func ExecuteScript(script *ast.Script, opts *value.Options) (value.Value, *Stats, error) {
	start := time.Now()
	r, _ := newRunner(opts, false)
	v, err := r.execStatements(script.Statements, nil, script.ScriptName, script.System)
	return v, &Stats{StatementCount: r.rs.count, Elapsed: time.Since(start)}, err
}

// ExecuteScriptAsync runs script under the cooperative-asynchronous
// interpreter: Include statements resolve external script units and async
// functions may be called and awaited (§4.5).
func ExecuteScriptAsync(script *ast.Script, opts *value.Options) (value.Value, *Stats, error) {
	start := time.Now()
	r, _ := newRunner(opts, true)
	v, err := r.execStatements(script.Statements, nil, script.ScriptName, script.System)
	return v, &Stats{StatementCount: r.rs.count, Elapsed: time.Since(start)}, err
}

// EvaluateExpression evaluates expr against the given locals (may be nil)
// using the synchronous rules: an async-resolving callable is a
// RuntimeError, not a suspension point.
func EvaluateExpression(expr ast.Expression, opts *value.Options, locals *value.Object, builtins bool) (value.Value, error) {
	r, cp := newRunner(opts, false)
	cp.Builtins = builtins
	return r.evalExpr(expr, locals, "")
}

// EvaluateExpressionAsync evaluates expr allowing calls to async-declared
// functions.
func EvaluateExpressionAsync(expr ast.Expression, opts *value.Options, locals *value.Object, builtins bool) (value.Value, error) {
	r, cp := newRunner(opts, true)
	cp.Builtins = builtins
	return r.evalExpr(expr, locals, "")
}

// ExitCode implements §4.4.4: an integer result in [0,255] passes through
// verbatim, otherwise truthy(result) maps to 1/0.
func ExitCode(v value.Value) int {
	if v.Kind() == value.KindNumber {
		n := v.Number()
		if n == float64(int(n)) && n >= 0 && n <= 255 {
			return int(n)
		}
	}
	if value.Truthy(v) {
		return 1
	}
	return 0
}

// decorate attaches scriptName:line to err the first time a RuntimeError
// crosses a statement boundary on its way up the call stack; it is a
// no-op on errors that are already decorated or not a *perror.RuntimeError
// at all (§7 propagation policy).
func decorate(err error, scriptName string, line int) error {
	if err == nil {
		return nil
	}
	if rte, ok := err.(*perror.RuntimeError); ok {
		return rte.WithLocation(scriptName, line)
	}
	return err
}
