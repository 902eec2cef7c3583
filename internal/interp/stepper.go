package interp

import (
	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/perror"
	"github.com/barescript-lang/barescript/internal/value"
)

// execStatements is the statement stepper of §4.4.1. locals is nil at
// script top level and non-nil inside a user-function call. system
// excludes the statements from coverage recording (§4.4.6).
func (r *runner) execStatements(stmts []ast.Statement, locals *value.Object, scriptName string, system bool) (value.Value, error) {
	i := 0
	for i < len(stmts) {
		st := stmts[i]

		if err := r.rs.step(); err != nil {
			return value.Null, decorate(err, scriptName, st.Line())
		}
		r.recordCoverage(scriptName, st.Line(), system)

		switch st := st.(type) {
		case *ast.ExprStatement:
			v, err := r.evalExpr(st.Expr, locals, scriptName)
			if err != nil {
				return value.Null, decorate(err, scriptName, st.Line())
			}
			if st.Name != "" {
				r.assign(locals, st.Name, v)
			}
			i++

		case *ast.JumpStatement:
			taken := true
			if st.Expr != nil {
				g, err := r.evalExpr(st.Expr, locals, scriptName)
				if err != nil {
					return value.Null, decorate(err, scriptName, st.Line())
				}
				taken = value.Truthy(g)
			}
			if !taken {
				i++
				continue
			}
			idx, ok := findLabel(stmts, st.Label)
			if !ok {
				return value.Null, decorate(perror.NewRuntimeError("Unknown jump label %q", st.Label), scriptName, st.Line())
			}
			i = idx

		case *ast.ReturnStatement:
			if st.Expr == nil {
				return value.Null, nil
			}
			v, err := r.evalExpr(st.Expr, locals, scriptName)
			if err != nil {
				return value.Null, decorate(err, scriptName, st.Line())
			}
			return v, nil

		case *ast.LabelStatement:
			i++

		case *ast.FunctionStatement:
			r.installFunction(st, scriptName)
			i++

		case *ast.IncludeStatement:
			if !r.async {
				return value.Null, decorate(perror.NewRuntimeError("include is only valid in the async interpreter"), scriptName, st.Line())
			}
			if err := r.execInclude(st); err != nil {
				return value.Null, decorate(err, scriptName, st.Line())
			}
			i++

		default:
			i++
		}
	}
	return value.Null, nil
}

// assign writes name into locals when inside a function call, else into
// globals (§3.2 Expr statement).
func (r *runner) assign(locals *value.Object, name string, v value.Value) {
	if locals != nil {
		locals.Set(name, v)
		return
	}
	r.opts.Globals.Set(name, v)
}

// findLabel linearly scans stmts (the enclosing statement list: either the
// top-level script or a single function body — jumps never cross a
// function boundary) for a Label statement named name.
func findLabel(stmts []ast.Statement, name string) (int, bool) {
	for i, st := range stmts {
		if lbl, ok := st.(*ast.LabelStatement); ok && lbl.Name == name {
			return i, true
		}
	}
	return 0, false
}

// installFunction builds the callable for fn and installs it into globals
// (§4.4.1 Function dispatch: "install a callable into globals"). scriptName
// is the function's defining script, closed over so RuntimeErrors raised
// deep in its body are decorated against the function's home script rather
// than whatever script happened to be executing at the call site.
func (r *runner) installFunction(fn *ast.FunctionStatement, scriptName string) {
	callable := &value.Func{
		Name:  fn.Name,
		Async: fn.Async,
		Fn: func(args []value.Value, opts *value.Options) (value.Value, error) {
			locals := value.NewEmptyObject()
			bindArgs(fn, args, locals)
			return r.execStatements(fn.Statements, locals, scriptName, false)
		},
	}
	r.opts.Globals.Set(fn.Name, value.NewFunc(callable))
}

// bindArgs implements the §4.4.1 function-entry binding rule: positional
// arguments bind by name; a LastArgArray parameter collects the remainder
// into an array; missing trailing parameters default to null (or an empty
// array for the LastArgArray parameter).
func bindArgs(fn *ast.FunctionStatement, args []value.Value, locals *value.Object) {
	for i, name := range fn.Args {
		isLast := i == len(fn.Args)-1
		if isLast && fn.LastArgArray {
			var rest []value.Value
			if i < len(args) {
				rest = args[i:]
			}
			locals.Set(name, value.NewArray(value.NewArrayOf(rest...)))
			return
		}
		if i < len(args) {
			locals.Set(name, args[i])
		} else {
			locals.Set(name, value.Null)
		}
	}
}
