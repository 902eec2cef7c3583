package interp

import (
	"math"
	"time"

	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/lib"
	"github.com/barescript-lang/barescript/internal/perror"
	"github.com/barescript-lang/barescript/internal/value"
)

// evalExpr is the expression evaluator of §4.4.2.
func (r *runner) evalExpr(expr ast.Expression, locals *value.Object, scriptName string) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return value.NewNumber(e.Value), nil

	case *ast.StringLiteral:
		return value.NewString(e.Value), nil

	case *ast.GroupExpr:
		return r.evalExpr(e.Expr, locals, scriptName)

	case *ast.VariableExpr:
		switch e.Name {
		case "null":
			return value.Null, nil
		case "true":
			return value.NewBool(true), nil
		case "false":
			return value.NewBool(false), nil
		}
		if locals != nil {
			if v, ok := locals.Get(e.Name); ok {
				return v, nil
			}
		}
		if v, ok := r.opts.Globals.Get(e.Name); ok {
			return v, nil
		}
		return value.Null, nil

	case *ast.UnaryExpr:
		return r.evalUnary(e, locals, scriptName)

	case *ast.BinaryExpr:
		return r.evalBinary(e, locals, scriptName)

	case *ast.CallExpr:
		return r.evalCall(e, locals, scriptName)

	default:
		return value.Null, nil
	}
}

func (r *runner) evalUnary(e *ast.UnaryExpr, locals *value.Object, scriptName string) (value.Value, error) {
	v, err := r.evalExpr(e.Expr, locals, scriptName)
	if err != nil {
		return value.Null, err
	}
	switch e.Op {
	case ast.OpNot:
		return value.NewBool(!value.Truthy(v)), nil
	case ast.OpNeg:
		if v.Kind() == value.KindNumber {
			return value.NewNumber(-v.Number()), nil
		}
		return value.Null, nil
	case ast.OpBitNot:
		if n, ok := asInteger(v); ok {
			return value.NewNumber(float64(^n)), nil
		}
		return value.Null, nil
	}
	return value.Null, nil
}

func (r *runner) evalBinary(e *ast.BinaryExpr, locals *value.Object, scriptName string) (value.Value, error) {
	left, err := r.evalExpr(e.Left, locals, scriptName)
	if err != nil {
		return value.Null, err
	}

	// Short-circuit forms never evaluate the right side (§4.4.2, §8.5).
	switch e.Op {
	case ast.OpAnd:
		if !value.Truthy(left) {
			return left, nil
		}
		return r.evalExpr(e.Right, locals, scriptName)
	case ast.OpOr:
		if value.Truthy(left) {
			return left, nil
		}
		return r.evalExpr(e.Right, locals, scriptName)
	}

	right, err := r.evalExpr(e.Right, locals, scriptName)
	if err != nil {
		return value.Null, err
	}

	switch e.Op {
	case ast.OpEq:
		return value.NewBool(value.Compare(left, right) == 0), nil
	case ast.OpNeq:
		return value.NewBool(value.Compare(left, right) != 0), nil
	case ast.OpLt:
		return value.NewBool(value.Compare(left, right) < 0), nil
	case ast.OpLte:
		return value.NewBool(value.Compare(left, right) <= 0), nil
	case ast.OpGt:
		return value.NewBool(value.Compare(left, right) > 0), nil
	case ast.OpGte:
		return value.NewBool(value.Compare(left, right) >= 0), nil
	case ast.OpAdd:
		return evalAdd(left, right), nil
	case ast.OpSub:
		return evalSub(left, right), nil
	case ast.OpMul:
		return numericBinOp(left, right, func(a, b float64) float64 { return a * b }), nil
	case ast.OpDiv:
		return numericBinOp(left, right, func(a, b float64) float64 { return a / b }), nil
	case ast.OpMod:
		return numericBinOp(left, right, math.Mod), nil
	case ast.OpPow:
		return numericBinOp(left, right, math.Pow), nil
	case ast.OpBitAnd:
		return integerBinOp(left, right, func(a, b int64) int64 { return a & b }), nil
	case ast.OpBitOr:
		return integerBinOp(left, right, func(a, b int64) int64 { return a | b }), nil
	case ast.OpBitXor:
		return integerBinOp(left, right, func(a, b int64) int64 { return a ^ b }), nil
	case ast.OpShl:
		return integerBinOp(left, right, func(a, b int64) int64 { return a << uint(b) }), nil
	case ast.OpShr:
		return integerBinOp(left, right, func(a, b int64) int64 { return a >> uint(b) }), nil
	}
	return value.Null, nil
}

// evalAdd implements the `+` typed-overload table (§4.4.2): numeric
// addition, string concatenation, string coercion when either side is a
// string, and datetime + number as a millisecond offset.
func evalAdd(a, b value.Value) value.Value {
	switch {
	case a.Kind() == value.KindNumber && b.Kind() == value.KindNumber:
		return value.NewNumber(a.Number() + b.Number())
	case a.Kind() == value.KindString && b.Kind() == value.KindString:
		return value.NewString(a.Str() + b.Str())
	case a.Kind() == value.KindString:
		return value.NewString(a.Str() + value.StringOf(b))
	case b.Kind() == value.KindString:
		return value.NewString(value.StringOf(a) + b.Str())
	case a.Kind() == value.KindDatetime && b.Kind() == value.KindNumber:
		return value.NewDatetime(a.Datetime().Add(millis(b.Number())))
	case b.Kind() == value.KindDatetime && a.Kind() == value.KindNumber:
		return value.NewDatetime(b.Datetime().Add(millis(a.Number())))
	default:
		return value.Null
	}
}

// evalSub implements the `-` typed-overload table: numeric subtraction and
// datetime - datetime producing a millisecond difference.
func evalSub(a, b value.Value) value.Value {
	switch {
	case a.Kind() == value.KindNumber && b.Kind() == value.KindNumber:
		return value.NewNumber(a.Number() - b.Number())
	case a.Kind() == value.KindDatetime && b.Kind() == value.KindDatetime:
		return value.NewNumber(float64(a.Datetime().Sub(b.Datetime()).Milliseconds()))
	default:
		return value.Null
	}
}

func numericBinOp(a, b value.Value, f func(x, y float64) float64) value.Value {
	if a.Kind() != value.KindNumber || b.Kind() != value.KindNumber {
		return value.Null
	}
	return value.NewNumber(f(a.Number(), b.Number()))
}

func integerBinOp(a, b value.Value, f func(x, y int64) int64) value.Value {
	an, aok := asInteger(a)
	bn, bok := asInteger(b)
	if !aok || !bok {
		return value.Null
	}
	return value.NewNumber(float64(f(an, bn)))
}

// asInteger reports whether v is a number passing the floor(x)==x test of
// §9 open question (b), returning its int64 form.
func asInteger(v value.Value) (int64, bool) {
	if v.Kind() != value.KindNumber {
		return 0, false
	}
	n := v.Number()
	if n != float64(int64(n)) {
		return 0, false
	}
	return int64(n), true
}

func (r *runner) evalCall(e *ast.CallExpr, locals *value.Object, scriptName string) (value.Value, error) {
	if e.Name == "if" {
		if len(e.Args) < 2 {
			return value.Null, nil
		}
		cond, err := r.evalExpr(e.Args[0], locals, scriptName)
		if err != nil {
			return value.Null, err
		}
		if value.Truthy(cond) {
			return r.evalExpr(e.Args[1], locals, scriptName)
		}
		if len(e.Args) >= 3 {
			return r.evalExpr(e.Args[2], locals, scriptName)
		}
		return value.Null, nil
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := r.evalExpr(a, locals, scriptName)
		if err != nil {
			return value.Null, err
		}
		args[i] = v
	}

	callable, ok := r.resolveCallable(e.Name, locals)
	if !ok {
		return value.Null, perror.NewRuntimeError("Undefined function %q", e.Name)
	}
	if callable.Async && !r.async {
		return value.Null, perror.NewRuntimeError("Async function %s called within non-async scope", e.Name)
	}

	callOpts := *r.opts
	callOpts.Locals = locals
	v, err := callable.Call(args, &callOpts)
	if err == nil {
		return v, nil
	}
	if _, ok := err.(*perror.RuntimeError); ok {
		return value.Null, err
	}
	if rerr, ok := err.(*value.RuntimeErr); ok {
		return value.Null, perror.NewRuntimeError("%s", rerr.Message)
	}
	if aerr, ok := err.(*value.ArgsError); ok {
		return aerr.ReturnValue, nil
	}
	if r.opts.Debug && r.opts.LogFn != nil {
		r.opts.LogFn(err.Error())
	}
	return value.Null, nil
}

// resolveCallable implements the §4.4.2/§4.4.5 lookup chain: locals, then
// globals, then (when enabled) the expression-function alias table.
func (r *runner) resolveCallable(name string, locals *value.Object) (*value.Func, bool) {
	if locals != nil {
		if v, ok := locals.Get(name); ok && v.Kind() == value.KindFunction {
			return v.Func(), true
		}
	}
	if v, ok := r.opts.Globals.Get(name); ok && v.Kind() == value.KindFunction {
		return v.Func(), true
	}
	if r.opts.Builtins {
		if canonical, ok := lib.ResolveAlias(name); ok {
			if v, ok := r.opts.Globals.Get(canonical); ok && v.Kind() == value.KindFunction {
				return v.Func(), true
			}
		}
	}
	return nil, false
}

func millis(n float64) time.Duration {
	return time.Duration(n * float64(time.Millisecond))
}
