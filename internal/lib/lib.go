// Package lib implements the host library interface of component F: the
// default set of global functions seeded into every run, the expression
// function alias table consulted by the evaluator when builtins are
// enabled, and the reserved system functions the parser's desugaring and
// the include/coverage machinery depend on (arrayNew, arrayLength,
// arrayGet, objectNew, systemFetch, systemGlobalGet, systemGlobalSet).
package lib

import "github.com/barescript-lang/barescript/internal/value"

// Aliases maps short expression-function names to their canonical,
// globally-registered name (§4.4.5 "expression function map").
var Aliases = map[string]string{
	"max":   "mathMax",
	"min":   "mathMin",
	"abs":   "mathAbs",
	"floor": "mathFloor",
	"ceil":  "mathCeil",
	"round": "mathRound",
	"len":   "arrayLength",
}

// ResolveAlias looks up name in Aliases.
func ResolveAlias(name string) (string, bool) {
	canonical, ok := Aliases[name]
	return canonical, ok
}

var registry = map[string]*value.Func{}

func register(name string, async bool, fn value.NativeFunc) {
	registry[name] = &value.Func{Name: name, Async: async, Fn: fn}
}

// Seed installs every registered host function into globals, skipping
// names already present so a host's own pre-seeded globals always win
// (§4.4.1 "seeds globals with library functions only where not already
// present").
func Seed(globals *value.Object) {
	for name, fn := range registry {
		if globals.Has(name) {
			continue
		}
		globals.Set(name, value.NewFunc(fn))
	}
}

func init() {
	registerArrayFuncs()
	registerObjectFuncs()
	registerMathFuncs()
	registerSystemFuncs()
}
