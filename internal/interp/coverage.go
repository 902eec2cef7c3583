package interp

import (
	"strconv"

	"github.com/barescript-lang/barescript/internal/value"
)

// recordCoverage implements §4.4.6: when globals.__bareScriptCoverage is an
// object with enabled=true, each executed statement (including a Label
// landed on via jump) increments a per-(scriptName, lineNumber) counter.
// System include scripts are excluded.
//
// The glossary describes each script's coverage entry as
// `{script, covered: {lineNumber -> {statement, count}}}`; the `script` and
// `statement` fields reference the parsed AST nodes themselves, which have
// no representation in the Value type system (Value has no "AST node"
// kind). This implementation keeps the observable part a script author can
// act on — the line->count table — and drops the two AST-node references,
// noted as a deliberate simplification.
func (r *runner) recordCoverage(scriptName string, line int, system bool) {
	if system || scriptName == "" {
		return
	}
	covVal, ok := r.opts.Globals.Get("__bareScriptCoverage")
	if !ok || covVal.Kind() != value.KindObject || covVal.Object() == nil {
		return
	}
	cov := covVal.Object()
	if !value.Truthy(cov.GetOrNull("enabled")) {
		return
	}

	scripts := cov.GetOrNull("scripts").Object()
	if scripts == nil {
		scripts = value.NewEmptyObject()
		cov.Set("scripts", value.NewObject(scripts))
	}

	entry := scripts.GetOrNull(scriptName).Object()
	if entry == nil {
		entry = value.NewEmptyObject()
		entry.Set("covered", value.NewObject(value.NewEmptyObject()))
		scripts.Set(scriptName, value.NewObject(entry))
	}

	covered := entry.GetOrNull("covered").Object()
	key := strconv.Itoa(line)
	count := 0
	if cur := covered.GetOrNull(key); cur.Kind() == value.KindNumber {
		count = int(cur.Number())
	}
	covered.Set(key, value.NewNumber(float64(count+1)))
}
