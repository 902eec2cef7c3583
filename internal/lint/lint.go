// Package lint implements the static structural analyses of component G
// (§4.2): a flat list of warning strings derived purely from a parsed
// Script, with no execution involved.
package lint

import (
	"fmt"

	"github.com/barescript-lang/barescript/internal/ast"
)

var builtinNames = map[string]bool{"false": true, "true": true, "null": true, "if": true}

// Script runs every analysis in §4.2 against script and returns the
// warnings. Per-statement warnings appear in statement order; the
// variable, label and per-function argument/local warnings that follow
// them come from map iteration and have no defined order. knownGlobals,
// when non-nil, enables the
// "Unknown global variable" check against a host-supplied globals
// mapping (§6 lint_script(script, globals?)).
func Script(script *ast.Script, knownGlobals map[string]bool) []string {
	name := script.ScriptName
	if len(script.Statements) == 0 {
		return []string{fmt.Sprintf("%s:%d: Empty script", name, 1)}
	}

	var warnings []string

	asyncOf := map[string]bool{}
	for _, st := range script.Statements {
		if fn, ok := st.(*ast.FunctionStatement); ok {
			asyncOf[fn.Name] = fn.Async
		}
	}

	globalAssign := map[string]int{}
	globalUse := map[string]int{}
	globalLabelDefs := map[string][]int{}
	usedGlobalLabels := map[string]bool{}
	globalFuncDefs := map[string]int{}

	for i, st := range script.Statements {
		switch st := st.(type) {
		case *ast.ExprStatement:
			recordUses(st.Expr, globalUse, i)
			if st.Name != "" {
				if _, ok := globalAssign[st.Name]; !ok {
					globalAssign[st.Name] = i
				}
			} else if !ast.ContainsCall(st.Expr) {
				warnings = append(warnings, fmt.Sprintf("%s:%d: pointless expression statement", name, st.Line()))
			}
		case *ast.JumpStatement:
			if st.Expr != nil {
				recordUses(st.Expr, globalUse, i)
			}
			usedGlobalLabels[st.Label] = true
		case *ast.ReturnStatement:
			if st.Expr != nil {
				recordUses(st.Expr, globalUse, i)
			}
		case *ast.LabelStatement:
			globalLabelDefs[st.Name] = append(globalLabelDefs[st.Name], i)
		case *ast.FunctionStatement:
			if _, ok := globalFuncDefs[st.Name]; ok {
				warnings = append(warnings, fmt.Sprintf("%s:%d: redefinition of function %q", name, st.Line(), st.Name))
			} else {
				globalFuncDefs[st.Name] = i
			}
			warnings = append(warnings, lintFunction(name, st, asyncOf, script.System)...)
		}
	}

	for varName, useIdx := range globalUse {
		if builtinNames[varName] {
			continue
		}
		if _, isFunc := globalFuncDefs[varName]; isFunc {
			continue
		}
		if assignIdx, assigned := globalAssign[varName]; assigned {
			if useIdx <= assignIdx {
				warnings = append(warnings, fmt.Sprintf("%s:%d: %s used before assignment", name, script.Statements[useIdx].Line(), varName))
			}
			continue
		}
		if knownGlobals != nil && !knownGlobals[varName] {
			warnings = append(warnings, fmt.Sprintf("%s:%d: Unknown global variable %q", name, script.Statements[useIdx].Line(), varName))
		}
	}

	for labelName, idxs := range globalLabelDefs {
		if len(idxs) > 1 {
			warnings = append(warnings, fmt.Sprintf("%s:%d: redefinition of label %q", name, script.Statements[idxs[1]].Line(), labelName))
		}
		if !usedGlobalLabels[labelName] {
			warnings = append(warnings, fmt.Sprintf("%s:%d: unused label %q", name, script.Statements[idxs[0]].Line(), labelName))
		}
	}
	for labelName := range usedGlobalLabels {
		if _, ok := globalLabelDefs[labelName]; !ok {
			warnings = append(warnings, fmt.Sprintf("%s: unknown label %q", name, labelName))
		}
	}

	return warnings
}

// lintFunction runs the per-function checks: redefinition is handled by
// the caller; this covers unused locals, unused/duplicate arguments,
// label redefinition/unused/unknown scoped to the function body, and
// async-correctness.
func lintFunction(scriptName string, fn *ast.FunctionStatement, asyncOf map[string]bool, system bool) []string {
	var warnings []string

	seenArgs := map[string]bool{}
	for _, arg := range fn.Args {
		if seenArgs[arg] {
			warnings = append(warnings, fmt.Sprintf("%s:%d: duplicate argument %q in function %q", scriptName, fn.Line(), arg, fn.Name))
		}
		seenArgs[arg] = true
	}

	localAssign := map[string]int{}
	localUse := map[string]int{}
	labelDefs := map[string][]int{}
	usedLabels := map[string]bool{}
	containsAsync := false

	for i, st := range fn.Statements {
		switch st := st.(type) {
		case *ast.ExprStatement:
			recordUses(st.Expr, localUse, i)
			if containsAsyncCall(st.Expr, asyncOf) {
				containsAsync = true
			}
			if st.Name != "" {
				if _, ok := localAssign[st.Name]; !ok {
					localAssign[st.Name] = i
				}
			} else if !ast.ContainsCall(st.Expr) {
				warnings = append(warnings, fmt.Sprintf("%s:%d: pointless expression statement", scriptName, st.Line()))
			}
		case *ast.JumpStatement:
			if st.Expr != nil {
				recordUses(st.Expr, localUse, i)
				if containsAsyncCall(st.Expr, asyncOf) {
					containsAsync = true
				}
			}
			usedLabels[st.Label] = true
		case *ast.ReturnStatement:
			if st.Expr != nil {
				recordUses(st.Expr, localUse, i)
				if containsAsyncCall(st.Expr, asyncOf) {
					containsAsync = true
				}
			}
		case *ast.LabelStatement:
			labelDefs[st.Name] = append(labelDefs[st.Name], i)
		}
	}

	for arg := range seenArgs {
		if _, used := localUse[arg]; !used {
			warnings = append(warnings, fmt.Sprintf("%s:%d: unused function argument %q in function %q", scriptName, fn.Line(), arg, fn.Name))
		}
	}
	for name, assignIdx := range localAssign {
		if useIdx, used := localUse[name]; !used || useIdx <= assignIdx {
			if !used {
				warnings = append(warnings, fmt.Sprintf("%s:%d: unused local %q in function %q", scriptName, fn.Statements[assignIdx].Line(), name, fn.Name))
			} else {
				warnings = append(warnings, fmt.Sprintf("%s:%d: %s used before assignment", scriptName, fn.Statements[useIdx].Line(), name))
			}
		}
	}

	for labelName, idxs := range labelDefs {
		if len(idxs) > 1 {
			warnings = append(warnings, fmt.Sprintf("%s:%d: redefinition of label %q in function %q", scriptName, fn.Statements[idxs[1]].Line(), labelName, fn.Name))
		}
		if !usedLabels[labelName] {
			warnings = append(warnings, fmt.Sprintf("%s:%d: unused label %q in function %q", scriptName, fn.Statements[idxs[0]].Line(), labelName, fn.Name))
		}
	}
	for labelName := range usedLabels {
		if _, ok := labelDefs[labelName]; !ok {
			warnings = append(warnings, fmt.Sprintf("%s:%d: unknown label %q in function %q", scriptName, fn.Line(), labelName, fn.Name))
		}
	}

	if fn.Async && !containsAsync {
		warnings = append(warnings, fmt.Sprintf("%s:%d: Unnecessary async function %q", scriptName, fn.Line(), fn.Name))
	}
	if !fn.Async && containsAsync {
		warnings = append(warnings, fmt.Sprintf("%s:%d: Function requires async %q", scriptName, fn.Line(), fn.Name))
	}

	return warnings
}

// recordUses notes the first statement index at which each variable
// referenced within expr is read, used for the used-before-assignment
// analysis (§4.2).
func recordUses(expr ast.Expression, use map[string]int, index int) {
	ast.WalkExpr(expr, func(e ast.Expression) bool {
		if v, ok := e.(*ast.VariableExpr); ok {
			if _, seen := use[v.Name]; !seen {
				use[v.Name] = index
			}
		}
		return true
	})
}

// containsAsyncCall reports whether expr contains a call to a function
// known (by name) to be async. Nested call arguments are covered for
// free since ast.WalkExpr descends into every CallExpr's Args.
func containsAsyncCall(expr ast.Expression, asyncOf map[string]bool) bool {
	found := false
	ast.WalkExpr(expr, func(e ast.Expression) bool {
		if c, ok := e.(*ast.CallExpr); ok && asyncOf[c.Name] {
			found = true
		}
		return !found
	})
	return found
}
