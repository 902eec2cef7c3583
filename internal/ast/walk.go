package ast

// WalkExpr calls visit for expr and every subexpression, depth-first.
// visit returning false stops descent into that node's children (but not
// its siblings).
func WalkExpr(expr Expression, visit func(Expression) bool) {
	if expr == nil {
		return
	}
	if !visit(expr) {
		return
	}
	switch e := expr.(type) {
	case *CallExpr:
		for _, a := range e.Args {
			WalkExpr(a, visit)
		}
	case *BinaryExpr:
		WalkExpr(e.Left, visit)
		WalkExpr(e.Right, visit)
	case *UnaryExpr:
		WalkExpr(e.Expr, visit)
	case *GroupExpr:
		WalkExpr(e.Expr, visit)
	}
}

// ContainsCall reports whether expr contains any function-call node,
// including itself (§4.2 "pointless expression": an expression with no
// function call cannot have side effects under this language's call
// model).
func ContainsCall(expr Expression) bool {
	found := false
	WalkExpr(expr, func(e Expression) bool {
		if _, ok := e.(*CallExpr); ok {
			found = true
		}
		return !found
	})
	return found
}

// CallNames returns the name of every CallExpr found within expr, in
// encounter order (used by the linter's async-call analysis, §4.2).
func CallNames(expr Expression) []string {
	var names []string
	WalkExpr(expr, func(e Expression) bool {
		if c, ok := e.(*CallExpr); ok {
			names = append(names, c.Name)
		}
		return true
	})
	return names
}
