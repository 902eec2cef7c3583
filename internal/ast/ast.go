// Package ast defines BareScript's typed statement/expression tree. The
// tree is immutable once built by internal/parser and may be shared across
// concurrent interpreter runs (§3.4 Lifetime, §5 AST aliasing).
package ast

// Script is the root of a parsed script unit (§3.2).
type Script struct {
	Statements  []Statement
	ScriptName  string
	ScriptLines []string
	System      bool
}

// Statement is one of Expr, Jump, Return, Label, Function, Include.
type Statement interface {
	statementNode()
	// Line returns the 1-based source line the statement was parsed from.
	Line() int
}

// Base carries the fields every statement has in common. It is exported
// (unlike the teacher's lowercase embedding convention) purely so
// internal/parser, in a different package, can populate LineNumber when
// constructing statements.
type Base struct {
	LineNumber int
	LineCount  int
}

func (b Base) Line() int { return b.LineNumber }

// ExprStatement evaluates Expr; when Name is non-empty the result is
// assigned to Name in the current scope (§3.2).
type ExprStatement struct {
	Base
	Name string
	Expr Expression
}

func (*ExprStatement) statementNode() {}

// JumpStatement transfers control to Label, unconditionally when Expr is
// nil, otherwise iff the guard is truthy (§3.2).
type JumpStatement struct {
	Base
	Label string
	Expr  Expression // nil => unconditional
}

func (*JumpStatement) statementNode() {}

// ReturnStatement returns the value of Expr (or null when Expr is nil).
type ReturnStatement struct {
	Base
	Expr Expression // nil => null
}

func (*ReturnStatement) statementNode() {}

// LabelStatement marks a jump target.
type LabelStatement struct {
	Base
	Name string
}

func (*LabelStatement) statementNode() {}

// FunctionStatement installs a callable into globals (§3.2, §4.4.1).
type FunctionStatement struct {
	Base
	Async        bool
	Name         string
	Args         []string
	LastArgArray bool
	Statements   []Statement
}

func (*FunctionStatement) statementNode() {}

// IncludeEntry is one URL within an IncludeStatement.
type IncludeEntry struct {
	URL    string
	System bool
}

// IncludeStatement fetches and executes one or more external script units
// (§3.2, §4.5.2). Adjacent include lines fold into a single statement.
type IncludeStatement struct {
	Base
	Includes []IncludeEntry
}

func (*IncludeStatement) statementNode() {}
