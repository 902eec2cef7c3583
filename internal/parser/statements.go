package parser

import (
	"fmt"
	"strings"

	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/lexer"
)

// scriptParser walks logical lines and builds the Jump/Label-desugared
// statement tree (§4.3.1). Compound constructs are lowered inline rather
// than kept as structured nodes, matching the spec's "sugar expanded at
// parse time" design note.
type scriptParser struct {
	lines      []logicalLine
	idx        int
	scriptName string
	counter    int
	loops      []loopFrame
	funcDepth  int
}

type loopFrame struct {
	doneLabel     string
	continueLabel string
}

func (p *scriptParser) gensym(kind string) string {
	p.counter++
	return fmt.Sprintf("__bareScript%s%d", kind, p.counter)
}

func (p *scriptParser) atEOF() bool { return p.idx >= len(p.lines) }

func (p *scriptParser) current() logicalLine { return p.lines[p.idx] }

func (p *scriptParser) advance() { p.idx++ }

func (p *scriptParser) errAt(ln logicalLine, format string, a ...interface{}) error {
	return newParserError(p.scriptName, ln.text, ln.lineNumber, 1, format, a...)
}

// parseExprText parses a standalone expression occupying (part of) a
// logical line, starting at column 1 of that fragment.
func (p *scriptParser) parseExprText(ln logicalLine, text string, allowArrayLit bool) (ast.Expression, error) {
	ep := newExprParser(text, 1, p.scriptName, ln.text, ln.lineNumber, allowArrayLit)
	expr, err := ep.parseExpression()
	if err != nil {
		return nil, err
	}
	tok, err := ep.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != lexer.EOF {
		return nil, p.errAt(ln, "unexpected trailing input")
	}
	return expr, nil
}

// parseBlock parses statements until EOF or a line whose first keyword is
// one of terminators; it returns those statements and the terminator
// actually matched ("" at EOF).
func (p *scriptParser) parseBlock(terminators ...string) ([]ast.Statement, string, error) {
	var out []ast.Statement
	for {
		if p.atEOF() {
			return out, "", nil
		}
		ln := p.current()
		kw := firstWord(ln.text)
		for _, t := range terminators {
			if kw == t {
				return out, kw, nil
			}
		}

		stmts, err := p.parseOne(ln, &out)
		if err != nil {
			return nil, "", err
		}
		out = append(out, stmts...)
	}
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] == '_' || isAlpha(s[i]) || isDigit(s[i])) {
		i++
	}
	return s[:i]
}

// parseOne consumes the current line (and, for compound constructs, the
// lines of its body) and returns the statements it lowers to. prevOut is
// the statement list accumulated so far in the enclosing block, consulted
// only to fold adjacent include statements together (§4.3.1).
func (p *scriptParser) parseOne(ln logicalLine, prevOut *[]ast.Statement) ([]ast.Statement, error) {
	text := strings.TrimSpace(ln.text)

	switch {
	case reFunction.MatchString(text):
		return p.parseFunction(ln, text)
	case reEndFunction.MatchString(text):
		return nil, p.errAt(ln, "unexpected endfunction")
	case reIf.MatchString(text):
		return p.parseIf(ln)
	case reElif.MatchString(text), reElse.MatchString(text):
		return nil, p.errAt(ln, "elif/else without matching if")
	case reEndif.MatchString(text):
		return nil, p.errAt(ln, "unexpected endif")
	case reWhile.MatchString(text):
		return p.parseWhile(ln)
	case reEndwhile.MatchString(text):
		return nil, p.errAt(ln, "unexpected endwhile")
	case reFor.MatchString(text):
		return p.parseFor(ln)
	case reEndfor.MatchString(text):
		return nil, p.errAt(ln, "unexpected endfor")
	case reBreak.MatchString(text):
		if len(p.loops) == 0 {
			return nil, p.errAt(ln, "break outside of loop")
		}
		top := p.loops[len(p.loops)-1]
		p.advance()
		return []ast.Statement{&ast.JumpStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Label: top.doneLabel}}, nil
	case reContinue.MatchString(text):
		if len(p.loops) == 0 {
			return nil, p.errAt(ln, "continue outside of loop")
		}
		top := p.loops[len(p.loops)-1]
		p.advance()
		return []ast.Statement{&ast.JumpStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Label: top.continueLabel}}, nil
	case reReturn.MatchString(text):
		m := reReturn.FindStringSubmatch(text)
		p.advance()
		var expr ast.Expression
		if m[1] != "" {
			e, err := p.parseExprText(ln, m[1], true)
			if err != nil {
				return nil, err
			}
			expr = e
		}
		return []ast.Statement{&ast.ReturnStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Expr: expr}}, nil
	case reJumpif.MatchString(text):
		m := reJumpif.FindStringSubmatch(text)
		p.advance()
		cond, err := p.parseExprText(ln, m[1], true)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.JumpStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Label: m[2], Expr: cond}}, nil
	case reJump.MatchString(text):
		m := reJump.FindStringSubmatch(text)
		p.advance()
		return []ast.Statement{&ast.JumpStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Label: m[1]}}, nil
	case reIncludeQuoted.MatchString(text), reIncludeAngle.MatchString(text):
		var entry ast.IncludeEntry
		if m := reIncludeQuoted.FindStringSubmatch(text); m != nil {
			entry = ast.IncludeEntry{URL: m[1], System: false}
		} else {
			m := reIncludeAngle.FindStringSubmatch(text)
			entry = ast.IncludeEntry{URL: m[1], System: true}
		}
		p.advance()
		if len(*prevOut) > 0 {
			if inc, ok := (*prevOut)[len(*prevOut)-1].(*ast.IncludeStatement); ok {
				inc.Includes = append(inc.Includes, entry)
				return nil, nil
			}
		}
		return []ast.Statement{&ast.IncludeStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Includes: []ast.IncludeEntry{entry}}}, nil
	case reLabel.MatchString(text):
		m := reLabel.FindStringSubmatch(text)
		p.advance()
		return []ast.Statement{&ast.LabelStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Name: m[1]}}, nil
	}

	if name, rhs, ok := matchAssignment(text); ok {
		p.advance()
		expr, err := p.parseExprText(ln, rhs, true)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.ExprStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Name: name, Expr: expr}}, nil
	}

	p.advance()
	expr, err := p.parseExprText(ln, text, true)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.ExprStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Expr: expr}}, nil
}

func (p *scriptParser) parseFunction(openLine logicalLine, text string) ([]ast.Statement, error) {
	if p.funcDepth > 0 {
		return nil, p.errAt(openLine, "nested function definitions are not allowed")
	}
	m := reFunction.FindStringSubmatch(text)
	async := m[1] != ""
	name := m[2]
	args, lastArgArray := splitFuncArgs(m[3])
	p.advance()

	p.funcDepth++
	savedLoops := p.loops
	p.loops = nil
	body, term, err := p.parseBlock("endfunction")
	p.loops = savedLoops
	p.funcDepth--
	if err != nil {
		return nil, err
	}
	if term != "endfunction" {
		return nil, p.errAt(openLine, "Missing endfunction statement")
	}
	p.advance()

	return []ast.Statement{&ast.FunctionStatement{
		Base:         ast.Base{LineNumber: openLine.lineNumber},
		Async:        async,
		Name:         name,
		Args:         args,
		LastArgArray: lastArgArray,
		Statements:   body,
	}}, nil
}

// parseIf lowers if/elif/else/endif into Jump/Label statements (§4.3.1,
// §4.3 design note on structured jumps).
func (p *scriptParser) parseIf(openLine logicalLine) ([]ast.Statement, error) {
	m := reIf.FindStringSubmatch(strings.TrimSpace(openLine.text))
	cond, err := p.parseExprText(openLine, m[1], true)
	if err != nil {
		return nil, err
	}
	p.advance()

	doneLabel := p.gensym("Done")
	var out []ast.Statement

	emitBranch := func(branchLine logicalLine, guard ast.Expression) error {
		nextLabel := p.gensym("If")
		out = append(out, &ast.JumpStatement{
			Base:  ast.Base{LineNumber: branchLine.lineNumber},
			Label: nextLabel,
			Expr:  &ast.UnaryExpr{Op: ast.OpNot, Expr: guard},
		})
		body, term, err := p.parseBlock("elif", "else", "endif")
		if err != nil {
			return err
		}
		out = append(out, body...)
		out = append(out, &ast.JumpStatement{Base: ast.Base{LineNumber: branchLine.lineNumber}, Label: doneLabel})
		out = append(out, &ast.LabelStatement{Base: ast.Base{LineNumber: branchLine.lineNumber}, Name: nextLabel})
		_ = term
		return nil
	}

	if err := emitBranch(openLine, cond); err != nil {
		return nil, err
	}

	for {
		if p.atEOF() {
			return nil, p.errAt(openLine, "Missing endif statement")
		}
		ln := p.current()
		text := strings.TrimSpace(ln.text)
		switch {
		case reElif.MatchString(text):
			m := reElif.FindStringSubmatch(text)
			econd, err := p.parseExprText(ln, m[1], true)
			if err != nil {
				return nil, err
			}
			p.advance()
			if err := emitBranch(ln, econd); err != nil {
				return nil, err
			}
		case reElse.MatchString(text):
			p.advance()
			body, term, err := p.parseBlock("endif")
			if err != nil {
				return nil, err
			}
			if term != "endif" {
				return nil, p.errAt(openLine, "Missing endif statement")
			}
			out = append(out, body...)
			p.advance()
			out = append(out, &ast.LabelStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Name: doneLabel})
			return out, nil
		case reEndif.MatchString(text):
			p.advance()
			out = append(out, &ast.LabelStatement{Base: ast.Base{LineNumber: ln.lineNumber}, Name: doneLabel})
			return out, nil
		default:
			return nil, p.errAt(ln, "expected elif, else, or endif")
		}
	}
}

// parseWhile lowers while/endwhile into a head-check Jump, loop Label,
// and tail Jump (§4.3.1).
func (p *scriptParser) parseWhile(openLine logicalLine) ([]ast.Statement, error) {
	m := reWhile.FindStringSubmatch(strings.TrimSpace(openLine.text))
	cond, err := p.parseExprText(openLine, m[1], true)
	if err != nil {
		return nil, err
	}
	p.advance()

	loopLabel := p.gensym("Loop")
	doneLabel := p.gensym("Done")

	p.loops = append(p.loops, loopFrame{doneLabel: doneLabel, continueLabel: loopLabel})
	body, term, err := p.parseBlock("endwhile")
	p.loops = p.loops[:len(p.loops)-1]
	if err != nil {
		return nil, err
	}
	if term != "endwhile" {
		return nil, p.errAt(openLine, "Missing endwhile statement")
	}
	p.advance()

	var out []ast.Statement
	out = append(out, &ast.LabelStatement{Base: ast.Base{LineNumber: openLine.lineNumber}, Name: loopLabel})
	out = append(out, &ast.JumpStatement{
		Base:  ast.Base{LineNumber: openLine.lineNumber},
		Label: doneLabel,
		Expr:  &ast.UnaryExpr{Op: ast.OpNot, Expr: cond},
	})
	out = append(out, body...)
	out = append(out, &ast.JumpStatement{Base: ast.Base{LineNumber: openLine.lineNumber}, Label: loopLabel})
	out = append(out, &ast.LabelStatement{Base: ast.Base{LineNumber: openLine.lineNumber}, Name: doneLabel})
	return out, nil
}

// parseFor lowers for/endfor into synthesized Values/Length/Index temps
// driven through arrayLength/arrayGet (§4.3.1, §9 design note).
func (p *scriptParser) parseFor(openLine logicalLine) ([]ast.Statement, error) {
	m := reFor.FindStringSubmatch(strings.TrimSpace(openLine.text))
	valueName := m[1]
	indexName := m[2]
	seq, err := p.parseExprText(openLine, m[3], true)
	if err != nil {
		return nil, err
	}
	p.advance()

	n := p.counter + 1
	p.counter = n
	valuesVar := fmt.Sprintf("__bareScriptValues%d", n)
	lengthVar := fmt.Sprintf("__bareScriptLength%d", n)
	indexVar := fmt.Sprintf("__bareScriptIndex%d", n)
	loopLabel := fmt.Sprintf("__bareScriptLoop%d", n)
	doneLabel := fmt.Sprintf("__bareScriptDone%d", n)
	continueLabel := fmt.Sprintf("__bareScriptContinue%d", n)

	p.loops = append(p.loops, loopFrame{doneLabel: doneLabel, continueLabel: continueLabel})
	body, term, err := p.parseBlock("endfor")
	p.loops = p.loops[:len(p.loops)-1]
	if err != nil {
		return nil, err
	}
	if term != "endfor" {
		return nil, p.errAt(openLine, "Missing endfor statement")
	}
	p.advance()

	line := openLine.lineNumber
	base := func() ast.Base { return ast.Base{LineNumber: line} }

	var out []ast.Statement
	out = append(out, &ast.ExprStatement{Base: base(), Name: valuesVar, Expr: seq})
	out = append(out, &ast.ExprStatement{Base: base(), Name: lengthVar, Expr: &ast.CallExpr{Name: "arrayLength", Args: []ast.Expression{&ast.VariableExpr{Name: valuesVar}}}})
	out = append(out, &ast.ExprStatement{Base: base(), Name: indexVar, Expr: &ast.NumberLiteral{Value: 0}})
	out = append(out, &ast.LabelStatement{Base: base(), Name: loopLabel})
	out = append(out, &ast.JumpStatement{
		Base:  base(),
		Label: doneLabel,
		Expr: &ast.UnaryExpr{Op: ast.OpNot, Expr: &ast.BinaryExpr{
			Op:    ast.OpLt,
			Left:  &ast.VariableExpr{Name: indexVar},
			Right: &ast.VariableExpr{Name: lengthVar},
		}},
	})
	out = append(out, &ast.ExprStatement{Base: base(), Name: valueName, Expr: &ast.CallExpr{
		Name: "arrayGet",
		Args: []ast.Expression{&ast.VariableExpr{Name: valuesVar}, &ast.VariableExpr{Name: indexVar}},
	}})
	if indexName != "" {
		out = append(out, &ast.ExprStatement{Base: base(), Name: indexName, Expr: &ast.VariableExpr{Name: indexVar}})
	}
	out = append(out, body...)
	out = append(out, &ast.LabelStatement{Base: base(), Name: continueLabel})
	out = append(out, &ast.ExprStatement{Base: base(), Name: indexVar, Expr: &ast.BinaryExpr{
		Op:    ast.OpAdd,
		Left:  &ast.VariableExpr{Name: indexVar},
		Right: &ast.NumberLiteral{Value: 1},
	}})
	out = append(out, &ast.JumpStatement{Base: base(), Label: loopLabel})
	out = append(out, &ast.LabelStatement{Base: base(), Name: doneLabel})
	return out, nil
}
