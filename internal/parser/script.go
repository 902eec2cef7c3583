// Package parser implements BareScript's two parsers: the line-oriented
// script grammar (§4.3.1) and the recursive-descent expression grammar
// (§4.3.2), both producing internal/ast trees and raising
// *perror.ParserError on failure.
package parser

import (
	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/lexer"
)

// ParseScript parses text into a Script. startLine is the 1-based line
// number of the first physical line (so included files report accurate
// absolute positions when spliced by a caller), and name becomes the
// script's diagnostic identifier (§6 parse_script).
func ParseScript(text string, startLine int, name string) (*ast.Script, error) {
	lines := splitLogicalLines(text, startLine)
	sp := &scriptParser{lines: lines, scriptName: name}

	stmts, term, err := sp.parseBlock()
	if err != nil {
		return nil, err
	}
	if term != "" {
		ln := sp.current()
		return nil, sp.errAt(ln, "unexpected %s", term)
	}

	return &ast.Script{
		Statements:  stmts,
		ScriptName:  name,
		ScriptLines: rawLines(text),
	}, nil
}

func rawLines(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			end := i
			if end > start && text[end-1] == '\r' {
				end--
			}
			out = append(out, text[start:end])
			start = i + 1
		}
	}
	out = append(out, text[start:])
	return out
}

// ParseExpression parses a single standalone expression (§6
// parse_expression). allowArrayLiteral controls whether `[...]` is
// accepted as array-literal sugar or rejected as a syntax error, per the
// distinction the embedding API draws between statement contexts (which
// always allow it) and the bare expression API (which may not).
func ParseExpression(text string, allowArrayLiteral bool) (ast.Expression, error) {
	ep := newExprParser(text, 1, "", text, 1, allowArrayLiteral)
	expr, err := ep.parseExpression()
	if err != nil {
		return nil, err
	}
	tok, err := ep.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != lexer.EOF {
		return nil, newParserError("", text, 1, tok.Pos.Column, "unexpected trailing input")
	}
	return expr, nil
}
