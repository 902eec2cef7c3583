package parser

import (
	"fmt"

	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/lexer"
	"github.com/barescript-lang/barescript/internal/perror"
)

// exprParser is a recursive-descent parser over a single line of
// expression text (§4.3.2). It is shared by the statement parser (which
// feeds it the tail of an assignment/jump/etc. line) and the standalone
// ParseExpression entry point.
//
// Binding power follows a classic precedence-climbing shape rather than
// the flat-chain-then-splice construction sketched informatively in the
// specification: both produce the identical left-associative tree for
// this operator set, and precedence climbing is the idiom the teacher's
// own expression parser (internal/parser/expressions.go) already uses.
type exprParser struct {
	lex            *lexer.Lexer
	tok            lexer.Token
	peeked         bool
	allowArrayLit  bool
	scriptName     string
	line           string
	lineNumber     int
}

func newExprParser(text string, startColumn int, scriptName, line string, lineNumber int, allowArrayLit bool) *exprParser {
	return &exprParser{
		lex:           lexer.New(text, startColumn),
		allowArrayLit: allowArrayLit,
		scriptName:    scriptName,
		line:          line,
		lineNumber:    lineNumber,
	}
}

func (p *exprParser) next() (lexer.Token, error) {
	if p.peeked {
		p.peeked = false
		return p.tok, nil
	}
	return p.lex.Next()
}

func (p *exprParser) peek() (lexer.Token, error) {
	if !p.peeked {
		tok, err := p.lex.Next()
		if err != nil {
			return tok, err
		}
		p.tok = tok
		p.peeked = true
	}
	return p.tok, nil
}

func (p *exprParser) errorf(col int, format string, a ...interface{}) error {
	return newParserError(p.scriptName, p.line, p.lineNumber, col, format, a...)
}

// parseExpression parses a full expression and returns it; any tokens left
// after it stay unconsumed for the caller to check for unexpected trailing
// input.
func (p *exprParser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(0)
}

type precInfo struct {
	level int
	op    ast.BinaryOp
}

func binaryPrecedence(t lexer.TokenType) (precInfo, bool) {
	switch t {
	case lexer.OR:
		return precInfo{1, ast.OpOr}, true
	case lexer.AND:
		return precInfo{2, ast.OpAnd}, true
	case lexer.PIPE:
		return precInfo{3, ast.OpBitOr}, true
	case lexer.CARET:
		return precInfo{4, ast.OpBitXor}, true
	case lexer.AMP:
		return precInfo{5, ast.OpBitAnd}, true
	case lexer.EQ:
		return precInfo{6, ast.OpEq}, true
	case lexer.NEQ:
		return precInfo{6, ast.OpNeq}, true
	case lexer.LTE:
		return precInfo{7, ast.OpLte}, true
	case lexer.LT:
		return precInfo{7, ast.OpLt}, true
	case lexer.GTE:
		return precInfo{7, ast.OpGte}, true
	case lexer.GT:
		return precInfo{7, ast.OpGt}, true
	case lexer.SHL:
		return precInfo{8, ast.OpShl}, true
	case lexer.SHR:
		return precInfo{8, ast.OpShr}, true
	case lexer.PLUS:
		return precInfo{9, ast.OpAdd}, true
	case lexer.MINUS:
		return precInfo{9, ast.OpSub}, true
	case lexer.STAR:
		return precInfo{10, ast.OpMul}, true
	case lexer.SLASH:
		return precInfo{10, ast.OpDiv}, true
	case lexer.PERCENT:
		return precInfo{10, ast.OpMod}, true
	case lexer.POW:
		return precInfo{11, ast.OpPow}, true
	}
	return precInfo{}, false
}

func (p *exprParser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		info, ok := binaryPrecedence(tok.Type)
		if !ok || info.level < minPrec {
			return left, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		// left-associative: the right side only binds operators strictly
		// tighter than this one.
		right, err := p.parseBinary(info.level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: info.op, Left: left, Right: right}
	}
}

func (p *exprParser) parseUnary() (ast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var op ast.UnaryOp
	switch tok.Type {
	case lexer.BANG:
		op = ast.OpNot
	case lexer.MINUS:
		op = ast.OpNeg
	case lexer.TILDE:
		op = ast.OpBitNot
	default:
		return p.parsePrimary()
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Expr: operand}, nil
}

func (p *exprParser) parsePrimary() (ast.Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case lexer.NUMBER:
		return &ast.NumberLiteral{Value: tok.Number}, nil
	case lexer.STRING:
		return &ast.StringLiteral{Value: tok.Literal}, nil
	case lexer.LPAREN:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN, tok.Pos.Column); err != nil {
			return nil, err
		}
		return &ast.GroupExpr{Expr: inner}, nil
	case lexer.LBRACE:
		return p.parseObjectLiteral(tok.Pos.Column)
	case lexer.LBRACKET:
		if !p.allowArrayLit {
			return nil, p.errorf(tok.Pos.Column, "array literals are not allowed in this context")
		}
		return p.parseArrayLiteral(tok.Pos.Column)
	case lexer.IDENT:
		return p.parseIdentOrCall(tok)
	default:
		return nil, p.errorf(tok.Pos.Column, "unexpected token %q", tok.Literal)
	}
}

func (p *exprParser) parseIdentOrCall(tok lexer.Token) (ast.Expression, error) {
	nextTok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if nextTok.Type != lexer.LPAREN {
		return &ast.VariableExpr{Name: tok.Literal}, nil
	}
	if _, err := p.next(); err != nil { // consume '('
		return nil, err
	}
	args, err := p.parseArgList(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{Name: tok.Literal, Args: args}, nil
}

func (p *exprParser) parseArgList(end lexer.TokenType) ([]ast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var args []ast.Expression
	if tok.Type == end {
		p.next()
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == end {
			return args, nil
		}
		if tok.Type != lexer.COMMA {
			return nil, p.errorf(tok.Pos.Column, "expected ',' or closing bracket")
		}
	}
}

// parseArrayLiteral desugars `[a,b,...]` into `arrayNew(a,b,...)` (§4.3.2).
func (p *exprParser) parseArrayLiteral(col int) (ast.Expression, error) {
	args, err := p.parseArgList(lexer.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{Name: "arrayNew", Args: args}, nil
}

// parseObjectLiteral desugars `{k:v, ...}` into `objectNew(k,v,k,v,...)`.
func (p *exprParser) parseObjectLiteral(col int) (ast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var args []ast.Expression
	if tok.Type == lexer.RBRACE {
		p.next()
		return &ast.CallExpr{Name: "objectNew", Args: args}, nil
	}
	for {
		keyTok, err := p.next()
		if err != nil {
			return nil, err
		}
		var keyExpr ast.Expression
		switch keyTok.Type {
		case lexer.IDENT:
			keyExpr = &ast.StringLiteral{Value: keyTok.Literal}
		case lexer.STRING:
			keyExpr = &ast.StringLiteral{Value: keyTok.Literal}
		default:
			return nil, p.errorf(keyTok.Pos.Column, "expected object key")
		}
		if err := p.expect(lexer.COLON, keyTok.Pos.Column); err != nil {
			return nil, err
		}
		valExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, keyExpr, valExpr)

		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		if sep.Type == lexer.RBRACE {
			return &ast.CallExpr{Name: "objectNew", Args: args}, nil
		}
		if sep.Type != lexer.COMMA {
			return nil, p.errorf(sep.Pos.Column, "expected ',' or '}'")
		}
	}
}

func (p *exprParser) expect(t lexer.TokenType, col int) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Type != t {
		return p.errorf(tok.Pos.Column, "unexpected token %q", tok.Literal)
	}
	_ = col
	return nil
}

func newParserError(scriptName, line string, lineNumber, column int, format string, a ...interface{}) error {
	return &perror.ParserError{
		Err:          fmt.Sprintf(format, a...),
		Line:         line,
		ColumnNumber: column,
		LineNumber:   lineNumber,
		ScriptName:   scriptName,
	}
}
