package lexer

import "testing"

func tokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src, 1)
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		out = append(out, tok)
		if tok.Type == EOF {
			return out
		}
	}
}

func TestLexNumbers(t *testing.T) {
	toks := tokens(t, "1 2.5 1e3 0x1F")
	want := []float64{1, 2.5, 1000, 31}
	for i, w := range want {
		if toks[i].Type != NUMBER || toks[i].Number != w {
			t.Errorf("token %d = %+v, want number %v", i, toks[i], w)
		}
	}
}

func TestLexString(t *testing.T) {
	toks := tokens(t, `'hello\nworld' "aAb"`)
	if toks[0].Literal != "hello\nworld" {
		t.Errorf("got %q", toks[0].Literal)
	}
	if toks[1].Literal != "aAb" {
		t.Errorf("got %q", toks[1].Literal)
	}
}

func TestLexOperators(t *testing.T) {
	toks := tokens(t, "<= << && || ** != ==")
	want := []TokenType{LTE, SHL, AND, OR, POW, NEQ, EQ, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d = %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestLexCommentSwallowed(t *testing.T) {
	toks := tokens(t, "1 + 2 # rest is a comment")
	if len(toks) != 4 { // NUMBER PLUS NUMBER EOF
		t.Errorf("expected comment to be swallowed, got %d tokens: %+v", len(toks), toks)
	}
}

func TestLexColumnsAreRuneCounts(t *testing.T) {
	toks := tokens(t, "Δ + 1")
	if toks[0].Pos.Column != 1 {
		t.Errorf("expected Δ at column 1, got %d", toks[0].Pos.Column)
	}
	if toks[1].Pos.Column != 3 {
		t.Errorf("expected + at column 3, got %d", toks[1].Pos.Column)
	}
}
