package lexer

import (
	"testing"

	"flint/internal/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	lx := New(src)
	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
		if len(toks) > 1000 {
			t.Fatalf("runaway lexer on %q", src)
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	got := kinds(collect(t, src))
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestBasicTokens(t *testing.T) {
	expectKinds(t, "x = 1",
		token.Ident, token.Assign, token.IntLit)
	expectKinds(t, "x = 1.5",
		token.Ident, token.Assign, token.FloatLit)
	expectKinds(t, "f(x, y)",
		token.Ident, token.LParen, token.Ident, token.Comma, token.Ident, token.RParen)
}

func TestNewlinesAreTokens(t *testing.T) {
	toks := collect(t, "x = 1\ny = 2\n")
	got := kinds(toks)
	want := []token.Kind{
		token.Ident, token.Assign, token.IntLit, token.Newline,
		token.Ident, token.Assign, token.IntLit, token.Newline,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[4].Line != 2 {
		t.Fatalf("second statement starts at line %d, want 2", toks[4].Line)
	}
}

func TestComments(t *testing.T) {
	expectKinds(t, "x # trailing\n", token.Ident, token.Newline)
	expectKinds(t, "#= block\nover lines =# x", token.Ident)
	toks := collect(t, "#= one\ntwo =#\nx")
	if toks[len(toks)-1].Line != 3 {
		t.Fatalf("line tracking through block comment: got %d, want 3", toks[len(toks)-1].Line)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := collect(t, `s = "a\nb\"c"`)
	if toks[2].Kind != token.StringLit || toks[2].Text != "a\nb\"c" {
		t.Fatalf("string = %+v", toks[2])
	}
}

func TestVersionLiteral(t *testing.T) {
	toks := collect(t, `VERSION >= v"0.4.0"`)
	want := []token.Kind{token.Ident, token.GtEq, token.VersionLit}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if toks[2].Text != "0.4.0" {
		t.Fatalf("version text = %q", toks[2].Text)
	}
}

func TestSymbolVersusRangeColon(t *testing.T) {
	// prefix position: symbol literal
	toks := collect(t, "x = :a")
	if toks[2].Kind != token.SymbolLit || toks[2].Text != "a" {
		t.Fatalf("expected symbol :a, got %+v", toks[2])
	}
	// after an operand: range separator
	toks = collect(t, "1:10")
	if kinds(toks)[1] != token.Colon {
		t.Fatalf("expected range colon, got %v", kinds(toks))
	}
	toks = collect(t, "a[i]:b")
	if toks[4].Kind != token.Colon {
		t.Fatalf("colon after closing bracket should be a range colon, got %+v", toks[4])
	}
}

func TestBangIdentifiers(t *testing.T) {
	toks := collect(t, "push!(xs, 1)")
	if toks[0].Kind != token.Ident || toks[0].Text != "push!" {
		t.Fatalf("expected identifier push!, got %+v", toks[0])
	}
	expectKinds(t, "a != b", token.Ident, token.BangEq, token.Ident)
	expectKinds(t, "a!=b", token.Ident, token.BangEq, token.Ident)
}

func TestTwoCharOperators(t *testing.T) {
	expectKinds(t, "a == b && c || d",
		token.Ident, token.EqEq, token.Ident, token.AndAnd,
		token.Ident, token.OrOr, token.Ident)
	expectKinds(t, "k => v", token.Ident, token.FatArrow, token.Ident)
	expectKinds(t, "x::Int", token.Ident, token.ColonColon, token.Ident)
	expectKinds(t, "xs...", token.Ident, token.Ellipsis)
}

func TestKeywords(t *testing.T) {
	expectKinds(t, "function f() end",
		token.KwFunction, token.Ident, token.LParen, token.RParen, token.KwEnd)
	expectKinds(t, "if true else end",
		token.KwIf, token.KwTrue, token.KwElse, token.KwEnd)
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks := collect(t, "α = 1")
	if toks[0].Kind != token.Ident || toks[0].Text != "α" {
		t.Fatalf("expected identifier α, got %+v", toks[0])
	}
}

func TestScientificFloat(t *testing.T) {
	toks := collect(t, "x = 1e3")
	if toks[2].Kind != token.FloatLit || toks[2].Text != "1e3" {
		t.Fatalf("expected float 1e3, got %+v", toks[2])
	}
	toks = collect(t, "x = 2.5e-2")
	if toks[2].Kind != token.FloatLit || toks[2].Text != "2.5e-2" {
		t.Fatalf("expected float 2.5e-2, got %+v", toks[2])
	}
}
