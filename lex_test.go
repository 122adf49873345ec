package stackcalc

import (
	"errors"
	"math/big"
	"strings"
	"testing"
)

// tk is a shortcut to create a token of a kind without a payload.
func tk(kind TokenKind) Token {
	return Token{Kind: kind}
}

func tkint(s string) Token {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad int " + s)
	}
	return Token{Kind: TokenInt, Int: v}
}

func tkfloat(f float64) Token {
	return Token{Kind: TokenFloat, Float: f}
}

// sametok compares tokens by kind and payload, ignoring position.
func sametok(a, b Token) bool {
	if a.Kind != b.Kind || a.Float != b.Float {
		return false
	}
	if a.Int == nil || b.Int == nil {
		return a.Int == nil && b.Int == nil
	}
	return a.Int.Cmp(b.Int) == 0
}

func TestLex(t *testing.T) {
	nl, eof := tk(TokenNewline), tk(TokenEOF)
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		// spaces and lines
		{"empty", "", []Token{eof}},
		{"spaces", "   \t ", []Token{eof}},
		{"blank-lines", "\n\n \n", []Token{eof}},
		{"leading-blank", "\n\n1\n", []Token{tkint("1"), nl, eof}},
		{"trailing-blank", "1\n\n\n", []Token{tkint("1"), nl, eof}},
		{"collapse", "1\n\n\n2\n", []Token{tkint("1"), nl, tkint("2"), nl, eof}},
		{"implicit-newline", "1", []Token{tkint("1"), nl, eof}},
		{"crlf", "1\r\n2", []Token{tkint("1"), nl, tkint("2"), nl, eof}},
		// numbers
		{"int", "3", []Token{tkint("3"), nl, eof}},
		{"long", "     642357413455672", []Token{tkint("642357413455672"), nl, eof}},
		{"huge", "123456789012345678901234567890", []Token{tkint("123456789012345678901234567890"), nl, eof}},
		{"float", "1.2", []Token{tkfloat(1.2), nl, eof}},
		{"lead-dot", ".12", []Token{tkfloat(0.12), nl, eof}},
		{"trail-dot", "73.", []Token{tkfloat(73), nl, eof}},
		{"small", "0.005", []Token{tkfloat(0.005), nl, eof}},
		{"double-dot", "1.1.1", []Token{tkfloat(1.1), tkfloat(0.1), nl, eof}},
		// operators
		{"plus", "+", []Token{tk(TokenPlus), nl, eof}},
		{"minus", "-", []Token{tk(TokenMinus), nl, eof}},
		{"mul", "*", []Token{tk(TokenMul), nl, eof}},
		{"exp", "**", []Token{tk(TokenExp), nl, eof}},
		{"exp-mul", "***", []Token{tk(TokenExp), tk(TokenMul), nl, eof}},
		{"mul-space-mul", "* *", []Token{tk(TokenMul), tk(TokenMul), nl, eof}},
		{"all", "(1+2-3*4/5%6**7)", []Token{
			tk(TokenLParen), tkint("1"), tk(TokenPlus), tkint("2"), tk(TokenMinus), tkint("3"),
			tk(TokenMul), tkint("4"), tk(TokenDiv), tkint("5"), tk(TokenMod), tkint("6"),
			tk(TokenExp), tkint("7"), tk(TokenRParen), nl, eof,
		}},
		{"whitespace", "   1+    2   +3-  6     ", []Token{
			tkint("1"), tk(TokenPlus), tkint("2"), tk(TokenPlus), tkint("3"), tk(TokenMinus), tkint("6"), nl, eof,
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := TokenizeString(c.src)
			if err != nil {
				t.Fatalf("scanning %q: unexpected error %v", c.src, err)
			}
			if len(got) != len(c.tokens) {
				t.Fatalf("scanning %q: want %v, got %v", c.src, c.tokens, got)
			}
			for i, want := range c.tokens {
				if !sametok(got[i], want) {
					t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, want, got[i])
				}
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		text string
		pos  Pos
	}{
		{"dollar", "$", "$", Pos{1, 1, 1}},
		{"after", "1 + $", "$", Pos{1, 5, 5}},
		{"second-line", "1\n 2 a", "a", Pos{2, 4, 6}},
		{"lone-dot", "  .  ", ".", Pos{1, 3, 3}},
		{"letter", "1a", "a", Pos{1, 2, 2}},
		{"caret", "2^3", "^", Pos{1, 2, 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := TokenizeString(c.src)
			if err == nil {
				t.Fatalf("scanning %q gave no error", c.src)
			}
			if !errors.Is(err, ErrLexical) {
				t.Errorf("%v is not a lexical error", err)
			}
			var le *LexError
			if !errors.As(err, &le) {
				t.Fatalf("error was %#v, not LexError", err)
			}
			if le.Text != c.text {
				t.Errorf("wrong text: want %q, got %q", c.text, le.Text)
			}
			if le.Position() != c.pos {
				t.Errorf("wrong position: want %v, got %v", c.pos, le.Position())
			}
			if !strings.Contains(err.Error(), c.text) {
				t.Errorf("%q doesn't mention %q", err.Error(), c.text)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := TokenizeString("1 +\n  (22)")
	if err != nil {
		t.Fatal(err)
	}
	want := []Pos{
		{1, 1, 1},  // 1
		{1, 3, 3},  // +
		{1, 4, 4},  // NEWLINE
		{2, 3, 7},  // (
		{2, 4, 8},  // 22
		{2, 6, 10}, // )
	}
	for i, p := range want {
		if toks[i].At != p {
			t.Errorf("token %d %v: want position %v, got %v", i, toks[i], p, toks[i].At)
		}
	}
}

func TestLexEOFRepeats(t *testing.T) {
	l := Tokenize(strings.NewReader("1"))
	for i := 0; i < 2; i++ {
		if _, err := l.Next(); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind != TokenEOF {
			t.Errorf("call %d after end: want EOF, got %v", i, tok)
		}
	}
}

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{tkint("3"), "INT(3)"},
		{tkfloat(73), "FLOAT(73.0)"},
		{tkfloat(0.12), "FLOAT(0.12)"},
		{tk(TokenExp), "EXP"},
		{tk(TokenNewline), "NEWLINE"},
		{tk(TokenKind(99)), "TokenKind(99)"},
	}
	for _, c := range cases {
		if got := c.tok.String(); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}
