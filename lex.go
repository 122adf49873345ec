package stackcalc

import (
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Token is a lexical unit of a program.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Int is the value of an INT token. It is nil for every other kind.
	Int *big.Int
	// Float is the value of a FLOAT token.
	Float float64
	// At is the position of the first rune of the token.
	At Pos
}

func (t Token) String() string {
	switch t.Kind {
	case TokenInt:
		if t.Int == nil {
			return "INT(<nil>)"
		}
		return "INT(" + t.Int.String() + ")"
	case TokenFloat:
		return "FLOAT(" + formatFloat(t.Float) + ")"
	default:
		return t.Kind.String()
	}
}

// TokenKind is the type of a token.
type TokenKind int

const (
	TokenNone TokenKind = iota // NONE
	// TokenInt is an integer literal, e.g. 42.
	TokenInt // INT
	// TokenFloat is a literal containing a decimal point, e.g. 4.2, .2, or 4.
	TokenFloat   // FLOAT
	TokenPlus    // PLUS
	TokenMinus   // MINUS
	TokenMul     // MUL
	TokenDiv     // DIV
	TokenMod     // MOD
	TokenExp     // EXP
	TokenLParen  // LPAREN
	TokenRParen  // RPAREN
	TokenNewline // NEWLINE
	// TokenEOF indicates the end of the input.
	TokenEOF // EOF
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -linecomment

// Pos is a position in source text.
type Pos struct {
	// Line is the 1-based line number.
	Line int
	// Col is the 1-based rune column within the line.
	Col int
	// Off is the 1-based rune offset from the start of the input.
	Off int
}

func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Tokenizer lazily scans tokens from source text. A Tokenizer cannot be
// rewound; to scan the same text again, create a new one.
type Tokenizer struct {
	src  io.RuneScanner
	buf  strings.Builder
	pos  Pos
	prev Pos
	// line indicates that a token has been produced since the last NEWLINE.
	line bool
	eof  bool
}

// Tokenize creates a tokenizer reading from src.
func Tokenize(src io.RuneScanner) *Tokenizer {
	return &Tokenizer{
		src: src,
		pos: Pos{Line: 1, Col: 1, Off: 1},
	}
}

// TokenizeString scans all tokens in s. The result ends with exactly one EOF
// token unless there is an error.
func TokenizeString(s string) ([]Token, error) {
	l := Tokenize(strings.NewReader(s))
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// readRune reads a rune from the src and updates the tokenizer's position.
func (l *Tokenizer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.prev = l.pos
		l.pos.Off++
		if r == '\n' {
			l.pos.Line++
			l.pos.Col = 1
		} else {
			l.pos.Col++
		}
	}
	return r, err
}

// unreadRune unreads the last rune from the src and restores the position.
// Panics if unreading returns an error.
func (l *Tokenizer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.pos = l.prev
}

// Next scans the next token. Once the input is exhausted, Next returns an EOF
// token on every call. If the last line of input has no line break, Next
// produces a NEWLINE for it before EOF.
func (l *Tokenizer) Next() (Token, error) {
	if l.eof {
		return Token{Kind: TokenEOF, At: l.pos}, nil
	}
	defer l.buf.Reset()
	for {
		tok := Token{At: l.pos}
		r, err := l.readRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return tok, err
			}
			if l.line {
				l.line = false
				tok.Kind = TokenNewline
				return tok, nil
			}
			l.eof = true
			tok.Kind = TokenEOF
			return tok, nil
		}
		switch r {
		case ' ', '\t', '\r':
			continue
		case '\n':
			if !l.line {
				// Blank lines produce nothing.
				continue
			}
			l.line = false
			tok.Kind = TokenNewline
			return tok, nil
		case '+':
			tok.Kind = TokenPlus
		case '-':
			tok.Kind = TokenMinus
		case '*':
			tok.Kind = TokenMul
			r, err := l.readRune()
			switch {
			case err == nil && r == '*':
				tok.Kind = TokenExp
			case err == nil:
				l.unreadRune()
			case !errors.Is(err, io.EOF):
				return tok, err
			}
		case '/':
			tok.Kind = TokenDiv
		case '%':
			tok.Kind = TokenMod
		case '(':
			tok.Kind = TokenLParen
		case ')':
			tok.Kind = TokenRParen
		case '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			l.unreadRune()
			if err := l.scanNum(&tok); err != nil {
				return tok, err
			}
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error(tok.At, "")
		}
		l.line = true
		return tok, nil
	}
}

// scanNum scans a numeric literal into tok. The integer part is a maximal run
// of digits. A following '.' and maximal run of digits form the fractional
// part, making the token a FLOAT.
func (l *Tokenizer) scanNum(tok *Token) error {
	var ip, fp int
	dot := false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' && !dot {
			dot = true
			l.buf.WriteRune(r)
			continue
		}
		if r < '0' || r > '9' {
			l.unreadRune()
			break
		}
		if dot {
			fp++
		} else {
			ip++
		}
		l.buf.WriteRune(r)
	}
	text := l.buf.String()
	if ip == 0 && fp == 0 {
		return l.error(tok.At, "number")
	}
	if !dot {
		tok.Kind = TokenInt
		tok.Int, _ = new(big.Int).SetString(text, 10)
		return nil
	}
	i, f, _ := strings.Cut(text, ".")
	if i == "" {
		i = "0"
	}
	if f == "" {
		f = "0"
	}
	v, err := strconv.ParseFloat(i+"."+f, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.error(tok.At, "number")
	}
	tok.Kind = TokenFloat
	tok.Float = v
	return nil
}

func (l *Tokenizer) error(at Pos, kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		At:   at,
	}
}

// LexError indicates an invalid token. It implements InputError and unwraps to
// ErrLexical.
type LexError struct {
	// Text is the token the tokenizer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the tokenizer was scanning. This is "number"
	// or the empty string if no token kind had been decided.
	Kind string
	// At is the position of the start of the invalid token.
	At Pos
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.At, "invalid character "+strconv.Quote(err.Text))
	}
	return errpos(err.At, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Position() Pos {
	return err.At
}

func (err *LexError) Unwrap() error {
	return ErrLexical
}
