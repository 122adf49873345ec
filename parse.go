package stackcalc

import (
	"io"
	"strings"
)

// program = { statement } EOF
// statement = computation NEWLINE
// computation = term { ('+' | '-') term }
// term = unary { ('*' | '/' | '%') unary }
// unary = ('+' | '-') unary | exponentiation
// exponentiation = atom '**' unary | atom
// atom = '(' computation ')' | INT | FLOAT

// TokenSource produces tokens for the parser. After the end of input, Next
// should return an EOF token.
type TokenSource interface {
	Next() (Token, error)
}

type tokenSlice struct {
	toks []Token
}

// Tokens creates a token source that produces toks in order, followed by EOF
// tokens forever.
func Tokens(toks ...Token) TokenSource {
	return &tokenSlice{toks: toks}
}

func (s *tokenSlice) Next() (Token, error) {
	if len(s.toks) == 0 {
		return Token{Kind: TokenEOF}, nil
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	return tok, nil
}

// parser holds the state for parsing one token source.
type parser struct {
	src TokenSource
	// p is the pushed token.
	p Token
	// depth is the number of open parentheses around the current term.
	depth int
}

// next scans the next token, returning the pushed token if there is one.
func (p *parser) next() (Token, error) {
	if p.p.Kind != TokenNone {
		tok := p.p
		p.p = Token{}
		return tok, nil
	}
	tok, err := p.src.Next()
	if err != nil {
		return tok, err
	}
	if tok.Kind == TokenNone {
		panic("stackcalc: token source produced an untyped token")
	}
	return tok, nil
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (p *parser) push(tok Token) {
	if p.p.Kind != TokenNone {
		panic("stackcalc: double push")
	}
	p.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (p *parser) must() Token {
	tok := p.p
	if tok.Kind == TokenNone {
		panic("stackcalc: no pushed token")
	}
	p.p = Token{}
	return tok
}

// Parse parses a program from source text.
func Parse(src io.RuneScanner) (*Program, error) {
	return ParseProgram(Tokenize(src))
}

// ParseString is a shortcut to parse a program from a string.
func ParseString(src string) (*Program, error) {
	return Parse(strings.NewReader(src))
}

// ParseProgram parses a sequence of statements, each terminated by a NEWLINE,
// up to EOF. The first error aborts parsing.
func ParseProgram(ts TokenSource) (*Program, error) {
	p := parser{src: ts}
	prog := &Program{}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return prog, nil
		}
		p.push(tok)
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
	}
}

// ParseExpr parses a single expression, optionally followed by one NEWLINE,
// up to EOF.
func ParseExpr(ts TokenSource) (Expr, error) {
	p := parser{src: ts}
	x, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	end := p.must()
	if end.Kind == TokenNewline {
		end, err = p.next()
		if err != nil {
			return nil, err
		}
	}
	switch end.Kind {
	case TokenEOF:
		return x, nil
	case TokenRParen:
		return nil, &BracketError{At: end.At, Right: ")"}
	default:
		return nil, &TokenError{Want: []TokenKind{TokenEOF}, Got: end}
	}
}

// statement parses a computation and the NEWLINE that ends it.
func (p *parser) statement() (*ExprStatement, error) {
	x, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	switch end := p.must(); end.Kind {
	case TokenNewline:
		return &ExprStatement{X: x}, nil
	case TokenRParen:
		return nil, &BracketError{At: end.At, Right: ")"}
	default:
		return nil, &TokenError{Want: []TokenKind{TokenNewline}, Got: end}
	}
}

// parseterm parses operators binding more tightly than until. If there is no
// error, then parseterm pushes the last token it scans, including EOF.
func (p *parser) parseterm(until operator) (Expr, error) {
	n, err := p.parselhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		prec := binop(tok.Kind)
		if prec.op == opNone || !prec.moreBinding(until) {
			// Either the end of this term or a token the caller must
			// reject, e.g. 1 (2).
			p.push(tok)
			return n, nil
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		n = &BinOp{Op: prec.op, Left: n, Right: rhs}
	}
}

// parselhs parses the first operand of a term, including any unary operators.
func (p *parser) parselhs(until operator) (Expr, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenInt:
		return &IntLit{Value: tok.Int}, nil
	case TokenFloat:
		return &FloatLit{Value: tok.Float}, nil
	case TokenPlus, TokenMinus:
		prec := unop(tok.Kind)
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the enclosing operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: prec.op, X: rhs}, nil
	case TokenLParen:
		p.depth++
		rhs, err := p.parseterm(exprprec)
		p.depth--
		if err != nil {
			return nil, err
		}
		switch end := p.must(); end.Kind {
		case TokenRParen:
			return rhs, nil
		case TokenNewline, TokenEOF:
			return nil, &BracketError{At: tok.At, Left: "("}
		default:
			return nil, &TokenError{Want: []TokenKind{TokenRParen}, Got: end}
		}
	case TokenRParen:
		if p.depth == 0 {
			return nil, &BracketError{At: tok.At, Right: ")"}
		}
		return nil, &EmptyExpressionError{At: tok.At, End: tok.Kind}
	case TokenNewline, TokenEOF:
		return nil, &EmptyExpressionError{At: tok.At, End: tok.Kind}
	default:
		return nil, &TokenError{Want: operandKinds, Got: tok}
	}
}

// operandKinds lists the tokens that can begin an operand.
var operandKinds = []TokenKind{TokenInt, TokenFloat, TokenLParen, TokenPlus, TokenMinus}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operator to use when this one is selected.
	op Operator
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token kind. If there is no such binary
// operator, then the result has an op of opNone.
func binop(kind TokenKind) operator {
	switch kind {
	case TokenPlus:
		return operator{1, false, Add}
	case TokenMinus:
		return operator{1, false, Sub}
	case TokenMul:
		return operator{5, false, Mul}
	case TokenDiv:
		return operator{5, false, Div}
	case TokenMod:
		return operator{5, false, Mod}
	case TokenExp:
		return operator{15, true, Pow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token kind. If there is no such unary
// operator, then the result has an op of opNone.
func unop(kind TokenKind) operator {
	switch kind {
	case TokenPlus:
		return operator{10, true, Add}
	case TokenMinus:
		return operator{10, true, Sub}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, opNone}
