package stackcalc

import (
	"errors"
	"strconv"
	"strings"
)

// Error categories. Every error produced by a pipeline stage unwraps to
// exactly one of these, so errors.Is distinguishes them.
var (
	// ErrLexical classifies errors from the tokenizer.
	ErrLexical = errors.New("lexical error")
	// ErrSyntax classifies structural errors from the parser.
	ErrSyntax = errors.New("syntax error")
	// ErrArithmetic classifies errors from executing bytecode.
	ErrArithmetic = errors.New("arithmetic error")
)

// TokenError is an error indicating a token of a kind that cannot appear
// where it was found. It implements InputError.
type TokenError struct {
	// Want is the list of token kinds that would have been accepted.
	Want []TokenKind
	// Got is the token that was found.
	Got Token
}

func (err *TokenError) Error() string {
	var b strings.Builder
	b.WriteString("expected ")
	for i, k := range err.Want {
		switch {
		case i == 0:
		case len(err.Want) == 2:
			b.WriteString(" or ")
		case i == len(err.Want)-1:
			b.WriteString(", or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(k.String())
	}
	b.WriteString(", got ")
	b.WriteString(err.Got.String())
	return errpos(err.Got.At, b.String())
}

func (err *TokenError) Position() Pos {
	return err.Got.At
}

func (err *TokenError) Unwrap() error {
	return ErrSyntax
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// At is the position of the unmatched bracket.
	At Pos
	// Left is "(" for an open bracket with no close bracket, or empty.
	Left string
	// Right is ")" for a close bracket with no open bracket, or empty.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.At, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.At, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Position() Pos {
	return err.At
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating a missing operand.
// It implements InputError.
type EmptyExpressionError struct {
	// At is the position of the token that ended the subexpression.
	At Pos
	// End is the kind of token that ended the subexpression.
	End TokenKind
}

func (err *EmptyExpressionError) Error() string {
	switch err.End {
	case TokenEOF, TokenNewline:
		return errpos(err.At, "no expression at end of line")
	default:
		return errpos(err.At, "no expression up to "+strconv.Quote(err.End.String()))
	}
}

func (err *EmptyExpressionError) Position() Pos {
	return err.At
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos Pos, msg string) string {
	return pos.String() + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid source text implements InputError.
type InputError interface {
	error
	// Position returns the position of the token that caused the error.
	Position() Pos
}

var (
	_ InputError = (*TokenError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
