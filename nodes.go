package stackcalc

import (
	"math/big"
	"strings"
)

// Node is a node in the abstract syntax tree of a program. The set of node
// types is closed: *Program, *ExprStatement, *IntLit, *FloatLit, *UnaryOp,
// and *BinOp.
type Node interface {
	node()
	// String formats the subtree on one line with every operation
	// parenthesized.
	String() string
}

// Expr is a node that computes a value.
type Expr interface {
	Node
	expr()
}

// Statement is a node that forms one line of a program.
type Statement interface {
	Node
	stmt()
}

// Program is a sequence of statements in source order.
type Program struct {
	Statements []Statement
}

// ExprStatement is a statement consisting of a single expression.
type ExprStatement struct {
	X Expr
}

// IntLit is an arbitrary-precision integer literal.
type IntLit struct {
	Value *big.Int
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
}

// UnaryOp applies a sign to its operand. Op is Add or Sub.
type UnaryOp struct {
	Op Operator
	X  Expr
}

// BinOp is a binary arithmetic operation.
type BinOp struct {
	Op          Operator
	Left, Right Expr
}

func (*Program) node()       {}
func (*ExprStatement) node() {}
func (*IntLit) node()        {}
func (*FloatLit) node()      {}
func (*UnaryOp) node()       {}
func (*BinOp) node()         {}

func (*ExprStatement) stmt() {}

func (*IntLit) expr()   {}
func (*FloatLit) expr() {}
func (*UnaryOp) expr()  {}
func (*BinOp) expr()    {}

// Operator is an arithmetic operator.
type Operator uint8

const (
	opNone Operator = iota
	Add
	Sub
	Mul
	Div
	Mod
	Pow
)

var opsyms = [...]string{
	opNone: "",
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Mod:    "%",
	Pow:    "**",
}

// String returns the operator as it is written in source.
func (op Operator) String() string {
	if int(op) >= len(opsyms) || op == opNone {
		return "?"
	}
	return opsyms[op]
}

func (p *Program) String() string {
	var b strings.Builder
	for i, s := range p.Statements {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmtnode(&b, s)
	}
	return b.String()
}

func (s *ExprStatement) String() string { return nodestr(s) }
func (n *IntLit) String() string        { return nodestr(n) }
func (n *FloatLit) String() string      { return nodestr(n) }
func (n *UnaryOp) String() string       { return nodestr(n) }
func (n *BinOp) String() string         { return nodestr(n) }

func nodestr(n Node) string {
	var b strings.Builder
	fmtnode(&b, n)
	return b.String()
}

func fmtnode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		b.WriteString(n.String())
	case *ExprStatement:
		fmtnode(b, n.X)
	case *IntLit:
		b.WriteString(n.Value.String())
	case *FloatLit:
		b.WriteString(formatFloat(n.Value))
	case *UnaryOp:
		b.WriteByte('(')
		b.WriteString(n.Op.String())
		fmtnode(b, n.X)
		b.WriteByte(')')
	case *BinOp:
		b.WriteByte('(')
		fmtnode(b, n.Left)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		fmtnode(b, n.Right)
		b.WriteByte(')')
	default:
		panic("stackcalc: invalid AST node after writing " + b.String())
	}
}

// Equal reports whether two trees have the same shape, operators, and
// literal values. Integer and float literals are never equal to each other.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Program:
		b, ok := b.(*Program)
		if !ok || len(a.Statements) != len(b.Statements) {
			return false
		}
		for i := range a.Statements {
			if !Equal(a.Statements[i], b.Statements[i]) {
				return false
			}
		}
		return true
	case *ExprStatement:
		b, ok := b.(*ExprStatement)
		return ok && Equal(a.X, b.X)
	case *IntLit:
		b, ok := b.(*IntLit)
		return ok && a.Value.Cmp(b.Value) == 0
	case *FloatLit:
		b, ok := b.(*FloatLit)
		return ok && a.Value == b.Value
	case *UnaryOp:
		b, ok := b.(*UnaryOp)
		return ok && a.Op == b.Op && Equal(a.X, b.X)
	case *BinOp:
		b, ok := b.(*BinOp)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case nil:
		return b == nil
	default:
		panic("stackcalc: invalid AST node")
	}
}
