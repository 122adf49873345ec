package stackcalc

import (
	"bufio"
	"io"
	"strings"
)

// Fprint writes a tree to w as nested, indented text, one node per line:
//
//	Program
//	    ExprStatement
//	        BinOp +
//	            Int 1
//	            Float 2.5
func Fprint(w io.Writer, n Node) error {
	b := bufio.NewWriter(w)
	dump(b, n, 0)
	return b.Flush()
}

func dump(b *bufio.Writer, n Node, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
	switch n := n.(type) {
	case *Program:
		b.WriteString("Program\n")
		for _, s := range n.Statements {
			dump(b, s, depth+1)
		}
	case *ExprStatement:
		b.WriteString("ExprStatement\n")
		dump(b, n.X, depth+1)
	case *IntLit:
		b.WriteString("Int ")
		b.WriteString(n.Value.String())
		b.WriteByte('\n')
	case *FloatLit:
		b.WriteString("Float ")
		b.WriteString(formatFloat(n.Value))
		b.WriteByte('\n')
	case *UnaryOp:
		b.WriteString("UnaryOp ")
		b.WriteString(n.Op.String())
		b.WriteByte('\n')
		dump(b, n.X, depth+1)
	case *BinOp:
		b.WriteString("BinOp ")
		b.WriteString(n.Op.String())
		b.WriteByte('\n')
		dump(b, n.Left, depth+1)
		dump(b, n.Right, depth+1)
	default:
		panic("stackcalc: cannot print invalid AST node")
	}
}
