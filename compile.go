package stackcalc

import (
	"strconv"
	"strings"
)

// Opcode is a stack machine instruction type.
type Opcode uint8

const (
	OpNone Opcode = iota // NONE
	// OpPush pushes Instr.Val.
	OpPush // PUSH
	// OpPop pops the result of a statement.
	OpPop // POP
	// OpBinop pops the right then left operands and pushes
	// left Instr.Oper right.
	OpBinop // BINOP
	// OpUnaryop pops an operand and pushes Instr.Oper applied to it.
	OpUnaryop // UNARYOP
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Opcode -linecomment

// Instr is a single stack machine instruction.
type Instr struct {
	Op Opcode
	// Val is the operand of a PUSH.
	Val Value
	// Oper is the operator of a BINOP or UNARYOP.
	Oper Operator
}

func (in Instr) String() string {
	switch in.Op {
	case OpPush:
		return in.Op.String() + " " + in.Val.String()
	case OpBinop, OpUnaryop:
		return in.Op.String() + " " + in.Oper.String()
	default:
		return in.Op.String()
	}
}

// Bytecode is a straight-line sequence of instructions.
type Bytecode []Instr

// String lists the instructions one per line, each prefixed by its index.
func (code Bytecode) String() string {
	var b strings.Builder
	w := len(strconv.Itoa(len(code) - 1))
	for i, in := range code {
		s := strconv.Itoa(i)
		b.WriteString(strings.Repeat(" ", w-len(s)))
		b.WriteString(s)
		b.WriteByte(' ')
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Compile lowers a tree to bytecode by post-order traversal. Each statement
// ends with a POP of its value. Compile trusts the tree to be well-formed and
// panics on a nil or unknown node.
func Compile(n Node) Bytecode {
	return compile(nil, n)
}

func compile(code Bytecode, n Node) Bytecode {
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Statements {
			code = compile(code, s)
		}
	case *ExprStatement:
		code = compile(code, n.X)
		code = append(code, Instr{Op: OpPop})
	case *IntLit:
		code = append(code, Instr{Op: OpPush, Val: IntValue(n.Value)})
	case *FloatLit:
		code = append(code, Instr{Op: OpPush, Val: FloatValue(n.Value)})
	case *UnaryOp:
		code = compile(code, n.X)
		code = append(code, Instr{Op: OpUnaryop, Oper: n.Op})
	case *BinOp:
		code = compile(code, n.Left)
		code = compile(code, n.Right)
		code = append(code, Instr{Op: OpBinop, Oper: n.Op})
	default:
		panic("stackcalc: cannot compile invalid AST node")
	}
	return code
}
