package stackcalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Machine executes bytecode against a value stack. It is not safe to use a
// Machine concurrently.
type Machine struct {
	stack   []Value
	ip      int
	last    Value
	popped  bool
	results []Value

	limit    int
	logf     func(mess string, args ...interface{})
	onResult func(Value)
}

// MachineOption is an option used when creating a machine.
type MachineOption interface {
	machineOption()
}

type (
	logopt    func(mess string, args ...interface{})
	limitopt  int
	resultopt func(Value)
)

func (logopt) machineOption()    {}
func (limitopt) machineOption()  {}
func (resultopt) machineOption() {}

// WithLogf traces each executed instruction and each statement result through
// logfn.
func WithLogf(logfn func(mess string, args ...interface{})) MachineOption {
	return logopt(logfn)
}

// StackLimit bounds the number of values on the stack. Pushing beyond the
// limit fails with a MachineError. A limit of zero or less means no limit.
func StackLimit(n int) MachineOption {
	return limitopt(n)
}

// OnResult sets a function to call with the result of each statement as it is
// popped.
func OnResult(f func(Value)) MachineOption {
	return resultopt(f)
}

// NewMachine creates a machine with an empty stack.
func NewMachine(opts ...MachineOption) *Machine {
	var m Machine
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case logopt:
			m.logf = opt
		case limitopt:
			m.limit = int(opt)
		case resultopt:
			m.onResult = opt
		default:
			panic("stackcalc: unknown option type")
		}
	}
	return &m
}

// Run executes code from its first instruction to its last. The stack and
// results persist across calls, so a machine can run a program in pieces.
// The first error stops execution; IP then reports the failed instruction.
func (m *Machine) Run(code Bytecode) error {
	for m.ip = 0; m.ip < len(code); m.ip++ {
		in := code[m.ip]
		if err := m.step(in); err != nil {
			var ae *ArithmeticError
			var me *MachineError
			switch {
			case errors.As(err, &ae):
				ae.IP = m.ip
			case errors.As(err, &me):
				me.IP = m.ip
				me.Instr = in
			}
			m.trace("! %v", err)
			return err
		}
	}
	return nil
}

// step executes a single instruction.
func (m *Machine) step(in Instr) error {
	m.trace("%4d %-12v %v", m.ip, in, stackString(m.stack))
	switch in.Op {
	case OpPush:
		return m.push(in.Val)
	case OpPop:
		v, err := m.pop()
		if err != nil {
			return err
		}
		m.last, m.popped = v, true
		m.results = append(m.results, v)
		m.trace("= %v", v)
		if m.onResult != nil {
			m.onResult(v)
		}
		return nil
	case OpBinop:
		r, err := m.pop()
		if err != nil {
			return err
		}
		l, err := m.pop()
		if err != nil {
			return err
		}
		v, err := binary(in.Oper, l, r)
		if err != nil {
			return err
		}
		return m.push(v)
	case OpUnaryop:
		x, err := m.pop()
		if err != nil {
			return err
		}
		v, err := unary(in.Oper, x)
		if err != nil {
			return err
		}
		return m.push(v)
	default:
		return &MachineError{Reason: "invalid opcode " + in.Op.String()}
	}
}

func (m *Machine) push(v Value) error {
	if m.limit > 0 && len(m.stack) >= m.limit {
		return &MachineError{Reason: "stack overflow"}
	}
	m.stack = append(m.stack, v)
	return nil
}

func (m *Machine) pop() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, &MachineError{Reason: "stack underflow"}
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) trace(mess string, args ...interface{}) {
	if m.logf == nil {
		return
	}
	m.logf(mess, args...)
}

// Last returns the most recently popped statement result. The boolean is false
// if no statement has completed.
func (m *Machine) Last() (Value, bool) {
	return m.last, m.popped
}

// Results returns the result of every completed statement in order.
func (m *Machine) Results() []Value {
	return append([]Value(nil), m.results...)
}

// Stack returns a copy of the stack, bottom first.
func (m *Machine) Stack() []Value {
	return append([]Value(nil), m.stack...)
}

// IP returns the index of the instruction being executed, which is the length
// of the code after a successful Run.
func (m *Machine) IP() int {
	return m.ip
}

func stackString(stack []Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range stack {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Interpret runs code on a new machine. The machine is returned even if there
// is an error, holding the state at the failed instruction.
func Interpret(code Bytecode, opts ...MachineOption) (*Machine, error) {
	m := NewMachine(opts...)
	err := m.Run(code)
	return m, err
}

// Eval is a shortcut to parse, compile, and run a program, returning the
// result of each statement.
func Eval(src io.RuneScanner, opts ...MachineOption) ([]Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	m, err := Interpret(Compile(prog), opts...)
	if err != nil {
		return nil, err
	}
	return m.Results(), nil
}

// EvalString is a shortcut to evaluate a program in a string.
func EvalString(src string, opts ...MachineOption) ([]Value, error) {
	return Eval(strings.NewReader(src), opts...)
}

// ArithmeticError is an error from an arithmetic operation, e.g. division by
// zero. It unwraps to ErrArithmetic.
type ArithmeticError struct {
	// IP is the index of the instruction that failed.
	IP int
	// Op is the operator that failed.
	Op Operator
	// X and Y are the left and right operands.
	X, Y Value
	// Reason describes the failure.
	Reason string
}

func (err *ArithmeticError) Error() string {
	return err.X.String() + " " + err.Op.String() + " " + err.Y.String() + ": " + err.Reason
}

func (err *ArithmeticError) Unwrap() error {
	return ErrArithmetic
}

// MachineError is an error indicating bytecode the machine cannot execute,
// such as an unknown opcode or operator or a stack underflow. Bytecode from
// Compile never causes a MachineError except through StackLimit. It unwraps
// to ErrArithmetic.
type MachineError struct {
	// IP is the index of the instruction that failed.
	IP int
	// Instr is the instruction that failed.
	Instr Instr
	// Reason describes the failure.
	Reason string
}

func (err *MachineError) Error() string {
	return "instruction " + strconv.Itoa(err.IP) + " (" + err.Instr.String() + "): " + err.Reason
}

func (err *MachineError) Unwrap() error {
	return ErrArithmetic
}
