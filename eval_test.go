package stackcalc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/stackcalc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		r     string
		float bool
	}{
		{"int", "1", "1", false},
		{"float", "1.5", "1.5", true},
		{"trailing-dot", "73.", "73.0", true},
		{"add", "4+5+6", "15", false},
		{"sub-add", "3-5+1", "-1", false},
		{"sub", "4-5-6", "-7", false},
		{"mul", "4*5*6", "120", false},
		{"div", "1/2", "0.5", true},
		{"div-exact", "6/3", "2.0", true},
		{"div-chain", "8/2/2", "2.0", true},
		{"mod", "7%3", "1", false},
		{"mod-neg-divisor", "4%-3", "1", false},
		{"mod-neg-dividend", "-7%3", "-1", false},
		{"mod-float", "7.5%2", "1.5", true},
		{"pow", "2**10", "1024", false},
		{"pow-right", "2**3**2", "512", false},
		{"neg-pow", "-2**2", "-4", false},
		{"paren-neg-pow", "(-2)**2", "4", false},
		{"pow-neg", "2**-1", "0.5", true},
		{"pow-neg-pow", "2**-1**2", "0.5", true},
		{"pow-zero", "0**0", "1", false},
		{"pow-float", "4**0.5", "2.0", true},
		{"pow-float-int", "2.0**3", "8.0", true},
		{"neg-base-int-float", "(-8)**2.0", "64.0", true},
		{"unary", "--++3.5 - 2", "1.5", true},
		{"neg-float", "-0.25", "-0.25", true},
		{"promote-add", "1 + 2.0", "3.0", true},
		{"promote-mul", "3 * 0.5", "1.5", true},
		{"precedence", "1 + 2 * 3 - 4", "3", false},
		{"paren", "(1 + 2) * 3", "9", false},
		{"nested", "((2 + 3) * (4 - 1)) % 7", "1", false},
		{"big", "2**100", "1267650600228229401496703205376", false},
		{"big-literal", "123456789012345678901234567890 + 1", "123456789012345678901234567891", false},
		{"big-div", "2**100 / 2**99", "2.0", true},
		{"big-pow-float", "(10**400)**0.0025", "10.0", true},
		{"small", "0.1 + 0.2", "0.30000000000000004", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := stackcalc.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", c.src, err)
			}
			if len(r) != 1 {
				t.Fatalf("%q: want 1 result, got %v", c.src, r)
			}
			if got := r[0].String(); got != c.r {
				t.Errorf("%q: want %s, got %s", c.src, c.r, got)
			}
			if r[0].IsFloat() != c.float {
				t.Errorf("%q: want float %t, got %v", c.src, c.float, r[0])
			}
		})
	}
}

func TestEvalProgram(t *testing.T) {
	src := "1 + 1\n\n2 * 3.0\n-(4 ** 2)\n7 % 4"
	r, err := stackcalc.EvalString(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2", "6.0", "-16", "3"}
	if len(r) != len(want) {
		t.Fatalf("want %v, got %v", want, r)
	}
	for i, v := range r {
		if v.String() != want[i] {
			t.Errorf("result %d: want %s, got %v", i, want[i], v)
		}
	}
}

func TestEvalEmpty(t *testing.T) {
	r, err := stackcalc.EvalString("\n\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(r) != 0 {
		t.Errorf("want no results, got %v", r)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
	}{
		{"lex", "1 + $", stackcalc.ErrLexical},
		{"lex-letter", "x", stackcalc.ErrLexical},
		{"syntax", "1 +", stackcalc.ErrSyntax},
		{"bracket", "(1 + 2", stackcalc.ErrSyntax},
		{"div-zero", "1/0", stackcalc.ErrArithmetic},
		{"mod-zero", "1%0", stackcalc.ErrArithmetic},
		{"div-zero-float", "1/0.0", stackcalc.ErrArithmetic},
		{"div-zero-expr", "1/(2-2)", stackcalc.ErrArithmetic},
		{"zero-neg-pow", "0**-1", stackcalc.ErrArithmetic},
		{"neg-frac-pow", "(-8)**0.5", stackcalc.ErrArithmetic},
		{"pow-overflow", "10.0**400", stackcalc.ErrArithmetic},
		{"later-statement", "1\n2/0\n", stackcalc.ErrArithmetic},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := stackcalc.EvalString(c.src)
			if !errors.Is(err, c.kind) {
				t.Errorf("%q: want %v, got %v (results %v)", c.src, c.kind, err, r)
			}
		})
	}
}

func TestDivisionByZeroIsRuntime(t *testing.T) {
	// Parsing and compiling succeed; only execution fails.
	prog, err := stackcalc.ParseString("1 + 1\n1/0\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	code := stackcalc.Compile(prog)
	m, err := stackcalc.Interpret(code)
	var ae *stackcalc.ArithmeticError
	if !errors.As(err, &ae) {
		t.Fatalf("want ArithmeticError, got %#v", err)
	}
	if code[ae.IP].Op != stackcalc.OpBinop || code[ae.IP].Oper != stackcalc.Div {
		t.Errorf("error at wrong instruction %d: %v", ae.IP, code[ae.IP])
	}
	if !strings.Contains(ae.Error(), "division by zero") {
		t.Errorf("unhelpful message %q", ae.Error())
	}
	if r := m.Results(); len(r) != 1 || r[0].String() != "2" {
		t.Errorf("first statement should have completed, got %v", r)
	}
}

func TestEvalStackEmpty(t *testing.T) {
	srcs := []string{
		"1",
		"1 + 2 * 3",
		"-(1 - 2) ** 3 % 5\n4 / 2\n",
		"((((((1))))))",
	}
	for _, src := range srcs {
		prog, err := stackcalc.ParseString(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		m, err := stackcalc.Interpret(stackcalc.Compile(prog))
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if s := m.Stack(); len(s) != 0 {
			t.Errorf("%q left %v on the stack", src, s)
		}
		if len(m.Results()) != len(prog.Statements) {
			t.Errorf("%q: %d results for %d statements", src, len(m.Results()), len(prog.Statements))
		}
	}
}

func TestEvalOptions(t *testing.T) {
	var got []string
	_, err := stackcalc.EvalString("1\n2\n", stackcalc.OnResult(func(v stackcalc.Value) {
		got = append(got, v.String())
	}))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, " ") != "1 2" {
		t.Errorf("OnResult saw %v", got)
	}

	_, err = stackcalc.EvalString("1 + (2 + (3 + 4))", stackcalc.StackLimit(2))
	var me *stackcalc.MachineError
	if !errors.As(err, &me) {
		t.Errorf("want stack overflow, got %v", err)
	}
}
