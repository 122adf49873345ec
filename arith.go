package stackcalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// bigPowPrec is the precision used to raise integers too large for a float64
// to a float power.
const bigPowPrec = 128

// binary applies a binary operator. Two integers give an integer except for
// division and exponentiation by a negative integer, which give floats. If
// either operand is a float, the result is a float.
func binary(op Operator, x, y Value) (Value, error) {
	if !x.float && !y.float {
		return intBinary(op, x, y)
	}
	if op == Pow && !x.float {
		if a := x.Float64(); math.IsInf(a, 0) {
			return bigPow(x, y)
		}
	}
	a, b := x.Float64(), y.Float64()
	if math.IsInf(a, 0) && !x.float || math.IsInf(b, 0) && !y.float {
		return Value{}, arithErr(op, x, y, "integer too large to convert to float")
	}
	switch op {
	case Add:
		return FloatValue(a + b), nil
	case Sub:
		return FloatValue(a - b), nil
	case Mul:
		return FloatValue(a * b), nil
	case Div:
		if b == 0 {
			return Value{}, arithErr(op, x, y, "division by zero")
		}
		return FloatValue(a / b), nil
	case Mod:
		if b == 0 {
			return Value{}, arithErr(op, x, y, "modulo by zero")
		}
		return FloatValue(math.Mod(a, b)), nil
	case Pow:
		switch {
		case a == 0 && b < 0:
			return Value{}, arithErr(op, x, y, "zero to a negative power")
		case a < 0 && !math.IsInf(b, 0) && b != math.Trunc(b):
			return Value{}, arithErr(op, x, y, "negative number to a fractional power")
		}
		r := math.Pow(a, b)
		if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
			return Value{}, arithErr(op, x, y, "result out of range")
		}
		return FloatValue(r), nil
	default:
		return Value{}, &MachineError{Reason: "invalid binary operator " + op.String()}
	}
}

func intBinary(op Operator, x, y Value) (Value, error) {
	a, b := x.bigint(), y.bigint()
	switch op {
	case Add:
		return Value{i: new(big.Int).Add(a, b)}, nil
	case Sub:
		return Value{i: new(big.Int).Sub(a, b)}, nil
	case Mul:
		return Value{i: new(big.Int).Mul(a, b)}, nil
	case Div:
		if b.Sign() == 0 {
			return Value{}, arithErr(op, x, y, "division by zero")
		}
		return ratio(op, x, y, new(big.Rat).SetFrac(a, b))
	case Mod:
		if b.Sign() == 0 {
			return Value{}, arithErr(op, x, y, "modulo by zero")
		}
		// Rem truncates, so the sign of the result follows the dividend.
		return Value{i: new(big.Int).Rem(a, b)}, nil
	case Pow:
		if b.Sign() >= 0 {
			return Value{i: new(big.Int).Exp(a, b, nil)}, nil
		}
		if a.Sign() == 0 {
			return Value{}, arithErr(op, x, y, "zero to a negative power")
		}
		d := new(big.Int).Exp(a, new(big.Int).Neg(b), nil)
		return ratio(op, x, y, new(big.Rat).SetFrac(big.NewInt(1), d))
	default:
		return Value{}, &MachineError{Reason: "invalid binary operator " + op.String()}
	}
}

// ratio rounds an exact quotient to a float value.
func ratio(op Operator, x, y Value, q *big.Rat) (Value, error) {
	f, _ := q.Float64()
	if math.IsInf(f, 0) {
		return Value{}, arithErr(op, x, y, "result too large for a float")
	}
	return FloatValue(f), nil
}

// bigPow raises an integer too large for a float64 to a float power.
func bigPow(x, y Value) (Value, error) {
	b := y.f
	switch {
	case math.IsNaN(b):
		return FloatValue(b), nil
	case x.bigint().Sign() < 0:
		return Value{}, arithErr(Pow, x, y, "integer too large to convert to float")
	case b == 0:
		return FloatValue(1), nil
	case math.IsInf(b, 1):
		return Value{}, arithErr(Pow, x, y, "result out of range")
	case math.IsInf(b, -1):
		return FloatValue(0), nil
	}
	z := new(big.Float).SetPrec(bigPowPrec).SetInt(x.bigint())
	e := new(big.Float).SetPrec(bigPowPrec).SetFloat64(b)
	bigfloat.Pow(z, z, e)
	r, _ := z.Float64()
	if math.IsInf(r, 0) {
		return Value{}, arithErr(Pow, x, y, "result out of range")
	}
	return FloatValue(r), nil
}

// unary applies a sign operator. Negation keeps the kind of its operand.
func unary(op Operator, x Value) (Value, error) {
	switch op {
	case Add:
		return x, nil
	case Sub:
		if x.float {
			return FloatValue(-x.f), nil
		}
		return Value{i: new(big.Int).Neg(x.bigint())}, nil
	default:
		return Value{}, &MachineError{Reason: "invalid unary operator " + op.String()}
	}
}

func arithErr(op Operator, x, y Value, reason string) error {
	return &ArithmeticError{Op: op, X: x, Y: y, Reason: reason}
}
