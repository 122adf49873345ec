package stackcalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is a number on the machine stack. It is either an arbitrary-precision
// integer or a float64. The zero Value is the integer 0.
type Value struct {
	i     *big.Int
	f     float64
	float bool
}

// IntValue creates an integer value. The value holds a copy of x.
func IntValue(x *big.Int) Value {
	return Value{i: new(big.Int).Set(x)}
}

// Int64 creates an integer value from an int64.
func Int64(x int64) Value {
	return Value{i: big.NewInt(x)}
}

// FloatValue creates a float value.
func FloatValue(f float64) Value {
	return Value{f: f, float: true}
}

// IsFloat reports whether v is a float.
func (v Value) IsFloat() bool {
	return v.float
}

// Int returns a copy of the integer value of v. If v is a float, the result
// is nil.
func (v Value) Int() *big.Int {
	if v.float {
		return nil
	}
	return new(big.Int).Set(v.bigint())
}

// Float64 returns v as a float64. Integers are rounded to the nearest float64,
// which may be infinite.
func (v Value) Float64() float64 {
	if v.float {
		return v.f
	}
	f, _ := new(big.Float).SetInt(v.bigint()).Float64()
	return f
}

// Equal reports whether v and w have the same kind and value. Float NaNs are
// never equal.
func (v Value) Equal(w Value) bool {
	if v.float != w.float {
		return false
	}
	if v.float {
		return v.f == w.f
	}
	return v.bigint().Cmp(w.bigint()) == 0
}

func (v Value) String() string {
	if v.float {
		return formatFloat(v.f)
	}
	return v.bigint().String()
}

// bigint returns the integer value of v without copying.
func (v Value) bigint() *big.Int {
	if v.i == nil {
		return new(big.Int)
	}
	return v.i
}

// formatFloat formats f in its shortest round-trip form, always marking it as
// a float: 73 formats as 73.0.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
