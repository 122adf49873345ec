package stackcalc

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// bytecodeVersion is the version of the encoded bytecode format.
const bytecodeVersion = 1

// cborEncMode uses canonical encoding so that equal bytecode always encodes
// to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("stackcalc: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type wireBytecode struct {
	Version uint        `cbor:"1,keyasint"`
	Code    []wireInstr `cbor:"2,keyasint"`
}

type wireInstr struct {
	Op   Opcode     `cbor:"1,keyasint"`
	Oper Operator   `cbor:"2,keyasint,omitempty"`
	Val  *wireValue `cbor:"3,keyasint,omitempty"`
}

// wireValue holds integers as sign and big-endian magnitude so that any
// precision survives encoding.
type wireValue struct {
	Float bool    `cbor:"1,keyasint,omitempty"`
	F     float64 `cbor:"2,keyasint,omitempty"`
	Neg   bool    `cbor:"3,keyasint,omitempty"`
	Mag   []byte  `cbor:"4,keyasint,omitempty"`
}

// MarshalBinary encodes code as CBOR.
func (code Bytecode) MarshalBinary() ([]byte, error) {
	w := wireBytecode{
		Version: bytecodeVersion,
		Code:    make([]wireInstr, len(code)),
	}
	for i, in := range code {
		w.Code[i] = wireInstr{Op: in.Op, Oper: in.Oper}
		if in.Op != OpPush {
			continue
		}
		v := &wireValue{Float: in.Val.float, F: in.Val.f}
		if !in.Val.float {
			x := in.Val.bigint()
			v.Neg = x.Sign() < 0
			v.Mag = x.Bytes()
		}
		w.Code[i].Val = v
	}
	return cborEncMode.Marshal(&w)
}

// UnmarshalBytecode decodes bytecode encoded by Bytecode.MarshalBinary.
func UnmarshalBytecode(data []byte) (Bytecode, error) {
	var w wireBytecode
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("stackcalc: unmarshal bytecode: %w", err)
	}
	if w.Version != bytecodeVersion {
		return nil, fmt.Errorf("stackcalc: unsupported bytecode version %d", w.Version)
	}
	code := make(Bytecode, len(w.Code))
	for i, in := range w.Code {
		code[i] = Instr{Op: in.Op, Oper: in.Oper}
		if in.Val == nil {
			continue
		}
		if in.Val.Float {
			code[i].Val = FloatValue(in.Val.F)
			continue
		}
		x := new(big.Int).SetBytes(in.Val.Mag)
		if in.Val.Neg {
			x.Neg(x)
		}
		code[i].Val = Value{i: x}
	}
	return code, nil
}
