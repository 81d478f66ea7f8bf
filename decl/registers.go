package decl

import (
	"fmt"
	"math"
)

const (
	NumInputs  = 8
	NumTemps   = 8
	NumOutputs = 4
)

// RegisterClass says where a register lives and whether programs may write it.
type RegisterClass int

const (
	InputReg RegisterClass = iota
	TempReg
	OutputReg
)

func (c RegisterClass) String() string {
	switch c {
	case InputReg:
		return "input"
	case TempReg:
		return "temporary"
	case OutputReg:
		return "output"
	}
	return "unknown"
}

func (c RegisterClass) prefix() string {
	switch c {
	case TempReg:
		return "t"
	case OutputReg:
		return "o"
	}
	return ""
}

func (c RegisterClass) size() int {
	switch c {
	case InputReg:
		return NumInputs
	case TempReg:
		return NumTemps
	case OutputReg:
		return NumOutputs
	}
	return 0
}

// Register identifies one scalar or vector slot.
type Register struct {
	Class RegisterClass
	Type  ValueType // ScalarType or VectorType
	Index int
}

// Writable is false for inputs.
func (r Register) Writable() bool { return r.Class != InputReg }

func (r Register) IsVector() bool { return r.Type == VectorType }

func (r Register) Name() string {
	base := byte('a')
	if r.Type == VectorType {
		base = 'A'
	}
	return r.Class.prefix() + string(rune(base+byte(r.Index)))
}

func (r Register) String() string { return r.Name() }

// ParseRegister maps a register name like "b", "tC" or "oa" to its Register.
func ParseRegister(name string) (Register, bool) {
	var class RegisterClass
	switch {
	case len(name) == 1:
		class = InputReg
	case len(name) == 2 && name[0] == 't':
		class = TempReg
		name = name[1:]
	case len(name) == 2 && name[0] == 'o':
		class = OutputReg
		name = name[1:]
	default:
		return Register{}, false
	}
	ch := name[0]
	reg := Register{Class: class}
	switch {
	case ch >= 'a' && ch <= 'z':
		reg.Type = ScalarType
		reg.Index = int(ch - 'a')
	case ch >= 'A' && ch <= 'Z':
		reg.Type = VectorType
		reg.Index = int(ch - 'A')
	default:
		return Register{}, false
	}
	if reg.Index >= class.size() {
		return Register{}, false
	}
	return reg, true
}

// MustRegister is ParseRegister for names known to be valid.
func MustRegister(name string) Register {
	r, ok := ParseRegister(name)
	if !ok {
		panic(fmt.Sprintf("invalid register name %q", name))
	}
	return r
}

// Registers lists every register of a class and type in index order.
func Registers(class RegisterClass, typ ValueType) []Register {
	out := make([]Register, class.size())
	for i := range out {
		out[i] = Register{Class: class, Type: typ, Index: i}
	}
	return out
}

// ClampComponent converts a scalar index to a vector component, truncating
// toward zero and clamping into 0..2. NaN selects component 0.
func ClampComponent(f float32) int {
	switch {
	case math.IsNaN(float64(f)), f < 1:
		return 0
	case f >= 2:
		return 2
	}
	return 1
}
