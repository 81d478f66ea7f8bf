package runtime

import (
	"fmt"

	"github.com/panyam/vecalc/decl"
)

// Registers is the storage an evaluator reads operands from and writes
// assignments to. Implementations need not be safe for concurrent use.
type Registers interface {
	ReadScalar(r decl.Register) float32
	ReadVector(r decl.Register) decl.Vec3
	WriteScalar(r decl.Register, value float32)
	WriteVector(r decl.Register, value decl.Vec3)
	// WriteComponent sets one component of a vector register.
	WriteComponent(r decl.Register, comp int, value float32)
}

// RegisterFile is the in memory register set used by the broadcast driver.
// Give each concurrent run its own RegisterFile.
type RegisterFile struct {
	ScalarInputs  [decl.NumInputs]float32
	VectorInputs  [decl.NumInputs]decl.Vec3
	ScalarTemps   [decl.NumTemps]float32
	VectorTemps   [decl.NumTemps]decl.Vec3
	ScalarOutputs [decl.NumOutputs]float32
	VectorOutputs [decl.NumOutputs]decl.Vec3
}

func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Reset zeroes temporaries and outputs. Inputs are left alone.
func (f *RegisterFile) Reset() {
	f.ScalarTemps = [decl.NumTemps]float32{}
	f.VectorTemps = [decl.NumTemps]decl.Vec3{}
	f.ScalarOutputs = [decl.NumOutputs]float32{}
	f.VectorOutputs = [decl.NumOutputs]decl.Vec3{}
}

func (f *RegisterFile) scalarSlot(r decl.Register) *float32 {
	switch r.Class {
	case decl.InputReg:
		return &f.ScalarInputs[r.Index]
	case decl.TempReg:
		return &f.ScalarTemps[r.Index]
	case decl.OutputReg:
		return &f.ScalarOutputs[r.Index]
	}
	panic(fmt.Sprintf("invalid register %v", r))
}

func (f *RegisterFile) vectorSlot(r decl.Register) *decl.Vec3 {
	switch r.Class {
	case decl.InputReg:
		return &f.VectorInputs[r.Index]
	case decl.TempReg:
		return &f.VectorTemps[r.Index]
	case decl.OutputReg:
		return &f.VectorOutputs[r.Index]
	}
	panic(fmt.Sprintf("invalid register %v", r))
}

func (f *RegisterFile) ReadScalar(r decl.Register) float32   { return *f.scalarSlot(r) }
func (f *RegisterFile) ReadVector(r decl.Register) decl.Vec3 { return *f.vectorSlot(r) }

func mustWritable(r decl.Register) {
	if !r.Writable() {
		panic(fmt.Sprintf("write to read-only register %s", r.Name()))
	}
}

func (f *RegisterFile) WriteScalar(r decl.Register, value float32) {
	mustWritable(r)
	*f.scalarSlot(r) = value
}

func (f *RegisterFile) WriteVector(r decl.Register, value decl.Vec3) {
	mustWritable(r)
	*f.vectorSlot(r) = value
}

func (f *RegisterFile) WriteComponent(r decl.Register, comp int, value float32) {
	mustWritable(r)
	f.vectorSlot(r)[comp] = value
}

// BindScalar sets an input register. Only the driver binds inputs.
func (f *RegisterFile) BindScalar(index int, value float32)   { f.ScalarInputs[index] = value }
func (f *RegisterFile) BindVector(index int, value decl.Vec3) { f.VectorInputs[index] = value }
