package runtime

import (
	"fmt"

	"github.com/panyam/vecalc/decl"
)

// Inputs holds one value array per input register.
type Inputs struct {
	Scalars [decl.NumInputs][]float32
	Vectors [decl.NumInputs][]decl.Vec3
}

func inputRegister(name string, typ decl.ValueType) (decl.Register, error) {
	reg, ok := decl.ParseRegister(name)
	if !ok || reg.Class != decl.InputReg {
		return reg, fmt.Errorf("%w: '%s' is not an input register", ErrUnknownRegister, name)
	}
	if reg.Type != typ {
		return reg, fmt.Errorf("%w: '%s' is a %s register", ErrRegisterType, name, reg.Type)
	}
	return reg, nil
}

// SetScalar sets the values of the scalar input register called name.
func (in *Inputs) SetScalar(name string, values ...float32) error {
	reg, err := inputRegister(name, decl.ScalarType)
	if err != nil {
		return err
	}
	in.Scalars[reg.Index] = values
	return nil
}

// SetVector sets the values of the vector input register called name.
func (in *Inputs) SetVector(name string, values ...decl.Vec3) error {
	reg, err := inputRegister(name, decl.VectorType)
	if err != nil {
		return err
	}
	in.Vectors[reg.Index] = values
	return nil
}

// Len is the number of values bound to an input register.
func (in *Inputs) Len(r decl.Register) int {
	if r.IsVector() {
		return len(in.Vectors[r.Index])
	}
	return len(in.Scalars[r.Index])
}

// Outputs holds the arrays produced by a run. Outputs the program never
// assigns stay nil.
type Outputs struct {
	Length  int
	Scalars [decl.NumOutputs][]float32
	Vectors [decl.NumOutputs][]decl.Vec3
}

// Scalar returns the values of the scalar output called name, nil when it
// was not produced.
func (o *Outputs) Scalar(name string) []float32 {
	reg, ok := decl.ParseRegister(name)
	if !ok || reg.Class != decl.OutputReg || reg.IsVector() {
		return nil
	}
	return o.Scalars[reg.Index]
}

// Vector returns the values of the vector output called name, nil when it
// was not produced.
func (o *Outputs) Vector(name string) []decl.Vec3 {
	reg, ok := decl.ParseRegister(name)
	if !ok || reg.Class != decl.OutputReg || !reg.IsVector() {
		return nil
	}
	return o.Vectors[reg.Index]
}

// Driver runs a program once per element of its longest used input.
type Driver struct {
	Eval *Evaluator

	// Optional. Records every register write when set.
	Tracer *ExecutionTracer
}

func NewDriver(eval *Evaluator) *Driver {
	if eval == nil {
		eval = NewEvaluator(nil)
	}
	return &Driver{Eval: eval}
}

// BroadcastLength is the longest input array the program reads. It is never
// less than 1, so a program with no inputs, or only empty ones, runs once.
func BroadcastLength(prog *decl.Program, in *Inputs) int {
	n := 1
	for _, reg := range prog.Usage.Inputs.List(decl.InputReg) {
		n = max(n, in.Len(reg))
	}
	return n
}

// Run evaluates prog over in with the default driver.
func Run(prog *decl.Program, regs *RegisterFile, in Inputs) Outputs {
	return NewDriver(nil).Run(prog, regs, in)
}

// Run evaluates every statement of prog once per broadcast index. Shorter
// inputs hold their last value and empty ones read as zero. Temporaries and
// outputs are zeroed before each index. A nil regs gets a fresh RegisterFile.
func (d *Driver) Run(prog *decl.Program, regs *RegisterFile, in Inputs) (out Outputs) {
	if prog.IsEmpty() {
		return
	}
	if regs == nil {
		regs = NewRegisterFile()
	}
	usage := prog.Usage
	inputs := usage.Inputs.List(decl.InputReg)
	outputs := usage.Outputs.List(decl.OutputReg)

	n := BroadcastLength(prog, &in)
	out.Length = n
	for _, r := range outputs {
		if r.IsVector() {
			out.Vectors[r.Index] = make([]decl.Vec3, n)
		} else {
			out.Scalars[r.Index] = make([]float32, n)
		}
	}
	Debug("running %d statement(s) over %d element(s); %s", len(prog.Statements), n, usage)

	var target Registers = regs
	var tracing *tracingRegisters
	if d.Tracer != nil {
		tracing = &tracingRegisters{Registers: regs, tracer: d.Tracer}
		target = tracing
	}

	for i := range n {
		regs.Reset()
		for _, r := range inputs {
			bindInput(regs, r, &in, i)
		}
		if tracing != nil {
			tracing.index = i
			d.Tracer.Enter(i)
		}
		for _, stmt := range prog.Statements {
			d.Eval.Exec(stmt, target)
		}
		if tracing != nil {
			d.Tracer.Exit()
		}
		for _, r := range outputs {
			if r.IsVector() {
				out.Vectors[r.Index][i] = regs.ReadVector(r)
			} else {
				out.Scalars[r.Index][i] = regs.ReadScalar(r)
			}
		}
	}
	return
}

func bindInput(regs *RegisterFile, r decl.Register, in *Inputs, i int) {
	if r.IsVector() {
		var v decl.Vec3
		if vals := in.Vectors[r.Index]; len(vals) > 0 {
			v = vals[min(i, len(vals)-1)]
		}
		regs.BindVector(r.Index, v)
		return
	}
	var s float32
	if vals := in.Scalars[r.Index]; len(vals) > 0 {
		s = vals[min(i, len(vals)-1)]
	}
	regs.BindScalar(r.Index, s)
}
