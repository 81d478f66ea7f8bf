package decl

import (
	"math/bits"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// Walk visits n and its children depth first in evaluation order. Returning
// false from visit skips the children of that node.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch n := n.(type) {
	case *IndexExpr:
		Walk(n.Index, visit)
	case *UnaryExpr:
		Walk(n.X, visit)
	case *BinaryExpr:
		Walk(n.X, visit)
		Walk(n.Y, visit)
	case *CallExpr:
		for _, a := range n.Args {
			Walk(a, visit)
		}
	case *CondExpr:
		Walk(n.Cond, visit)
		Walk(n.Then, visit)
		Walk(n.Else, visit)
	case *AssignStmt:
		Walk(n.Target, visit)
		Walk(n.Value, visit)
	case *SeqStmt:
		Walk(n.First, visit)
		Walk(n.Second, visit)
	}
}

// RegisterMask is a set of registers of one class. Bits 0..7 hold scalar
// registers and bits 8..15 vector registers.
type RegisterMask uint16

func maskBit(r Register) RegisterMask {
	if r.IsVector() {
		return 1 << (8 + r.Index)
	}
	return 1 << r.Index
}

func (m RegisterMask) Has(r Register) bool { return m&maskBit(r) != 0 }
func (m RegisterMask) Len() int            { return bits.OnesCount16(uint16(m)) }

func (m *RegisterMask) Add(r Register) { *m |= maskBit(r) }

// List returns the registers in the mask, scalars first, as class members.
func (m RegisterMask) List(class RegisterClass) (out []Register) {
	for _, typ := range []ValueType{ScalarType, VectorType} {
		for _, r := range Registers(class, typ) {
			if m.Has(r) {
				out = append(out, r)
			}
		}
	}
	return
}

// Usage records the inputs a program reads and the outputs it assigns.
type Usage struct {
	Inputs  RegisterMask
	Outputs RegisterMask
}

func (u Usage) UsesInput(r Register) bool      { return r.Class == InputReg && u.Inputs.Has(r) }
func (u Usage) ProducesOutput(r Register) bool { return r.Class == OutputReg && u.Outputs.Has(r) }

func (u Usage) String() string {
	names := func(rs []Register) string {
		return strings.Join(gfn.Map(rs, func(r Register) string { return r.Name() }), " ")
	}
	return "inputs: [" + names(u.Inputs.List(InputReg)) + "] outputs: [" + names(u.Outputs.List(OutputReg)) + "]"
}

// FindUsage walks every statement once. Inputs count wherever they appear,
// index expressions included. Outputs count only as assignment targets.
func FindUsage(stmts ...Stmt) (u Usage) {
	for _, stmt := range stmts {
		Walk(stmt, func(n Node) bool {
			switch n := n.(type) {
			case *AssignStmt:
				if r := n.TargetRegister(); r.Class == OutputReg {
					u.Outputs.Add(r)
				}
			case *RegisterExpr:
				if n.Register.Class == InputReg {
					u.Inputs.Add(n.Register)
				}
			case *ComponentExpr:
				if n.Register.Class == InputReg {
					u.Inputs.Add(n.Register)
				}
			case *IndexExpr:
				if n.Register.Class == InputReg {
					u.Inputs.Add(n.Register)
				}
			}
			return true
		})
	}
	return
}
