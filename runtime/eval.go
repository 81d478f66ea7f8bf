package runtime

import (
	"fmt"
	"math"

	"github.com/panyam/vecalc/decl"
)

// Evaluator walks typed expression trees. It never fails on numeric input:
// every degenerate case has a fixed substitute. A node of the wrong sort
// for the Eval method called on it means the tree was not built by the
// parser, and panics.
type Evaluator struct {
	Rand RandSource
}

// NewEvaluator returns an evaluator using rng for rand(), or DefaultRand when rng is nil.
func NewEvaluator(rng RandSource) *Evaluator {
	if rng == nil {
		rng = DefaultRand
	}
	return &Evaluator{Rand: rng}
}

func (e *Evaluator) rand() RandSource {
	if e.Rand == nil {
		return DefaultRand
	}
	return e.Rand
}

// Exec runs a statement for its effect on regs.
func (e *Evaluator) Exec(stmt decl.Stmt, regs Registers) {
	switch s := stmt.(type) {
	case *decl.SeqStmt:
		e.Exec(s.First, regs)
		e.Exec(s.Second, regs)
	case *decl.AssignStmt:
		e.execAssign(s, regs)
	default:
		panic(fmt.Sprintf("Exec: unexpected statement %T", stmt))
	}
}

func (e *Evaluator) execAssign(s *decl.AssignStmt, regs Registers) {
	switch t := s.Target.(type) {
	case *decl.RegisterExpr:
		if t.Register.IsVector() {
			regs.WriteVector(t.Register, e.EvalVector(s.Value, regs))
		} else {
			regs.WriteScalar(t.Register, e.EvalScalar(s.Value, regs))
		}
	case *decl.ComponentExpr:
		regs.WriteComponent(t.Register, t.Index, e.EvalScalar(s.Value, regs))
	case *decl.IndexExpr:
		comp := decl.ClampComponent(e.EvalScalar(t.Index, regs))
		regs.WriteComponent(t.Register, comp, e.EvalScalar(s.Value, regs))
	default:
		panic(fmt.Sprintf("Exec: invalid assignment target %T", s.Target))
	}
}

// EvalScalar evaluates a scalar valued expression.
func (e *Evaluator) EvalScalar(expr decl.Expr, regs Registers) float32 {
	switch n := expr.(type) {
	case *decl.LiteralExpr:
		return n.Value
	case *decl.RegisterExpr:
		if !n.Register.IsVector() {
			return regs.ReadScalar(n.Register)
		}
	case *decl.ComponentExpr:
		return regs.ReadVector(n.Register)[n.Index]
	case *decl.IndexExpr:
		return regs.ReadVector(n.Register)[decl.ClampComponent(e.EvalScalar(n.Index, regs))]
	case *decl.UnaryExpr:
		if n.Op == decl.OpNeg {
			return -e.EvalScalar(n.X, regs)
		}
	case *decl.BinaryExpr:
		if n.Op.Result() == decl.ScalarType {
			return scalarBinary(n.Op, e.EvalScalar(n.X, regs), e.EvalScalar(n.Y, regs))
		}
	case *decl.CallExpr:
		return e.evalScalarCall(n, regs)
	case *decl.CondExpr:
		if e.EvalBool(n.Cond, regs) {
			return e.EvalScalar(n.Then, regs)
		}
		return e.EvalScalar(n.Else, regs)
	}
	panic(fmt.Sprintf("EvalScalar: unexpected %s expression %s", expr.Type(), expr))
}

func scalarBinary(op decl.Op, x, y float32) float32 {
	switch op {
	case decl.OpAdd:
		return x + y
	case decl.OpSub:
		return x - y
	case decl.OpMul:
		return x * y
	case decl.OpDiv:
		return safeDiv(x, y)
	case decl.OpMod:
		return safeFmod(x, y)
	case decl.OpPow:
		return safePow(x, y)
	case decl.OpAtan2:
		return safeAtan2(x, y)
	}
	panic(fmt.Sprintf("scalarBinary: unexpected op %s", op))
}

func (e *Evaluator) evalScalarCall(n *decl.CallExpr, regs Registers) float32 {
	switch n.Op {
	case decl.OpDot:
		return e.EvalVector(n.Args[0], regs).Dot(e.EvalVector(n.Args[1], regs))
	case decl.OpLength:
		return e.EvalVector(n.Args[0], regs).Length()
	case decl.OpAtan2, decl.OpPow, decl.OpMod:
		return scalarBinary(n.Op, e.EvalScalar(n.Args[0], regs), e.EvalScalar(n.Args[1], regs))
	}

	x := e.EvalScalar(n.Args[0], regs)
	switch n.Op {
	case decl.OpCos:
		return float32(math.Cos(f64(x)))
	case decl.OpSin:
		return float32(math.Sin(f64(x)))
	case decl.OpTan:
		return float32(math.Tan(f64(x)))
	case decl.OpAcos:
		return safeAcos(x)
	case decl.OpAsin:
		return safeAsin(x)
	case decl.OpAtan:
		return float32(math.Atan(f64(x)))
	case decl.OpCosh:
		return float32(math.Cosh(f64(x)))
	case decl.OpSinh:
		return float32(math.Sinh(f64(x)))
	case decl.OpTanh:
		return float32(math.Tanh(f64(x)))
	case decl.OpSqrt:
		return safeSqrt(x)
	case decl.OpExp:
		return float32(math.Exp(f64(x)))
	case decl.OpLog:
		return safeLog(x)
	case decl.OpLog10:
		return safeLog10(x)
	case decl.OpCeil:
		return float32(math.Ceil(f64(x)))
	case decl.OpFloor:
		return float32(math.Floor(f64(x)))
	case decl.OpAbs:
		return float32(math.Abs(f64(x)))
	case decl.OpRand:
		return e.rand().Float32() * x
	}
	panic(fmt.Sprintf("EvalScalar: unexpected call %s", n.Op))
}

// EvalVector evaluates a vector valued expression.
func (e *Evaluator) EvalVector(expr decl.Expr, regs Registers) decl.Vec3 {
	switch n := expr.(type) {
	case *decl.RegisterExpr:
		if n.Register.IsVector() {
			return regs.ReadVector(n.Register)
		}
	case *decl.UnaryExpr:
		if n.Op == decl.OpNegVec {
			return e.EvalVector(n.X, regs).Neg()
		}
	case *decl.BinaryExpr:
		return e.evalVectorBinary(n, regs)
	case *decl.CallExpr:
		switch n.Op {
		case decl.OpCross:
			return e.EvalVector(n.Args[0], regs).Cross(e.EvalVector(n.Args[1], regs))
		case decl.OpNormalize:
			return e.EvalVector(n.Args[0], regs).Normalize()
		case decl.OpVec3:
			return decl.Vec3{
				e.EvalScalar(n.Args[0], regs),
				e.EvalScalar(n.Args[1], regs),
				e.EvalScalar(n.Args[2], regs),
			}
		}
	case *decl.CondExpr:
		if e.EvalBool(n.Cond, regs) {
			return e.EvalVector(n.Then, regs)
		}
		return e.EvalVector(n.Else, regs)
	}
	panic(fmt.Sprintf("EvalVector: unexpected %s expression %s", expr.Type(), expr))
}

func (e *Evaluator) evalVectorBinary(n *decl.BinaryExpr, regs Registers) decl.Vec3 {
	x := e.EvalVector(n.X, regs)
	switch n.Op {
	case decl.OpAddVec:
		return x.Add(e.EvalVector(n.Y, regs))
	case decl.OpSubVec:
		return x.Sub(e.EvalVector(n.Y, regs))
	case decl.OpMulVec:
		return x.Mul(e.EvalVector(n.Y, regs))
	case decl.OpScaleVec:
		return x.Scale(e.EvalScalar(n.Y, regs))
	case decl.OpDivVec:
		return safeDivVec(x, e.EvalScalar(n.Y, regs))
	}
	panic(fmt.Sprintf("EvalVector: unexpected op %s", n.Op))
}

// EvalBool evaluates a boolean expression. && and || short circuit.
func (e *Evaluator) EvalBool(expr decl.Expr, regs Registers) bool {
	switch n := expr.(type) {
	case *decl.UnaryExpr:
		switch n.Op {
		case decl.OpNot:
			return !e.EvalBool(n.X, regs)
		case decl.OpTestScalar:
			return e.EvalScalar(n.X, regs) != 0
		case decl.OpTestVec:
			return !e.EvalVector(n.X, regs).IsZero()
		}
	case *decl.BinaryExpr:
		return e.evalBoolBinary(n, regs)
	}
	panic(fmt.Sprintf("EvalBool: unexpected %s expression %s", expr.Type(), expr))
}

func (e *Evaluator) evalBoolBinary(n *decl.BinaryExpr, regs Registers) bool {
	switch n.Op {
	case decl.OpAnd:
		return e.EvalBool(n.X, regs) && e.EvalBool(n.Y, regs)
	case decl.OpOr:
		return e.EvalBool(n.X, regs) || e.EvalBool(n.Y, regs)
	case decl.OpEQVec:
		return e.EvalVector(n.X, regs) == e.EvalVector(n.Y, regs)
	case decl.OpNEVec:
		return e.EvalVector(n.X, regs) != e.EvalVector(n.Y, regs)
	}

	x, y := e.EvalScalar(n.X, regs), e.EvalScalar(n.Y, regs)
	switch n.Op {
	case decl.OpLT:
		return x < y
	case decl.OpGT:
		return x > y
	case decl.OpLE:
		return x <= y
	case decl.OpGE:
		return x >= y
	case decl.OpEQ:
		return x == y
	case decl.OpNE:
		return x != y
	}
	panic(fmt.Sprintf("EvalBool: unexpected op %s", n.Op))
}

// Value evaluates any expression to a printable value, used by tooling
// that works on bare expressions.
func (e *Evaluator) Value(expr decl.Expr, regs Registers) any {
	switch expr.Type() {
	case decl.VectorType:
		return e.EvalVector(expr, regs)
	case decl.BoolType:
		return e.EvalBool(expr, regs)
	}
	return e.EvalScalar(expr, regs)
}
