package decl

import (
	"fmt"
	"strconv"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// LiteralExpr is a numeric constant. Named constants keep their name so
// they print the way they were written.
type LiteralExpr struct {
	ExprBase
	Value float32
	Name  string
}

func (e *LiteralExpr) Type() ValueType { return ScalarType }

func (e *LiteralExpr) String() string {
	if e.Name != "" {
		return e.Name
	}
	return FormatFloat(e.Value)
}

func (e *LiteralExpr) PrettyPrint(cp CodePrinter) {
	if e.Name != "" {
		cp.Printf("Const %s (%s)\n", e.Name, FormatFloat(e.Value))
	} else {
		cp.Printf("Literal %s\n", FormatFloat(e.Value))
	}
}

// FormatFloat renders a float32 with the fewest digits that read back exactly.
func FormatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// RegisterExpr reads a whole scalar or vector register.
type RegisterExpr struct {
	ExprBase
	Register Register
}

func (e *RegisterExpr) Type() ValueType { return e.Register.Type }
func (e *RegisterExpr) String() string  { return e.Register.Name() }

func (e *RegisterExpr) PrettyPrint(cp CodePrinter) {
	cp.Printf("Reg %s\n", e.Register.Name())
}

// ComponentExpr reads one fixed component of a vector register.
type ComponentExpr struct {
	ExprBase
	Register Register
	Index    int
}

// NewComponentExpr panics unless reg is a vector register and index is 0, 1 or 2.
func NewComponentExpr(reg Register, index int) *ComponentExpr {
	if !reg.IsVector() {
		panic(fmt.Sprintf("component of scalar register %s", reg.Name()))
	}
	if index < 0 || index > 2 {
		panic(fmt.Sprintf("component index %d out of range for %s", index, reg.Name()))
	}
	return &ComponentExpr{Register: reg, Index: index}
}

func (e *ComponentExpr) Type() ValueType { return ScalarType }
func (e *ComponentExpr) String() string  { return fmt.Sprintf("%s[%d]", e.Register.Name(), e.Index) }

func (e *ComponentExpr) PrettyPrint(cp CodePrinter) {
	cp.Printf("Component %s[%d]\n", e.Register.Name(), e.Index)
}

// IndexExpr reads the component of a vector register selected by a scalar
// expression. The index is truncated and clamped to 0..2 when evaluated.
type IndexExpr struct {
	ExprBase
	Register Register
	Index    Expr
}

func (e *IndexExpr) Type() ValueType { return ScalarType }
func (e *IndexExpr) String() string  { return fmt.Sprintf("%s[%s]", e.Register.Name(), e.Index) }

func (e *IndexExpr) PrettyPrint(cp CodePrinter) {
	cp.Printf("Index %s\n", e.Register.Name())
	WithIndent(1, cp, e.Index.PrettyPrint)
}

// UnaryExpr is negation, logical not or an implicit truth test.
type UnaryExpr struct {
	ExprBase
	Op Op
	X  Expr
}

func (e *UnaryExpr) Type() ValueType { return e.Op.Result() }

// Implicit truth tests print as their operand.
func (e *UnaryExpr) String() string {
	switch e.Op {
	case OpTestScalar, OpTestVec:
		return e.X.String()
	}
	return fmt.Sprintf("(%s%s)", e.Op.Info().Symbol, e.X)
}

func (e *UnaryExpr) PrettyPrint(cp CodePrinter) {
	cp.Println(e.Op.String())
	WithIndent(1, cp, e.X.PrettyPrint)
}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	ExprBase
	Op Op
	X  Expr
	Y  Expr
}

func (e *BinaryExpr) Type() ValueType { return e.Op.Result() }

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.X, e.Op.Info().Symbol, e.Y)
}

func (e *BinaryExpr) PrettyPrint(cp CodePrinter) {
	cp.Println(e.Op.String())
	WithIndent(1, cp, func(cp CodePrinter) {
		e.X.PrettyPrint(cp)
		e.Y.PrettyPrint(cp)
	})
}

// CallExpr is a built in function applied to its arguments. Name is the
// spelling used in the source, which may be an alias.
type CallExpr struct {
	ExprBase
	Op   Op
	Name string
	Args []Expr
}

func (e *CallExpr) Type() ValueType { return e.Op.Result() }

func (e *CallExpr) String() string {
	name := e.Name
	if name == "" {
		name = e.Op.Info().Func
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(gfn.Map(e.Args, func(a Expr) string { return a.String() }), ", "))
}

func (e *CallExpr) PrettyPrint(cp CodePrinter) {
	cp.Printf("Call %s\n", e.Op)
	WithIndent(1, cp, func(cp CodePrinter) {
		for _, a := range e.Args {
			a.PrettyPrint(cp)
		}
	})
}

// CondExpr selects Then or Else by a boolean condition. Both branches share
// one sort, which is the sort of the whole expression.
type CondExpr struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (e *CondExpr) Type() ValueType { return e.Then.Type() }

func (e *CondExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Cond, e.Then, e.Else)
}

func (e *CondExpr) PrettyPrint(cp CodePrinter) {
	if e.Type() == VectorType {
		cp.Println("CondVec")
	} else {
		cp.Println("Cond")
	}
	WithIndent(1, cp, func(cp CodePrinter) {
		e.Cond.PrettyPrint(cp)
		e.Then.PrettyPrint(cp)
		e.Else.PrettyPrint(cp)
	})
}
