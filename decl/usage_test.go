package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUsage(t *testing.T) {
	// oa = a * b; oA = A * ta; tb = c
	prog := NewProgram(nil,
		Chain(
			assign(reg("oa"), bin(OpMul, reg("a"), reg("b"))),
			assign(reg("oA"), bin(OpScaleVec, reg("A"), reg("ta"))),
		),
		assign(reg("tb"), reg("c")),
	)
	u := prog.Usage

	for _, name := range []string{"a", "b", "c", "A"} {
		assert.True(t, u.UsesInput(MustRegister(name)), name)
	}
	for _, name := range []string{"d", "B"} {
		assert.False(t, u.UsesInput(MustRegister(name)), name)
	}
	assert.True(t, u.ProducesOutput(MustRegister("oa")))
	assert.True(t, u.ProducesOutput(MustRegister("oA")))
	assert.False(t, u.ProducesOutput(MustRegister("ob")))
	assert.Equal(t, 4, u.Inputs.Len())
	assert.Equal(t, 2, u.Outputs.Len())
	assert.Equal(t, "inputs: [a b c A] outputs: [oa oA]", u.String())
}

func TestFindUsageOutputsOnlyAsTargets(t *testing.T) {
	// oa = 1; ob = oa
	u := FindUsage(
		assign(reg("oa"), lit(1)),
		assign(reg("ob"), reg("oa")),
	)
	assert.Equal(t, "inputs: [] outputs: [oa ob]", u.String())

	// Reading an output never marks it produced
	u = FindUsage(assign(reg("ta"), reg("oc")))
	assert.Equal(t, 0, u.Outputs.Len())
}

func TestFindUsageIndexes(t *testing.T) {
	// oB[a] = B[c] + C[1]
	target := &IndexExpr{Register: MustRegister("oB"), Index: reg("a")}
	value := bin(OpAdd,
		&IndexExpr{Register: MustRegister("B"), Index: reg("c")},
		NewComponentExpr(MustRegister("C"), 1))
	u := FindUsage(assign(target, value))
	assert.Equal(t, "inputs: [a c B C] outputs: [oB]", u.String())
}

func TestRegisterMaskSeparatesSorts(t *testing.T) {
	var m RegisterMask
	m.Add(MustRegister("b"))
	assert.True(t, m.Has(MustRegister("b")))
	assert.False(t, m.Has(MustRegister("B")))

	m.Add(MustRegister("B"))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []Register{MustRegister("b"), MustRegister("B")}, m.List(InputReg))
}

func TestWalkSkipsChildren(t *testing.T) {
	stmt := assign(reg("oa"), bin(OpAdd, reg("a"), bin(OpMul, reg("b"), reg("c"))))

	var seen []string
	Walk(stmt, func(n Node) bool {
		if r, ok := n.(*RegisterExpr); ok {
			seen = append(seen, r.Register.Name())
		}
		_, isMul := n.(*BinaryExpr)
		return !(isMul && n.(*BinaryExpr).Op == OpMul)
	})
	assert.Equal(t, []string{"oa", "a"}, seen)
}
