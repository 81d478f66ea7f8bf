package runtime

import (
	"math"
	"testing"

	"github.com/panyam/vecalc/decl"
	"github.com/panyam/vecalc/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execOnce compiles src and runs every statement once against regs.
func execOnce(t *testing.T, e *Evaluator, src string, regs Registers) {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err, "parsing %q", src)
	for _, stmt := range prog.Statements {
		e.Exec(stmt, regs)
	}
}

func scalarOf(t *testing.T, src string, regs *RegisterFile) float32 {
	t.Helper()
	if regs == nil {
		regs = NewRegisterFile()
	}
	execOnce(t, NewEvaluator(nil), "oa = "+src, regs)
	return regs.ScalarOutputs[0]
}

func vectorOf(t *testing.T, src string, regs *RegisterFile) decl.Vec3 {
	t.Helper()
	if regs == nil {
		regs = NewRegisterFile()
	}
	execOnce(t, NewEvaluator(nil), "oA = "+src, regs)
	return regs.VectorOutputs[0]
}

func TestNumericEdgePolicy(t *testing.T) {
	regs := NewRegisterFile()
	regs.BindScalar(0, 4)
	regs.BindScalar(1, 0)
	assert.Equal(t, float32(4)/decl.FloatEpsilon, scalarOf(t, "a / b", regs))

	halfPi := float32(math.Pi / 2)
	tests := []struct {
		src  string
		want float32
	}{
		{"fmod(5, 0)", 0},
		{"5 % 0", 0},
		{"fmod(5.5, 2)", 1.5},
		{"-5.5 % 2", -1.5},
		{"atan2(3, 0)", halfPi},
		{"atan2(0, 0)", halfPi},
		{"atan2(-3, 0)", -halfPi},
		{"pow(0, 5)", 0},
		{"pow(0, -1)", 0},
		{"0 ^ 0", 0},
		{"pow(-2, 2.6)", -8},
		{"pow(-2, 2.4)", 4},
		{"(-2) ^ -1", -0.5},
		{"2 ^ 10", 1024},
		{"sqrt(-4)", 0},
		{"sqrt(0)", 0},
		{"sqrt(9)", 3},
		{"log(0)", -128},
		{"log(-1)", -128},
		{"log10(0)", -38},
		{"log10(-5)", -38},
		{"acos(2)", 0},
		{"acos(-2)", float32(math.Pi)},
		{"asin(2)", halfPi},
		{"asin(-7)", -halfPi},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, scalarOf(t, tt.src, nil))
		})
	}
}

func TestVectorEdgePolicy(t *testing.T) {
	regs := NewRegisterFile()
	assert.Equal(t, decl.Vec3{}, vectorOf(t, "normalize(A)", regs))

	regs.BindVector(0, decl.Vec3{1, 2, 3})
	eps := decl.FloatEpsilon
	assert.Equal(t, decl.Vec3{1 / eps, 2 / eps, 3 / eps}, vectorOf(t, "A / 0", regs))
	assert.Equal(t, decl.Vec3{0.5, 1, 1.5}, vectorOf(t, "A / 2", regs))
}

func TestScalarFunctions(t *testing.T) {
	tests := []struct {
		src  string
		want float32
	}{
		{"cos(0)", 1},
		{"sin(0)", 0},
		{"tan(0)", 0},
		{"atan(0)", 0},
		{"cosh(0)", 1},
		{"sinh(0)", 0},
		{"tanh(0)", 0},
		{"exp(0)", 1},
		{"ceil(1.2)", 2},
		{"floor(-1.2)", -2},
		{"abs(-3)", 3},
		{"fabs(-3)", 3},
		{"log(M_E)", 1},
		{"log10(1000)", 3},
		{"acos(1)", 0},
		{"atan2(1, 1)", float32(math.Pi / 4)},
		{"pow(2, 0.5)", float32(math.Sqrt2)},
		{"cos(M_PI)", -1},
		{"7 - 2 * 3", 1},
		{"-2 ^ 2", 4},
		{"1 < 2 ? 10 : 20", 10},
		{"0 ? 10 : 20", 20},
		{"1 == 1 && 2 != 2 ? 1 : 0", 0},
		{"1 >= 1 || 0 ? 1 : 0", 1},
		{"!(1 <= 0) ? 1 : 0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.InDelta(t, tt.want, scalarOf(t, tt.src, nil), 1e-6)
		})
	}
}

func TestVectorOperations(t *testing.T) {
	regs := NewRegisterFile()
	regs.BindVector(0, decl.Vec3{1, 2, 3})
	regs.BindVector(1, decl.Vec3{4, 5, 6})
	regs.BindScalar(0, 2)

	assert.Equal(t, decl.Vec3{5, 7, 9}, vectorOf(t, "A + B", regs))
	assert.Equal(t, decl.Vec3{-3, -3, -3}, vectorOf(t, "A - B", regs))
	assert.Equal(t, decl.Vec3{4, 10, 18}, vectorOf(t, "A * B", regs))
	assert.Equal(t, decl.Vec3{2, 4, 6}, vectorOf(t, "a * A", regs))
	assert.Equal(t, decl.Vec3{2, 4, 6}, vectorOf(t, "A * a", regs))
	assert.Equal(t, decl.Vec3{-1, -2, -3}, vectorOf(t, "-A", regs))
	assert.Equal(t, decl.Vec3{-3, 6, -3}, vectorOf(t, "cross(A, B)", regs))
	assert.Equal(t, decl.Vec3{2, 1, 9}, vectorOf(t, "vec3(a, 1, a + 7)", regs))
	assert.Equal(t, decl.Vec3{4, 5, 6}, vectorOf(t, "A == B ? A : B", regs))
	assert.Equal(t, decl.Vec3{1, 2, 3}, vectorOf(t, "A != B ? A : B", regs))
	assert.Equal(t, decl.Vec3{1, 2, 3}, vectorOf(t, "A ? A : B", regs))
	assert.Equal(t, decl.Vec3{4, 5, 6}, vectorOf(t, "C ? A : B", regs))

	assert.Equal(t, float32(32), scalarOf(t, "dot(A, B)", regs))
	assert.Equal(t, float32(5), scalarOf(t, "length(vec3(3, 0, 4))", regs))
	assert.Equal(t, float32(6), scalarOf(t, "B[0.5] + A[1]", regs))
}

func TestIndexClampsAtRuntime(t *testing.T) {
	tests := []struct {
		index float32
		want  float32
	}{
		{-3, 10},
		{0, 10},
		{1.5, 20},
		{2, 30},
		{9, 30},
		{float32(math.NaN()), 10},
	}
	for _, tt := range tests {
		regs := NewRegisterFile()
		regs.BindVector(0, decl.Vec3{10, 20, 30})
		regs.BindScalar(1, tt.index)
		assert.Equal(t, tt.want, scalarOf(t, "A[b]", regs), "index %v", tt.index)
	}
}

func TestComponentAssignment(t *testing.T) {
	regs := NewRegisterFile()
	regs.BindScalar(2, 2)
	execOnce(t, NewEvaluator(nil), "oA[1] = 5; oA[c] = 7; tA[-c] = 1; oB = tA", regs)
	assert.Equal(t, decl.Vec3{0, 5, 7}, regs.VectorOutputs[0])
	assert.Equal(t, decl.Vec3{1, 0, 0}, regs.VectorOutputs[1])
}

func TestOutputsReadable(t *testing.T) {
	regs := NewRegisterFile()
	regs.BindScalar(0, 3)
	execOnce(t, NewEvaluator(nil), "oa = a * 2; ob = oa + 1; oA = vec3(oa, ob, 0)", regs)
	assert.Equal(t, float32(6), regs.ScalarOutputs[0])
	assert.Equal(t, float32(7), regs.ScalarOutputs[1])
	assert.Equal(t, decl.Vec3{6, 7, 0}, regs.VectorOutputs[0])
}

// panicRegisters fails the test if a particular register is read.
type panicRegisters struct {
	*RegisterFile
	forbidden string
}

func (p *panicRegisters) ReadScalar(r decl.Register) float32 {
	if r.Name() == p.forbidden {
		panic("read of " + p.forbidden)
	}
	return p.RegisterFile.ReadScalar(r)
}

func TestBooleanShortCircuit(t *testing.T) {
	e := NewEvaluator(nil)
	regs := &panicRegisters{RegisterFile: NewRegisterFile(), forbidden: "b"}

	assert.NotPanics(t, func() { execOnce(t, e, "oa = a && b ? 1 : 2", regs) })
	assert.Equal(t, float32(2), regs.ScalarOutputs[0])

	// the upper end is reachable when the source allows it
	execOnce(t, NewEvaluator(fixedRand(1)), "oa = rand(4)", regs)
	assert.Equal(t, float32(4), regs.ScalarOutputs[0])

	regs.BindScalar(0, 1)
	assert.NotPanics(t, func() { execOnce(t, e, "oa = a || b ? 1 : 2", regs) })
	assert.Equal(t, float32(1), regs.ScalarOutputs[0])

	// only the chosen branch of a conditional runs
	assert.NotPanics(t, func() { execOnce(t, e, "oa = a ? 3 : b", regs) })
	assert.Equal(t, float32(3), regs.ScalarOutputs[0])

	assert.Panics(t, func() { execOnce(t, e, "oa = a && b ? 1 : 2", regs) })
}

type fixedRand float32

func (f fixedRand) Float32() float32 { return float32(f) }

func TestRand(t *testing.T) {
	regs := NewRegisterFile()
	execOnce(t, NewEvaluator(fixedRand(0.5)), "oa = rand(4)", regs)
	assert.Equal(t, float32(2), regs.ScalarOutputs[0])

	seq := func(seed uint64) []float32 {
		e := NewEvaluator(NewLockedRand(seed))
		var out []float32
		for range 5 {
			r := NewRegisterFile()
			execOnce(t, e, "oa = rand(10)", r)
			out = append(out, r.ScalarOutputs[0])
		}
		return out
	}
	first := seq(7)
	assert.Equal(t, first, seq(7))
	assert.NotEqual(t, first, seq(8))
	for _, v := range first {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(10))
	}

	// zero Evaluator falls back to the default source
	var e Evaluator
	assert.NotPanics(t, func() { execOnce(t, &e, "oa = rand(1)", NewRegisterFile()) })
}

func TestValue(t *testing.T) {
	e := NewEvaluator(nil)
	regs := NewRegisterFile()
	for src, want := range map[string]any{
		"1 + 2":             float32(3),
		"vec3(1, 2, 3) * 2": decl.Vec3{2, 4, 6},
		"1 < 2":             true,
	} {
		expr, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.Equal(t, want, e.Value(expr, regs), src)
	}
}

func TestEvalWrongSortPanics(t *testing.T) {
	e := NewEvaluator(nil)
	regs := NewRegisterFile()
	lit := &decl.LiteralExpr{Value: 1}
	assert.Panics(t, func() { e.EvalVector(lit, regs) })
	assert.Panics(t, func() { e.EvalBool(lit, regs) })
	assert.Panics(t, func() { e.EvalScalar(&decl.RegisterExpr{Register: decl.MustRegister("A")}, regs) })
}
