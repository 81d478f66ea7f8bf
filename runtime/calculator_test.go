package runtime

import (
	"errors"
	"testing"

	"github.com/panyam/vecalc/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorWithoutExpression(t *testing.T) {
	calc := NewCalculator(nil)
	_, err := calc.Program()
	assert.ErrorIs(t, err, ErrNoProgram)
	assert.Equal(t, Outputs{}, calc.Evaluate())
}

func TestCalculatorEvaluate(t *testing.T) {
	calc := NewCalculator(nil)
	calc.SetExpression("ta = a * 2", "oa = ta + b")
	require.NoError(t, calc.Inputs.SetScalar("a", 1, 2))
	require.NoError(t, calc.Inputs.SetScalar("b", 10))

	out := calc.Evaluate()
	assert.Equal(t, []float32{12, 14}, out.Scalar("oa"))

	// new inputs, same program
	require.NoError(t, calc.Inputs.SetScalar("a", 5))
	out = calc.Evaluate()
	assert.Equal(t, []float32{20}, out.Scalar("oa"))
}

func TestCalculatorCachesProgram(t *testing.T) {
	calc := NewCalculator(nil)
	calc.SetExpression("oa = a")
	assert.Equal(t, uint64(1), calc.Version())

	first, err := calc.Program()
	require.NoError(t, err)
	second, err := calc.Program()
	require.NoError(t, err)
	assert.Same(t, first, second)

	// replacing the source recompiles even when the text is unchanged
	calc.SetExpression("oa = a")
	assert.Equal(t, uint64(2), calc.Version())
	third, err := calc.Program()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestCalculatorCompileError(t *testing.T) {
	buffer, cleanup := CaptureLog(t, LogLevelWarn)
	defer cleanup()

	calc := NewCalculator(nil)
	require.NoError(t, calc.Inputs.SetScalar("a", 1, 2, 3))
	calc.SetExpression("oa = a +")

	_, err := calc.Program()
	assert.True(t, errors.Is(err, parser.ErrSyntax))
	assert.Equal(t, Outputs{}, calc.Evaluate())
	assert.Contains(t, buffer.String(), "expression does not compile")

	// the error is cached with the source version and logged once
	_, err2 := calc.Program()
	assert.Equal(t, err, err2)
	assert.Equal(t, 1, countLines(buffer.String()))

	calc.SetExpression("oa = a + 1")
	out := calc.Evaluate()
	assert.Equal(t, []float32{2, 3, 4}, out.Scalar("oa"))
}

func TestCalculatorExpressionIsCopied(t *testing.T) {
	lines := []string{"oa = 1"}
	calc := NewCalculator(NewDriver(nil))
	calc.SetExpression(lines...)
	lines[0] = "oa = 2"
	assert.Equal(t, []string{"oa = 1"}, calc.Expression())

	got := calc.Expression()
	got[0] = "oa = 3"
	assert.Equal(t, []string{"oa = 1"}, calc.Expression())
	assert.NotNil(t, calc.Driver())
}

func countLines(s string) (n int) {
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return
}
