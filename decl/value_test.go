package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueTypeString(t *testing.T) {
	assert.Equal(t, "scalar", ScalarType.String())
	assert.Equal(t, "vector", VectorType.String())
	assert.Equal(t, "boolean", BoolType.String())
	assert.Equal(t, "unknown", ValueType(42).String())
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, Vec3{-1, -2, -3}, a.Neg())
	assert.Equal(t, Vec3{4, 10, 18}, a.Mul(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))

	assert.Equal(t, float32(1), a.X())
	assert.Equal(t, float32(2), a.Y())
	assert.Equal(t, float32(3), a.Z())
}

func TestVec3CrossIsOrthogonal(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
	assert.Equal(t, Vec3{0, 0, -1}, y.Cross(x))
}

func TestVec3LengthAndNormalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	assert.Equal(t, float32(5), v.Length())

	n := v.Normalize()
	assert.InDelta(t, 0.6, n.X(), 1e-6)
	assert.InDelta(t, 0, n.Y(), 1e-6)
	assert.InDelta(t, 0.8, n.Z(), 1e-6)
	assert.InDelta(t, 1, n.Length(), 1e-6)

	// No direction to preserve, so the result stays zero rather than NaN
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.True(t, Vec3{}.Normalize().IsZero())
	assert.False(t, v.IsZero())
}

func TestVec3String(t *testing.T) {
	assert.Equal(t, "(1, 0.5, -2)", Vec3{1, 0.5, -2}.String())
}
