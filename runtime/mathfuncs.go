package runtime

import (
	"math"

	"github.com/panyam/vecalc/decl"
)

// Substitutes returned by log and log10 for non positive arguments.
const (
	LogOfNonPositive   float32 = -128
	Log10OfNonPositive float32 = -38
)

func f64(x float32) float64 { return float64(x) }

// safeDiv divides by FloatEpsilon instead of zero.
func safeDiv(a, b float32) float32 {
	if b == 0 {
		return a / decl.FloatEpsilon
	}
	return a / b
}

func safeFmod(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return float32(math.Mod(f64(a), f64(b)))
}

func safeAtan2(y, x float32) float32 {
	if x == 0 {
		if y >= 0 {
			return math.Pi / 2
		}
		return -math.Pi / 2
	}
	return float32(math.Atan2(f64(y), f64(x)))
}

// safePow is 0 for a zero base and rounds the exponent of a negative base.
func safePow(a, b float32) float32 {
	switch {
	case a == 0:
		return 0
	case a < 0:
		return float32(math.Pow(f64(a), math.Floor(f64(b)+0.5)))
	}
	return float32(math.Pow(f64(a), f64(b)))
}

func safeSqrt(a float32) float32 {
	if a <= 0 {
		return 0
	}
	return float32(math.Sqrt(f64(a)))
}

func safeLog(a float32) float32 {
	if a <= 0 {
		return LogOfNonPositive
	}
	return float32(math.Log(f64(a)))
}

func safeLog10(a float32) float32 {
	if a <= 0 {
		return Log10OfNonPositive
	}
	return float32(math.Log10(f64(a)))
}

func clampUnit(a float32) float64 {
	return math.Max(-1, math.Min(1, f64(a)))
}

func safeAcos(a float32) float32 { return float32(math.Acos(clampUnit(a))) }
func safeAsin(a float32) float32 { return float32(math.Asin(clampUnit(a))) }

func safeDivVec(v decl.Vec3, s float32) decl.Vec3 {
	if s == 0 {
		s = decl.FloatEpsilon
	}
	return decl.Vec3{v[0] / s, v[1] / s, v[2] / s}
}
