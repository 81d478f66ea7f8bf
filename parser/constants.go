package parser

import "math"

// NamedConstants are replaced by literals while parsing.
var NamedConstants = map[string]float32{
	"MAXFLOAT":  math.MaxFloat32,
	"MINFLOAT":  1.17549435e-38, // FLT_MIN, smallest normal float32
	"M_E":       math.E,
	"M_LOG2E":   math.Log2E,
	"M_LOG10E":  math.Log10E,
	"M_LN2":     math.Ln2,
	"M_LN10":    math.Ln10,
	"M_PI":      math.Pi,
	"M_PI_2":    math.Pi / 2,
	"M_SQRT2":   math.Sqrt2,
	"M_SQRT1_2": 1 / math.Sqrt2,
}

// funcAliases maps alternate spellings to the canonical function name.
var funcAliases = map[string]string{
	"abs":  "fabs",
	"vec3": "vec3f",
}

func canonicalFunc(name string) string {
	if c, ok := funcAliases[name]; ok {
		return c
	}
	return name
}
