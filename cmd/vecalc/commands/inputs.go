package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/panyam/vecalc/decl"
	"github.com/panyam/vecalc/runtime"
)

// applyInputFlag parses a --in value and binds it. Scalars are written
// "a=1,2,3" and vectors "A=1:0:0,0:1:0".
func applyInputFlag(in *runtime.Inputs, spec string) error {
	name, list, ok := strings.Cut(spec, "=")
	if !ok {
		return fmt.Errorf("input %q: expected name=values", spec)
	}
	name = strings.TrimSpace(name)
	var items []string
	if list = strings.TrimSpace(list); list != "" {
		items = strings.Split(list, ",")
	}

	if reg, ok := decl.ParseRegister(name); ok && reg.IsVector() {
		vecs := make([]decl.Vec3, len(items))
		for i, item := range items {
			v, err := parseVec3(item)
			if err != nil {
				return fmt.Errorf("input %s: %w", name, err)
			}
			vecs[i] = v
		}
		return in.SetVector(name, vecs...)
	}

	vals := make([]float32, len(items))
	for i, item := range items {
		f, err := parseFloat(item)
		if err != nil {
			return fmt.Errorf("input %s: %w", name, err)
		}
		vals[i] = f
	}
	return in.SetScalar(name, vals...)
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return float32(f), nil
}

func parseVec3(s string) (v decl.Vec3, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid vector %q, expected x:y:z", s)
	}
	for i, p := range parts {
		if v[i], err = parseFloat(p); err != nil {
			return v, err
		}
	}
	return v, nil
}
