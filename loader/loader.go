package loader

import (
	"fmt"
	"maps"
	"slices"

	"github.com/panyam/vecalc/decl"
	"github.com/panyam/vecalc/parser"
	"github.com/panyam/vecalc/runtime"
	"gopkg.in/yaml.v3"
)

// StringList accepts either a single string or a list of strings.
type StringList []string

func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var one string
		if err := node.Decode(&one); err != nil {
			return err
		}
		*s = StringList{one}
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*s = many
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
	return nil
}

// Document is a calculator described in YAML:
//
//	name: scale
//	expression:
//	  - ta = a * b
//	  - oa = ta / c; oA = A * ta
//	inputs:
//	  a: [1, 2, 3]
//	  b: 0.5
//	  A: [[1, 0, 0], [0, 1, 0]]
//
// Vector inputs take a single [x, y, z] or a list of them.
type Document struct {
	Name       string               `yaml:"name,omitempty"`
	Expression StringList           `yaml:"expression"`
	Inputs     map[string]yaml.Node `yaml:"inputs,omitempty"`

	Path string `yaml:"-"`
}

// Loader reads documents and turns them into programs and inputs.
type Loader struct {
	fs FileSystem

	// Stop after this many problems, 0 for no limit
	MaxErrors int
}

// NewLoader creates a loader on fs, or on the local disk when fs is nil.
func NewLoader(fs FileSystem) *Loader {
	if fs == nil {
		fs = NewLocalFS("")
	}
	return &Loader{fs: fs}
}

// LoadFile reads and decodes the document at path.
func (l *Loader) LoadFile(path string) (*Document, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses document YAML. path is only used in messages.
func Decode(data []byte, path string) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}
	doc.Path = path
	return doc, nil
}

// Compile parses the expression and decodes the inputs, reporting every
// problem found rather than just the first.
func (l *Loader) Compile(doc *Document) (*decl.Program, runtime.Inputs, error) {
	var in runtime.Inputs
	ec := &ErrorCollector{MaxErrors: l.MaxErrors}

	prog, err := parser.ParseLines(doc.Expression)
	switch {
	case len(doc.Expression) == 0:
		ec.Errorf(doc.Path, 0, 0, "missing expression")
	case err != nil:
		ec.Errorf(doc.Path, 0, 0, "expression: %v", err)
	}

	for _, name := range slices.Sorted(maps.Keys(doc.Inputs)) {
		node := doc.Inputs[name]
		reg, ok := decl.ParseRegister(name)
		if !ok || reg.Class != decl.InputReg {
			ec.Errorf(doc.Path, node.Line, node.Column, "'%s' is not an input register", name)
			continue
		}
		if reg.IsVector() {
			values, err := decodeVectors(&node)
			if err != nil {
				ec.Errorf(doc.Path, node.Line, node.Column, "input '%s': %v", name, err)
				continue
			}
			in.Vectors[reg.Index] = values
		} else {
			values, err := decodeScalars(&node)
			if err != nil {
				ec.Errorf(doc.Path, node.Line, node.Column, "input '%s': %v", name, err)
				continue
			}
			in.Scalars[reg.Index] = values
		}
	}

	if err := ec.Err(); err != nil {
		return nil, in, err
	}
	return prog, in, nil
}

func decodeScalars(node *yaml.Node) ([]float32, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var one float32
		if err := node.Decode(&one); err != nil {
			return nil, fmt.Errorf("expected a number")
		}
		return []float32{one}, nil
	case yaml.SequenceNode:
		var many []float32
		if err := node.Decode(&many); err != nil {
			return nil, fmt.Errorf("expected a list of numbers")
		}
		return many, nil
	}
	return nil, fmt.Errorf("expected a number or a list of numbers")
}

func decodeVector(node *yaml.Node) (decl.Vec3, error) {
	var comps []float32
	if node.Kind != yaml.SequenceNode || node.Decode(&comps) != nil || len(comps) != 3 {
		return decl.Vec3{}, fmt.Errorf("line %d: expected a vector [x, y, z]", node.Line)
	}
	return decl.Vec3{comps[0], comps[1], comps[2]}, nil
}

func isFlatSequence(node *yaml.Node) bool {
	for _, c := range node.Content {
		if c.Kind != yaml.ScalarNode {
			return false
		}
	}
	return true
}

func decodeVectors(node *yaml.Node) ([]decl.Vec3, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a vector or a list of vectors")
	}
	if len(node.Content) > 0 && isFlatSequence(node) {
		v, err := decodeVector(node)
		if err != nil {
			return nil, err
		}
		return []decl.Vec3{v}, nil
	}
	out := make([]decl.Vec3, 0, len(node.Content))
	for _, c := range node.Content {
		v, err := decodeVector(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
