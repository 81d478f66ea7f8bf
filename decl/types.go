package decl

// ValueType is the sort of value an expression produces.
type ValueType int

const (
	ScalarType ValueType = iota
	VectorType
	BoolType
)

func (t ValueType) String() string {
	switch t {
	case ScalarType:
		return "scalar"
	case VectorType:
		return "vector"
	case BoolType:
		return "boolean"
	}
	return "unknown"
}
