package parser

import (
	"testing"

	"github.com/panyam/vecalc/decl"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// Printing a parsed program and parsing the result again must give back the
// same program.
func TestParseRoundTrip(t *testing.T) {
	for _, tt := range canonicalTests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := Parse(tt.src)
			assert.NilError(t, err)
			second, err := Parse(first.String())
			assert.NilError(t, err, "reparsing %q", first.String())
			assert.Equal(t, first.String(), second.String())
			assert.DeepEqual(t, first.Usage, second.Usage)
		})
	}
}

func TestParseLines(t *testing.T) {
	src := []string{"", "ta = a * 2", "   ", "oa = ta; oA = A * ta", "// nothing here"}
	prog, err := ParseLines(src)
	assert.NilError(t, err)
	assert.Check(t, is.Len(prog.Statements, 2))
	assert.DeepEqual(t, src, prog.Source)
	assert.Equal(t, "ta = (a * 2)\noa = ta; oA = (A * ta)", prog.String())
	assert.Equal(t, "inputs: [a A] outputs: [oa oA]", prog.Usage.String())
}

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", ";", "\n\n", "  ;  ; // comment"} {
		prog, err := Parse(src)
		assert.NilError(t, err)
		assert.Check(t, prog.IsEmpty(), "source %q", src)
	}

	stmt, err := ParseStatement("  ")
	assert.NilError(t, err)
	assert.Check(t, is.Nil(stmt))
}

func TestParseStatement(t *testing.T) {
	stmt, err := ParseStatement("oa = 1; ob = 2")
	assert.NilError(t, err)
	_, ok := stmt.(*decl.SeqStmt)
	assert.Check(t, ok)
	assert.Equal(t, 2, len(decl.Flatten(stmt)))

	_, err = ParseStatement("oa = ")
	assert.ErrorContains(t, err, "expected one of")
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src  string
		typ  decl.ValueType
		want string
	}{
		{"a + 1", decl.ScalarType, "(a + 1)"},
		{"A * 2", decl.VectorType, "(A * 2)"},
		{"a < 1", decl.BoolType, "(a < 1)"},
		{"a ? A : B", decl.VectorType, "(a ? A : B)"},
		{"M_E", decl.ScalarType, "M_E"},
	}
	for _, tt := range tests {
		e, err := ParseExpr(tt.src)
		assert.NilError(t, err)
		assert.Equal(t, tt.typ, e.Type())
		assert.Equal(t, tt.want, e.String())
	}

	_, err := ParseExpr("oa = 1")
	assert.ErrorContains(t, err, "expected end of input, found: '='")
}
