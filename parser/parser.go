package parser

import (
	"strings"

	"github.com/panyam/vecalc/decl"
)

// Parse compiles a single source element. Statements are separated by ';'
// or newlines; empty statements are skipped.
func Parse(source string) (*decl.Program, error) {
	return ParseLines([]string{source})
}

// ParseLines compiles a multi element source, one statement tree per non
// empty element. Parsing stops at the first error and no program is returned.
func ParseLines(lines []string) (*decl.Program, error) {
	var stmts []decl.Stmt
	lineOffset := 0
	for _, line := range lines {
		p := NewLLParser(NewLexer(strings.NewReader(line)))
		p.LineOffset = lineOffset
		parsed, err := p.ParseStatements()
		if err != nil {
			return nil, err
		}
		if stmt := decl.Chain(parsed...); stmt != nil {
			stmts = append(stmts, stmt)
		}
		lineOffset += strings.Count(line, "\n") + 1
	}
	return decl.NewProgram(lines, stmts...), nil
}

// ParseStatement parses one source element into a single statement tree.
// It returns nil for text holding no statements.
func ParseStatement(text string) (decl.Stmt, error) {
	p := NewLLParser(NewLexer(strings.NewReader(text)))
	parsed, err := p.ParseStatements()
	if err != nil {
		return nil, err
	}
	return decl.Chain(parsed...), nil
}

// ParseExpr parses a bare expression with no assignment.
func ParseExpr(text string) (decl.Expr, error) {
	p := NewLLParser(NewLexer(strings.NewReader(text)))
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(EOF); err != nil {
		return nil, err
	}
	return expr, nil
}
