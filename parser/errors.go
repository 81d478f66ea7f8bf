package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every error the parser returns.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the first problem found in an expression. Line counts
// across all source elements, one or more lines per element.
type SyntaxError struct {
	Line int
	Col  int
	Pos  int
	Near string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Error at Line %d, Col %d near '%s': %s", e.Line, e.Col, e.Near, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
