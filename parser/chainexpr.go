package parser

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/vecalc/decl"
)

// ChainedExpr is a flat run of operands separated by binary operators, as
// read off the token stream before precedence is applied.
type ChainedExpr struct {
	Children  []decl.Expr
	Operators []Token
}

func (c *ChainedExpr) String() string {
	return fmt.Sprintf("(%s)", strings.Join(gfn.Map(c.Children, func(e decl.Expr) string { return e.String() }), ", "))
}

type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

type Precedencer interface {
	PrecedenceFor(operator TokenKind) int
	AssociativityFor(operator TokenKind) Associativity
}

// Combiner builds the node for one operator application. It is where
// operand sorts are checked and the overload is picked.
type Combiner func(op Token, lhs, rhs decl.Expr) (decl.Expr, error)

// Unchain folds the chain into a tree using precedence climbing.
func (c *ChainedExpr) Unchain(p Precedencer, combine Combiner) (decl.Expr, error) {
	if len(c.Children) == 0 {
		return nil, fmt.Errorf("empty expression chain")
	}
	if len(c.Children) != len(c.Operators)+1 {
		return nil, fmt.Errorf("malformed chain: %d operands for %d operators", len(c.Children), len(c.Operators))
	}
	childIdx, opIdx := 0, 0
	return c.climb(p, combine, &childIdx, &opIdx, 0)
}

// climb consumes operands and operators starting at *childIdx and *opIdx,
// folding only operators whose precedence is at least minPrecedence.
func (c *ChainedExpr) climb(p Precedencer, combine Combiner, childIdx, opIdx *int, minPrecedence int) (decl.Expr, error) {
	lhs := c.Children[*childIdx]
	*childIdx++

	for *opIdx < len(c.Operators) {
		op := c.Operators[*opIdx]
		opPrec := p.PrecedenceFor(op.Kind)
		if opPrec < minPrecedence {
			break
		}
		*opIdx++

		next := opPrec + 1
		if p.AssociativityFor(op.Kind) == AssocRight {
			next = opPrec
		}
		rhs, err := c.climb(p, combine, childIdx, opIdx, next)
		if err != nil {
			return nil, err
		}
		if lhs, err = combine(op, lhs, rhs); err != nil {
			return nil, err
		}
	}
	return lhs, nil
}
