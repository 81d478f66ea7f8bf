package decl

import (
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// --- Interfaces ---

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	Pos() int       // Starting offset in the source element
	End() int       // Ending offset
	String() string // Canonical source form
	PrettyPrint(cp CodePrinter)
}

// Expr is a node producing a scalar, vector or boolean. The type is fixed
// when the node is built.
type Expr interface {
	Node
	exprNode()
	Type() ValueType
}

// Stmt is a node evaluated only for its effect on registers.
type Stmt interface {
	Node
	stmtNode()
}

// --- Base Struct ---

// NodeInfo embeddable struct for position tracking.
type NodeInfo struct{ StartPos, StopPos int }

func (n *NodeInfo) Pos() int { return n.StartPos }
func (n *NodeInfo) End() int { return n.StopPos }

type ExprBase struct {
	NodeInfo
}

func (e *ExprBase) exprNode() {}

type StmtBase struct {
	NodeInfo
}

func (s *StmtBase) stmtNode() {}

// --- Programs ---

// Program is the compiled form of an expression source. Each non empty
// source element contributes one statement tree.
type Program struct {
	Source     []string
	Statements []Stmt
	Usage      Usage
}

// NewProgram builds a program and computes its usage mask.
func NewProgram(source []string, stmts ...Stmt) *Program {
	return &Program{
		Source:     source,
		Statements: stmts,
		Usage:      FindUsage(stmts...),
	}
}

func (p *Program) String() string {
	return strings.Join(gfn.Map(p.Statements, func(s Stmt) string { return s.String() }), "\n")
}

func (p *Program) PrettyPrint(cp CodePrinter) {
	for _, s := range p.Statements {
		s.PrettyPrint(cp)
	}
}

// IsEmpty is true when there is nothing to evaluate.
func (p *Program) IsEmpty() bool { return p == nil || len(p.Statements) == 0 }
