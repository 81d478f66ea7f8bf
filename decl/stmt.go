package decl

import "fmt"

// --- Statements ---

// AssignStmt writes Value into Target. Target is a *RegisterExpr for whole
// register writes, or a *ComponentExpr / *IndexExpr for one component.
type AssignStmt struct {
	StmtBase
	Target Expr
	Value  Expr
}

// TargetRegister is the register written by the assignment.
func (a *AssignStmt) TargetRegister() Register {
	switch t := a.Target.(type) {
	case *RegisterExpr:
		return t.Register
	case *ComponentExpr:
		return t.Register
	case *IndexExpr:
		return t.Register
	}
	panic(fmt.Sprintf("invalid assignment target %T", a.Target))
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

func (a *AssignStmt) PrettyPrint(cp CodePrinter) {
	switch t := a.Target.(type) {
	case *ComponentExpr:
		cp.Printf("Assign %s[%d]\n", t.Register.Name(), t.Index)
	case *IndexExpr:
		cp.Printf("Assign %s[]\n", t.Register.Name())
		WithIndent(2, cp, t.Index.PrettyPrint)
	default:
		cp.Printf("Assign %s\n", a.TargetRegister().Name())
	}
	WithIndent(1, cp, a.Value.PrettyPrint)
}

// SeqStmt runs First and then Second.
type SeqStmt struct {
	StmtBase
	First  Stmt
	Second Stmt
}

func (s *SeqStmt) String() string {
	return fmt.Sprintf("%s; %s", s.First, s.Second)
}

func (s *SeqStmt) PrettyPrint(cp CodePrinter) {
	s.First.PrettyPrint(cp)
	s.Second.PrettyPrint(cp)
}

// Chain joins statements into one right leaning SeqStmt tree. It returns
// nil for no statements.
func Chain(stmts ...Stmt) Stmt {
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts[0]
	}
	rest := Chain(stmts[1:]...)
	return &SeqStmt{
		StmtBase: StmtBase{NodeInfo{StartPos: stmts[0].Pos(), StopPos: rest.End()}},
		First:    stmts[0],
		Second:   rest,
	}
}

// Flatten lists the assignments of a statement tree in execution order.
func Flatten(stmt Stmt) []*AssignStmt {
	switch s := stmt.(type) {
	case *AssignStmt:
		return []*AssignStmt{s}
	case *SeqStmt:
		return append(Flatten(s.First), Flatten(s.Second)...)
	}
	return nil
}
