package parser

import "github.com/panyam/vecalc/decl"

type NodeInfo = decl.NodeInfo
type ExprBase = decl.ExprBase
type StmtBase = decl.StmtBase
type Expr = decl.Expr
type Stmt = decl.Stmt
type LiteralExpr = decl.LiteralExpr
type RegisterExpr = decl.RegisterExpr
type ComponentExpr = decl.ComponentExpr
type IndexExpr = decl.IndexExpr
type UnaryExpr = decl.UnaryExpr
type BinaryExpr = decl.BinaryExpr
type CallExpr = decl.CallExpr
type CondExpr = decl.CondExpr
type AssignStmt = decl.AssignStmt
type SeqStmt = decl.SeqStmt
