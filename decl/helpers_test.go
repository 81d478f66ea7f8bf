package decl

func reg(name string) *RegisterExpr { return &RegisterExpr{Register: MustRegister(name)} }

func lit(v float32) *LiteralExpr { return &LiteralExpr{Value: v} }

func bin(op Op, x, y Expr) *BinaryExpr { return &BinaryExpr{Op: op, X: x, Y: y} }

func assign(target, value Expr) *AssignStmt { return &AssignStmt{Target: target, Value: value} }
