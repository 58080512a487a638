package syntax

// Visitor is called for every expression reached by Walk. Returning false
// stops descent into that expression's children.
type Visitor func(Expr) bool

// WalkBlock applies the visitor to every expression in a block, in source
// order.
func WalkBlock(block *BlockExpr, visit Visitor) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		walkStmt(stmt, visit)
	}
}

func walkStmt(stmt Stmt, visit Visitor) {
	switch s := stmt.(type) {
	case *LetStmt:
		walkExpr(s.Value, visit)
	case *ExprStmt:
		walkExpr(s.Expr, visit)
	}
}

func walkExpr(expr Expr, visit Visitor) {
	if expr == nil {
		return
	}
	if !visit(expr) {
		return
	}

	switch e := expr.(type) {
	case *CallExpr:
		walkExpr(e.Fn, visit)
		for _, arg := range e.Args {
			walkExpr(arg, visit)
		}
	case *MethodCallExpr:
		walkExpr(e.Receiver, visit)
		for _, arg := range e.Args {
			walkExpr(arg, visit)
		}
	case *FieldExpr:
		walkExpr(e.Receiver, visit)
	case *StructLitExpr:
		for _, f := range e.Fields {
			walkExpr(f.Value, visit)
		}
	case *RefExpr:
		walkExpr(e.Elem, visit)
	case *UnaryExpr:
		walkExpr(e.Elem, visit)
	case *BinaryExpr:
		walkExpr(e.Left, visit)
		walkExpr(e.Right, visit)
	case *IndexExpr:
		walkExpr(e.Receiver, visit)
		walkExpr(e.Index, visit)
	case *TupleExpr:
		for _, el := range e.Elems {
			walkExpr(el, visit)
		}
	case *ArrayExpr:
		for _, el := range e.Elems {
			walkExpr(el, visit)
		}
	case *BlockExpr:
		for _, s := range e.Stmts {
			walkStmt(s, visit)
		}
	case *IfExpr:
		walkExpr(e.Cond, visit)
		walkExpr(e.Then, visit)
		walkExpr(e.Else, visit)
	case *MatchExpr:
		walkExpr(e.Scrutinee, visit)
		for _, arm := range e.Arms {
			walkExpr(arm.Body, visit)
		}
	case *WhileExpr:
		walkExpr(e.Cond, visit)
		walkExpr(e.Body, visit)
	case *ForExpr:
		walkExpr(e.Iter, visit)
		walkExpr(e.Body, visit)
	case *LoopExpr:
		walkExpr(e.Body, visit)
	case *ReturnExpr:
		walkExpr(e.Value, visit)
	case *TryExpr:
		walkExpr(e.Elem, visit)
	case *AwaitExpr:
		walkExpr(e.Elem, visit)
	case *ClosureExpr:
		walkExpr(e.Body, visit)
	}
}
