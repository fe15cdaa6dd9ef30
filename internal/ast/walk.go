package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *FunctionDef:
		Walk(n.ReturnType, fn)
		Walk(n.Name, fn)
		for _, param := range n.Params {
			Walk(param, fn)
		}
		WalkBlock(n.Body, fn)

	case *Param:
		Walk(n.Type, fn)
		Walk(n.Name, fn)

	case *Return:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *VarDecl:
		Walk(n.Name, fn)
		Walk(n.Value, fn)

	case *VarAssign:
		Walk(n.Name, fn)
		Walk(n.Value, fn)

	case *If:
		Walk(n.Cond, fn)
		WalkBlock(n.Then, fn)
		for _, clause := range n.ElseIfs {
			Walk(clause, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *ElseIf:
		Walk(n.Cond, fn)
		WalkBlock(n.Body, fn)

	case *Else:
		WalkBlock(n.Body, fn)

	case *Loop:
		WalkBlock(n.Body, fn)

	case *CallStmt:
		Walk(n.Call, fn)

	case *BinaryOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *Comparison:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *Call:
		Walk(n.Name, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *Group:
		Walk(n.Inner, fn)

	case *Ident, *TypeName, *IntLit, *BoolLit, *Variable, *Break, *Continue:
		// leaves
	}
}

// WalkBlock walks every statement of a block in order.
func WalkBlock(block Block, fn func(Node) bool) {
	for _, stmt := range block {
		Walk(stmt, fn)
	}
}
