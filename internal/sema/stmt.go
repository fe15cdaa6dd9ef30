package sema

import (
	"fmt"

	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/typed"
	"github.com/Hex5DA/sdw/internal/types"
)

func (c *Checker) checkStmt(stmt ast.Stmt) (typed.Stmt, error) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return c.checkFunctionDef(s)
	case *ast.Return:
		return c.checkReturn(s)
	case *ast.VarDecl:
		return c.checkVarDecl(s)
	case *ast.VarAssign:
		return c.checkVarAssign(s)
	case *ast.If:
		return c.checkIf(s)
	case *ast.Loop:
		return c.checkLoop(s)
	case *ast.Break:
		if c.loopDepth == 0 {
			return nil, &Error{Kind: BreakOrContinueOutsideLoop, Name: "break", Span: s.Span()}
		}
		return &typed.Break{Range: s.Span()}, nil
	case *ast.Continue:
		if c.loopDepth == 0 {
			return nil, &Error{Kind: BreakOrContinueOutsideLoop, Name: "continue", Span: s.Span()}
		}
		return &typed.Continue{Range: s.Span()}, nil
	case *ast.CallStmt:
		call, err := c.checkCall(s.Call)
		if err != nil {
			return nil, err
		}
		return &typed.CallStmt{Call: call, Range: s.Span()}, nil
	}
	panic(fmt.Sprintf("sema: unhandled statement %T", stmt))
}

func (c *Checker) checkFunctionDef(def *ast.FunctionDef) (typed.Stmt, error) {
	sig, ok := c.functions[def.Name.Name]
	if !ok {
		// declareFunctions runs on every block before its statements.
		return nil, &Error{Kind: FunctionNotFound, Name: def.Name.Name, Span: def.Name.Span()}
	}

	// Loops do not extend into nested function bodies.
	outerLoops := c.loopDepth
	c.loopDepth = 0
	c.pushScope(types.NewFunctionScope(c.scope, sig))
	body, err := c.checkBlock(def.Body)
	c.popScope()
	c.loopDepth = outerLoops
	if err != nil {
		return nil, err
	}

	out := &typed.FunctionDef{
		Name:   sig.Name,
		Return: sig.Return,
		Body:   body,
		Range:  def.Span(),
	}
	for i, param := range def.Params {
		out.Params = append(out.Params, typed.Param{
			Name:  sig.ParamNames[i],
			Type:  sig.Params[i],
			Range: param.Span(),
		})
	}
	return out, nil
}

func (c *Checker) checkReturn(ret *ast.Return) (typed.Stmt, error) {
	scope, err := c.current(ret.Span())
	if err != nil {
		return nil, err
	}
	fn := scope.EnclosingFunction()
	if fn == nil {
		return nil, &Error{Kind: ReturnOutsideFn, Span: ret.Span()}
	}

	if ret.Value == nil {
		if fn.Return != types.Void {
			return nil, &Error{Kind: MismatchedFnRetTy, Name: fn.Name, Expected: fn.Return, Found: types.Void, Span: ret.Span()}
		}
		return &typed.Return{FnReturn: fn.Return, Range: ret.Span()}, nil
	}

	value, err := c.checkExpr(ret.Value)
	if err != nil {
		return nil, err
	}
	if value.Type() != fn.Return {
		return nil, &Error{Kind: MismatchedFnRetTy, Name: fn.Name, Expected: fn.Return, Found: value.Type(), Span: ret.Value.Span()}
	}
	return &typed.Return{Value: value, FnReturn: fn.Return, Range: ret.Span()}, nil
}

func (c *Checker) checkVarDecl(decl *ast.VarDecl) (typed.Stmt, error) {
	value, err := c.checkValue(decl.Value)
	if err != nil {
		return nil, err
	}
	scope, err := c.current(decl.Span())
	if err != nil {
		return nil, err
	}
	scope.Insert(decl.Name.Name, value.Type())
	return &typed.VarDecl{Name: decl.Name.Name, Value: value, Range: decl.Span()}, nil
}

func (c *Checker) checkVarAssign(assign *ast.VarAssign) (typed.Stmt, error) {
	declared, err := c.lookupVar(assign.Name.Name, assign.Name.Span())
	if err != nil {
		return nil, err
	}
	value, err := c.checkValue(assign.Value)
	if err != nil {
		return nil, err
	}
	if value.Type() != declared {
		return nil, &Error{
			Kind:     CannotReassignVariableType,
			Name:     assign.Name.Name,
			Expected: declared,
			Found:    value.Type(),
			Span:     assign.Value.Span(),
		}
	}
	return &typed.VarAssign{Name: assign.Name.Name, Value: value, Range: assign.Span()}, nil
}

func (c *Checker) checkIf(stmt *ast.If) (typed.Stmt, error) {
	cond, then, err := c.checkCondClause(stmt.Cond, stmt.Then)
	if err != nil {
		return nil, err
	}
	out := &typed.If{Cond: cond, Then: then, Range: stmt.Span()}

	for _, clause := range stmt.ElseIfs {
		cond, body, err := c.checkCondClause(clause.Cond, clause.Body)
		if err != nil {
			return nil, err
		}
		out.ElseIfs = append(out.ElseIfs, typed.ElseIf{Cond: cond, Body: body, Range: clause.Span()})
	}

	if stmt.Else != nil {
		body, err := c.checkScopedBlock(stmt.Else.Body)
		if err != nil {
			return nil, err
		}
		out.Else = &typed.Else{Body: body, Range: stmt.Else.Span()}
	}
	return out, nil
}

func (c *Checker) checkCondClause(condExpr ast.Expr, block ast.Block) (typed.Expr, typed.Block, error) {
	cond, err := c.checkExpr(condExpr)
	if err != nil {
		return nil, nil, err
	}
	if cond.Type() != types.Bool {
		return nil, nil, &Error{Kind: CondNotBool, Found: cond.Type(), Span: condExpr.Span()}
	}
	body, err := c.checkScopedBlock(block)
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

func (c *Checker) checkLoop(loop *ast.Loop) (typed.Stmt, error) {
	c.loopDepth++
	body, err := c.checkScopedBlock(loop.Body)
	c.loopDepth--
	if err != nil {
		return nil, err
	}
	return &typed.Loop{Body: body, Range: loop.Span()}, nil
}
