package sema

import (
	"fmt"

	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/lexer"
	"github.com/Hex5DA/sdw/internal/typed"
	"github.com/Hex5DA/sdw/internal/types"
)

func (c *Checker) checkExpr(expr ast.Expr) (typed.Expr, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return &typed.IntLit{Value: e.Value, Range: e.Span()}, nil

	case *ast.BoolLit:
		return &typed.BoolLit{Value: e.Value, Range: e.Span()}, nil

	case *ast.Variable:
		typ, err := c.lookupVar(e.Name, e.Span())
		if err != nil {
			return nil, err
		}
		return &typed.Variable{Name: e.Name, Ty: typ, Range: e.Span()}, nil

	case *ast.BinaryOp:
		left, right, err := c.checkOperands(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &typed.BinaryOp{Left: left, Op: e.Op, Right: right, Ty: left.Type(), Range: e.Span()}, nil

	case *ast.Comparison:
		left, right, err := c.checkOperands(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &typed.Comparison{Left: left, Op: e.Op, Right: right, Operand: left.Type(), Range: e.Span()}, nil

	case *ast.Call:
		call, err := c.checkCall(e)
		if err != nil {
			return nil, err
		}
		return call, nil

	case *ast.Group:
		inner, err := c.checkExpr(e.Inner)
		if err != nil {
			return nil, err
		}
		return &typed.Group{Inner: inner, Range: e.Span()}, nil
	}
	panic(fmt.Sprintf("sema: unhandled expression %T", expr))
}

// checkValue checks an expression whose result is stored somewhere, which
// rules out void calls.
func (c *Checker) checkValue(expr ast.Expr) (typed.Expr, error) {
	value, err := c.checkExpr(expr)
	if err != nil {
		return nil, err
	}
	if value.Type() == types.Void {
		return nil, &Error{Kind: VoidValue, Found: types.Void, Span: expr.Span()}
	}
	return value, nil
}

// checkOperands types both sides left to right and requires them to agree.
func (c *Checker) checkOperands(l, r ast.Expr) (typed.Expr, typed.Expr, error) {
	left, err := c.checkExpr(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := c.checkExpr(r)
	if err != nil {
		return nil, nil, err
	}
	if left.Type() != right.Type() {
		return nil, nil, &Error{
			Kind:     MismatchedTypes,
			Expected: left.Type(),
			Found:    right.Type(),
			Span:     mergeSpan(l, r),
		}
	}
	if left.Type() == types.Void {
		return nil, nil, &Error{Kind: VoidValue, Found: types.Void, Span: mergeSpan(l, r)}
	}
	return left, right, nil
}

func (c *Checker) checkCall(call *ast.Call) (*typed.Call, error) {
	sig, ok := c.functions[call.Name.Name]
	if !ok {
		return nil, &Error{Kind: FunctionNotFound, Name: call.Name.Name, Span: call.Name.Span()}
	}
	if len(call.Args) != len(sig.Params) {
		return nil, &Error{
			Kind:     MismatchedNumArgs,
			Name:     sig.Name,
			WantArgs: len(sig.Params),
			GotArgs:  len(call.Args),
			Span:     call.Span(),
		}
	}

	out := &typed.Call{Name: sig.Name, Ty: sig.Return, Range: call.Span()}
	for i, arg := range call.Args {
		value, err := c.checkExpr(arg)
		if err != nil {
			return nil, err
		}
		if value.Type() != sig.Params[i] {
			return nil, &Error{
				Kind:     ArgTyMismatch,
				Name:     sig.Name,
				Expected: sig.Params[i],
				Found:    value.Type(),
				Arg:      i,
				Span:     arg.Span(),
			}
		}
		out.Args = append(out.Args, value)
	}
	return out, nil
}

func mergeSpan(l, r ast.Node) lexer.Span {
	return lexer.MergeSpans(l.Span(), r.Span())
}
