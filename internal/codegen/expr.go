package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/typed"
	"github.com/Hex5DA/sdw/internal/types"
)

var binaryOpcodes = map[ast.BinaryOperator]string{
	ast.Add: "add",
	ast.Sub: "sub",
	ast.Mul: "mul",
	ast.Div: "sdiv",
}

var comparePredicates = map[ast.CompareOperator]string{
	ast.Equal:        "eq",
	ast.NotEqual:     "ne",
	ast.LessThan:     "slt",
	ast.GreaterThan:  "sgt",
	ast.LessEqual:    "sle",
	ast.GreaterEqual: "sge",
}

// Booleans are ordered false < true, so i1 needs the unsigned predicates:
// signed, true is -1.
var unsignedPredicates = map[ast.CompareOperator]string{
	ast.Equal:        "eq",
	ast.NotEqual:     "ne",
	ast.LessThan:     "ult",
	ast.GreaterThan:  "ugt",
	ast.LessEqual:    "ule",
	ast.GreaterEqual: "uge",
}

func predicate(op ast.CompareOperator, operand types.Type) string {
	if operand == types.Bool {
		return unsignedPredicates[op]
	}
	return comparePredicates[op]
}

// genExpr emits the instructions computing expr and returns the operand
// holding its value: an immediate or a temporary. Void calls return "".
func (g *Generator) genExpr(expr typed.Expr) (string, error) {
	switch e := expr.(type) {
	case *typed.IntLit:
		return strconv.FormatInt(e.Value, 10), nil

	case *typed.BoolLit:
		if e.Value {
			return "1", nil
		}
		return "0", nil

	case *typed.Variable:
		slot, ok := g.ctx.slot(e.Name)
		if !ok {
			return "", &Error{Kind: UndefinedVariable, Message: fmt.Sprintf("no slot for variable '%s'", e.Name), Span: e.Range}
		}
		tmp := g.ctx.temp()
		g.emit("%s = load %s, ptr %s", tmp, irType(e.Ty), slot)
		return tmp, nil

	case *typed.BinaryOp:
		left, right, err := g.genOperands(e.Left, e.Right)
		if err != nil {
			return "", err
		}
		tmp := g.ctx.temp()
		g.emit("%s = %s %s %s, %s", tmp, binaryOpcodes[e.Op], irType(e.Ty), left, right)
		return tmp, nil

	case *typed.Comparison:
		left, right, err := g.genOperands(e.Left, e.Right)
		if err != nil {
			return "", err
		}
		tmp := g.ctx.temp()
		g.emit("%s = icmp %s %s %s, %s", tmp, predicate(e.Op, e.Operand), irType(e.Operand), left, right)
		return tmp, nil

	case *typed.Call:
		return g.genCall(e)

	case *typed.Group:
		return g.genExpr(e.Inner)
	}
	return "", &Error{Kind: Internal, Message: fmt.Sprintf("unhandled expression %T", expr), Span: expr.Span()}
}

func (g *Generator) genOperands(l, r typed.Expr) (string, string, error) {
	left, err := g.genExpr(l)
	if err != nil {
		return "", "", err
	}
	right, err := g.genExpr(r)
	if err != nil {
		return "", "", err
	}
	return left, right, nil
}

// genCall evaluates arguments left to right, then emits the call. A void
// call produces no value.
func (g *Generator) genCall(call *typed.Call) (string, error) {
	args := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		value, err := g.genExpr(arg)
		if err != nil {
			return "", err
		}
		args = append(args, irType(arg.Type())+" "+value)
	}

	if call.Ty == types.Void {
		g.emit("call void @%s(%s)", call.Name, strings.Join(args, ", "))
		return "", nil
	}
	tmp := g.ctx.temp()
	g.emit("%s = call %s @%s(%s)", tmp, irType(call.Ty), call.Name, strings.Join(args, ", "))
	return tmp, nil
}
