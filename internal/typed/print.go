package typed

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented debug rendering of block to w.
func Fprint(w io.Writer, block Block) error {
	p := &printer{w: w}
	p.block(block, 0)
	return p.err
}

// Sprint renders block as a string.
func Sprint(block Block) string {
	var b strings.Builder
	_ = Fprint(&b, block)
	return b.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s├ %s\n", strings.Repeat("│ ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) block(block Block, depth int) {
	for _, stmt := range block {
		p.stmt(stmt, depth)
	}
}

func (p *printer) stmt(stmt Stmt, depth int) {
	switch s := stmt.(type) {
	case *FunctionDef:
		p.line(depth, "function '%s' returning '%s'", s.Name, s.Return)
		for i, param := range s.Params {
			p.line(depth+1, "parameter %d: '%s' of type '%s'", i, param.Name, param.Type)
		}
		p.block(s.Body, depth+1)
	case *Return:
		p.line(depth, "return from '%s' function", s.FnReturn)
		if s.Value != nil {
			p.expr(s.Value, depth+1)
		}
	case *VarDecl:
		p.line(depth, "variable '%s' declared", s.Name)
		p.expr(s.Value, depth+1)
	case *VarAssign:
		p.line(depth, "variable '%s' assigned", s.Name)
		p.expr(s.Value, depth+1)
	case *If:
		p.line(depth, "if statement")
		p.line(depth+1, "condition:")
		p.expr(s.Cond, depth+2)
		p.line(depth+1, "true case:")
		p.block(s.Then, depth+2)
		for _, clause := range s.ElseIfs {
			p.line(depth+1, "else if case:")
			p.expr(clause.Cond, depth+2)
			p.block(clause.Body, depth+2)
		}
		if s.Else != nil {
			p.line(depth+1, "else case:")
			p.block(s.Else.Body, depth+2)
		}
	case *Loop:
		p.line(depth, "loop")
		p.block(s.Body, depth+1)
	case *Break:
		p.line(depth, "break")
	case *Continue:
		p.line(depth, "continue")
	case *CallStmt:
		p.line(depth, "call statement")
		p.expr(s.Call, depth+1)
	}
}

func (p *printer) expr(expr Expr, depth int) {
	switch e := expr.(type) {
	case *IntLit:
		p.line(depth, "integer %d", e.Value)
	case *BoolLit:
		p.line(depth, "boolean %t", e.Value)
	case *Variable:
		p.line(depth, "variable '%s': %s", e.Name, e.Ty)
	case *BinaryOp:
		p.line(depth, "operation '%s': %s", e.Op, e.Ty)
		p.expr(e.Left, depth+1)
		p.expr(e.Right, depth+1)
	case *Comparison:
		p.line(depth, "comparison '%s' of %s: bool", e.Op, e.Operand)
		p.expr(e.Left, depth+1)
		p.expr(e.Right, depth+1)
	case *Call:
		p.line(depth, "call to '%s': %s", e.Name, e.Ty)
		for _, arg := range e.Args {
			p.expr(arg, depth+1)
		}
	case *Group:
		p.line(depth, "group: %s", e.Type())
		p.expr(e.Inner, depth+1)
	}
}
