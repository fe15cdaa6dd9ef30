package codegen

import (
	"fmt"
	"strings"

	"github.com/Hex5DA/sdw/internal/typed"
	"github.com/Hex5DA/sdw/internal/types"
)

// genFunction emits one function definition. Parameters are spilled into
// slots on entry so they can be reassigned like locals.
func (g *Generator) genFunction(def *typed.FunctionDef) error {
	outerScopes := g.ctx.scopes
	outerLoops := g.ctx.loops
	g.ctx.scopes = nil
	g.ctx.loops = nil
	g.fn = &function{}
	defer func() {
		g.ctx.scopes = outerScopes
		g.ctx.loops = outerLoops
		g.fn = nil
	}()

	g.ctx.pushScope()
	var params []string
	var spills []string
	for _, p := range def.Params {
		incoming := "%arg." + p.Name
		params = append(params, fmt.Sprintf("%s %s", irType(p.Type), incoming))
		slot := g.ctx.declare(p.Name)
		g.alloca(slot, p.Type)
		spills = append(spills, fmt.Sprintf("store %s %s, ptr %s", irType(p.Type), incoming, slot))
	}

	if err := g.genBlock(def.Body); err != nil {
		return err
	}

	// Falling off the end is only legal for void functions. Analysis does
	// not check that every path of a value function returns.
	if !g.fn.terminated {
		if def.Return == types.Void {
			g.emitTerminator("ret void")
		} else {
			g.emitTerminator("unreachable")
		}
	}

	fmt.Fprintf(&g.out, "define %s @%s(%s) {\n", irType(def.Return), def.Name, strings.Join(params, ", "))
	g.out.WriteString("entry:\n")
	for _, line := range g.fn.allocas {
		g.out.WriteString("  " + line + "\n")
	}
	for _, line := range spills {
		g.out.WriteString("  " + line + "\n")
	}
	g.out.WriteString(g.fn.body.String())
	g.out.WriteString("}\n\n")
	return nil
}

func (g *Generator) genBlock(block typed.Block) error {
	for _, stmt := range block {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genScopedBlock(block typed.Block) error {
	g.ctx.pushScope()
	defer g.ctx.popScope()
	return g.genBlock(block)
}

func (g *Generator) genStmt(stmt typed.Stmt) error {
	switch s := stmt.(type) {
	case *typed.FunctionDef:
		// Nested functions become module-level definitions after their parent.
		g.pending = append(g.pending, s)
		return nil

	case *typed.Return:
		return g.genReturn(s)

	case *typed.VarDecl:
		value, err := g.genExpr(s.Value)
		if err != nil {
			return err
		}
		// The value is computed before the binding, so `let x = x + 1;`
		// reads the outer x.
		slot := g.ctx.declare(s.Name)
		g.alloca(slot, s.Value.Type())
		g.emit("store %s %s, ptr %s", irType(s.Value.Type()), value, slot)
		return nil

	case *typed.VarAssign:
		slot, ok := g.ctx.slot(s.Name)
		if !ok {
			return &Error{Kind: UndefinedVariable, Message: fmt.Sprintf("no slot for variable '%s'", s.Name), Span: s.Range}
		}
		value, err := g.genExpr(s.Value)
		if err != nil {
			return err
		}
		g.emit("store %s %s, ptr %s", irType(s.Value.Type()), value, slot)
		return nil

	case *typed.If:
		return g.genIf(s)

	case *typed.Loop:
		return g.genLoop(s)

	case *typed.Break:
		loop, ok := g.ctx.innermostLoop()
		if !ok {
			return &Error{Kind: ControlFlow, Message: "break outside of a loop", Span: s.Range}
		}
		g.emitTerminator("br label %%%s", loop.end)
		return nil

	case *typed.Continue:
		loop, ok := g.ctx.innermostLoop()
		if !ok {
			return &Error{Kind: ControlFlow, Message: "continue outside of a loop", Span: s.Range}
		}
		g.emitTerminator("br label %%%s", loop.start)
		return nil

	case *typed.CallStmt:
		_, err := g.genCall(s.Call)
		return err
	}
	return &Error{Kind: Internal, Message: fmt.Sprintf("unhandled statement %T", stmt), Span: stmt.Span()}
}

func (g *Generator) genReturn(ret *typed.Return) error {
	if ret.Value == nil {
		g.emitTerminator("ret void")
		return nil
	}
	value, err := g.genExpr(ret.Value)
	if err != nil {
		return err
	}
	if ret.FnReturn == types.Void {
		// `return f();` where f is void.
		g.emitTerminator("ret void")
		return nil
	}
	g.emitTerminator("ret %s %s", irType(ret.FnReturn), value)
	return nil
}
