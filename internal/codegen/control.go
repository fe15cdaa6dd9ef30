package codegen

import "github.com/Hex5DA/sdw/internal/typed"

// genIf lowers an if chain. Every clause body ends by branching to one shared
// exit block, and each clause's false edge leads to the next clause's test.
func (g *Generator) genIf(stmt *typed.If) error {
	exit := g.ctx.label("if.end")

	next, err := g.genCondClause(stmt.Cond, stmt.Then, exit)
	if err != nil {
		return err
	}
	for _, clause := range stmt.ElseIfs {
		g.emitLabel(next)
		next, err = g.genCondClause(clause.Cond, clause.Body, exit)
		if err != nil {
			return err
		}
	}

	g.emitLabel(next)
	if stmt.Else != nil {
		if err := g.genScopedBlock(stmt.Else.Body); err != nil {
			return err
		}
	}
	g.emitTerminator("br label %%%s", exit)
	g.emitLabel(exit)
	return nil
}

// genCondClause emits one test and its body, returning the label taken when
// the condition is false.
func (g *Generator) genCondClause(cond typed.Expr, body typed.Block, exit string) (string, error) {
	value, err := g.genExpr(cond)
	if err != nil {
		return "", err
	}
	then := g.ctx.label("if.then")
	otherwise := g.ctx.label("if.else")
	g.emitCondBranch(value, then, otherwise)

	g.emitLabel(then)
	if err := g.genScopedBlock(body); err != nil {
		return "", err
	}
	g.emitTerminator("br label %%%s", exit)
	return otherwise, nil
}

// genLoop lowers an infinite loop. The end block is only reachable through
// break.
func (g *Generator) genLoop(loop *typed.Loop) error {
	labels := loopLabels{
		start: g.ctx.label("loop.start"),
		end:   g.ctx.label("loop.end"),
	}
	g.emitTerminator("br label %%%s", labels.start)
	g.emitLabel(labels.start)

	g.ctx.pushLoop(labels)
	err := g.genScopedBlock(loop.Body)
	g.ctx.popLoop()
	if err != nil {
		return err
	}

	g.emitTerminator("br label %%%s", labels.start)
	g.emitLabel(labels.end)
	return nil
}
