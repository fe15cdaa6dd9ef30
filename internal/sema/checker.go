// Package sema resolves names and checks types, turning a syntax tree into a
// typed tree.
package sema

import (
	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/lexer"
	"github.com/Hex5DA/sdw/internal/typed"
	"github.com/Hex5DA/sdw/internal/types"
)

// Checker performs semantic analysis. It keeps no state between Check calls.
type Checker struct {
	scope     *types.Scope
	functions map[string]*types.FunctionSignature
	loopDepth int
}

// NewChecker creates a new checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check analyzes a whole program and returns its typed tree, or the first
// semantic error in program order.
func (c *Checker) Check(block ast.Block) (typed.Block, error) {
	c.scope = types.NewScope(nil)
	c.functions = make(map[string]*types.FunctionSignature)
	c.loopDepth = 0
	defer func() { c.scope = nil }()

	return c.checkBlock(block)
}

// Check analyzes block with a fresh checker.
func Check(block ast.Block) (typed.Block, error) {
	return NewChecker().Check(block)
}

// Functions returns the function table built by the last Check call.
func (c *Checker) Functions() map[string]types.FunctionSignature {
	out := make(map[string]types.FunctionSignature, len(c.functions))
	for name, sig := range c.functions {
		out[name] = *sig
	}
	return out
}

// checkBlock declares every function defined directly in block, so siblings
// can call each other regardless of order, then checks statements in order.
func (c *Checker) checkBlock(block ast.Block) (typed.Block, error) {
	if err := c.declareFunctions(block); err != nil {
		return nil, err
	}

	out := make(typed.Block, 0, len(block))
	for _, stmt := range block {
		ts, err := c.checkStmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

// checkScopedBlock checks block inside a freshly pushed scope.
func (c *Checker) checkScopedBlock(block ast.Block) (typed.Block, error) {
	c.pushScope(types.NewScope(c.scope))
	defer c.popScope()
	return c.checkBlock(block)
}

func (c *Checker) declareFunctions(block ast.Block) error {
	for _, stmt := range block {
		def, ok := stmt.(*ast.FunctionDef)
		if !ok {
			continue
		}
		if _, exists := c.functions[def.Name.Name]; exists {
			return &Error{Kind: FunctionRedefined, Name: def.Name.Name, Span: def.Name.Span()}
		}

		ret, err := c.resolveType(def.ReturnType)
		if err != nil {
			return err
		}
		sig := &types.FunctionSignature{Name: def.Name.Name, Return: ret, Span: def.Span()}
		for _, param := range def.Params {
			typ, err := c.resolveType(param.Type)
			if err != nil {
				return err
			}
			if typ == types.Void {
				return &Error{Kind: VoidValue, Name: param.Name.Name, Found: types.Void, Span: param.Span()}
			}
			sig.Params = append(sig.Params, typ)
			sig.ParamNames = append(sig.ParamNames, param.Name.Name)
		}
		c.functions[def.Name.Name] = sig
	}
	return nil
}

func (c *Checker) resolveType(name *ast.TypeName) (types.Type, error) {
	typ, ok := types.Lookup(name.Name)
	if !ok {
		return types.Void, &Error{Kind: UnknownType, Name: name.Name, Span: name.Span()}
	}
	return typ, nil
}

func (c *Checker) pushScope(s *types.Scope) {
	c.scope = s
}

func (c *Checker) popScope() {
	if c.scope != nil {
		c.scope = c.scope.Parent
	}
}

// current returns the innermost scope.
func (c *Checker) current(span lexer.Span) (*types.Scope, error) {
	if c.scope == nil {
		return nil, &Error{Kind: CompilerNotInAScope, Span: span}
	}
	return c.scope, nil
}

// lookupVar resolves a variable through the scope stack, then through the
// enclosing function's parameters.
func (c *Checker) lookupVar(name string, span lexer.Span) (types.Type, error) {
	scope, err := c.current(span)
	if err != nil {
		return types.Void, err
	}
	if typ, ok := scope.Lookup(name); ok {
		return typ, nil
	}
	if fn := scope.EnclosingFunction(); fn != nil {
		if typ, ok := fn.Param(name); ok {
			return typ, nil
		}
	}
	return types.Void, &Error{Kind: VariableNotFound, Name: name, Span: span}
}
