// Package typed holds the output of semantic analysis: the syntax tree with a
// resolved type on every expression. Values are not modified after analysis.
package typed

import (
	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/lexer"
	"github.com/Hex5DA/sdw/internal/types"
)

// Node is any typed tree node.
type Node interface {
	Span() lexer.Span
}

// Stmt is a typed statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a typed expression.
type Expr interface {
	Node
	Type() types.Type
	exprNode()
}

// Block is an ordered sequence of typed statements.
type Block []Stmt

type Param struct {
	Name  string
	Type  types.Type
	Range lexer.Span
}

type FunctionDef struct {
	Name   string
	Params []Param
	Return types.Type
	Body   Block
	Range  lexer.Span
}

// Signature rebuilds the function's signature.
func (d *FunctionDef) Signature() types.FunctionSignature {
	sig := types.FunctionSignature{Name: d.Name, Return: d.Return, Span: d.Range}
	for _, p := range d.Params {
		sig.Params = append(sig.Params, p.Type)
		sig.ParamNames = append(sig.ParamNames, p.Name)
	}
	return sig
}

// Return carries the enclosing function's declared return type so codegen
// never has to look it up. Value is nil for `return;`.
type Return struct {
	Value    Expr
	FnReturn types.Type
	Range    lexer.Span
}

type VarDecl struct {
	Name  string
	Value Expr
	Range lexer.Span
}

type VarAssign struct {
	Name  string
	Value Expr
	Range lexer.Span
}

type ElseIf struct {
	Cond  Expr
	Body  Block
	Range lexer.Span
}

type Else struct {
	Body  Block
	Range lexer.Span
}

type If struct {
	Cond    Expr
	Then    Block
	ElseIfs []ElseIf
	Else    *Else
	Range   lexer.Span
}

type Loop struct {
	Body  Block
	Range lexer.Span
}

type Break struct {
	Range lexer.Span
}

type Continue struct {
	Range lexer.Span
}

type CallStmt struct {
	Call  *Call
	Range lexer.Span
}

func (d *FunctionDef) Span() lexer.Span { return d.Range }
func (s *Return) Span() lexer.Span      { return s.Range }
func (s *VarDecl) Span() lexer.Span     { return s.Range }
func (s *VarAssign) Span() lexer.Span   { return s.Range }
func (s *If) Span() lexer.Span          { return s.Range }
func (s *Loop) Span() lexer.Span        { return s.Range }
func (s *Break) Span() lexer.Span       { return s.Range }
func (s *Continue) Span() lexer.Span    { return s.Range }
func (s *CallStmt) Span() lexer.Span    { return s.Range }

func (*FunctionDef) stmtNode() {}
func (*Return) stmtNode()      {}
func (*VarDecl) stmtNode()     {}
func (*VarAssign) stmtNode()   {}
func (*If) stmtNode()          {}
func (*Loop) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*CallStmt) stmtNode()    {}

type IntLit struct {
	Value int64
	Range lexer.Span
}

type BoolLit struct {
	Value bool
	Range lexer.Span
}

type Variable struct {
	Name  string
	Ty    types.Type
	Range lexer.Span
}

// BinaryOp's type is its operands' (shared) type.
type BinaryOp struct {
	Left  Expr
	Op    ast.BinaryOperator
	Right Expr
	Ty    types.Type
	Range lexer.Span
}

// Comparison always has type bool; Operand is the type both sides share.
type Comparison struct {
	Left    Expr
	Op      ast.CompareOperator
	Right   Expr
	Operand types.Type
	Range   lexer.Span
}

type Call struct {
	Name  string
	Args  []Expr
	Ty    types.Type // callee's return type
	Range lexer.Span
}

type Group struct {
	Inner Expr
	Range lexer.Span
}

func (e *IntLit) Span() lexer.Span     { return e.Range }
func (e *BoolLit) Span() lexer.Span    { return e.Range }
func (e *Variable) Span() lexer.Span   { return e.Range }
func (e *BinaryOp) Span() lexer.Span   { return e.Range }
func (e *Comparison) Span() lexer.Span { return e.Range }
func (e *Call) Span() lexer.Span       { return e.Range }
func (e *Group) Span() lexer.Span      { return e.Range }

func (*IntLit) Type() types.Type     { return types.Int }
func (*BoolLit) Type() types.Type    { return types.Bool }
func (e *Variable) Type() types.Type { return e.Ty }
func (e *BinaryOp) Type() types.Type { return e.Ty }
func (*Comparison) Type() types.Type { return types.Bool }
func (e *Call) Type() types.Type     { return e.Ty }
func (e *Group) Type() types.Type    { return e.Inner.Type() }

func (*IntLit) exprNode()     {}
func (*BoolLit) exprNode()    {}
func (*Variable) exprNode()   {}
func (*BinaryOp) exprNode()   {}
func (*Comparison) exprNode() {}
func (*Call) exprNode()       {}
func (*Group) exprNode()      {}
