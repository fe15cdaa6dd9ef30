package ast

import "github.com/Hex5DA/sdw/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Block is an ordered statement sequence; order is execution order.
type Block []Stmt

// Ident is a spanned identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// TypeName is a written type such as `int`. It is resolved by the analyzer.
type TypeName struct {
	Name string
	span lexer.Span
}

// Span returns the type name span.
func (t *TypeName) Span() lexer.Span { return t.span }

// NewTypeName constructs a type name node.
func NewTypeName(name string, span lexer.Span) *TypeName {
	return &TypeName{Name: name, span: span}
}

// Param represents a function parameter.
type Param struct {
	Type *TypeName
	Name *Ident
	span lexer.Span
}

// Span returns the parameter span.
func (p *Param) Span() lexer.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(typ *TypeName, name *Ident, span lexer.Span) *Param {
	return &Param{Type: typ, Name: name, span: span}
}

// FunctionDef represents `fn <type> <name>(<params>) { <body> }`.
type FunctionDef struct {
	ReturnType *TypeName
	Name       *Ident
	Params     []*Param
	Body       Block
	span       lexer.Span
}

// Span returns the definition span.
func (d *FunctionDef) Span() lexer.Span { return d.span }

// NewFunctionDef constructs a function definition node.
func NewFunctionDef(ret *TypeName, name *Ident, params []*Param, body Block, span lexer.Span) *FunctionDef {
	return &FunctionDef{
		ReturnType: ret,
		Name:       name,
		Params:     params,
		Body:       body,
		span:       span,
	}
}

func (*FunctionDef) stmtNode() {}

// Return represents `return;` or `return <expr>;`. Value is nil for the bare form.
type Return struct {
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *Return) Span() lexer.Span { return s.span }

// NewReturn constructs a return statement.
func NewReturn(value Expr, span lexer.Span) *Return {
	return &Return{Value: value, span: span}
}

func (*Return) stmtNode() {}

// VarDecl represents `let <name> = <expr>;`.
type VarDecl struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *VarDecl) Span() lexer.Span { return s.span }

// NewVarDecl constructs a variable declaration.
func NewVarDecl(name *Ident, value Expr, span lexer.Span) *VarDecl {
	return &VarDecl{Name: name, Value: value, span: span}
}

func (*VarDecl) stmtNode() {}

// VarAssign represents `<name> = <expr>;`.
type VarAssign struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *VarAssign) Span() lexer.Span { return s.span }

// NewVarAssign constructs an assignment.
func NewVarAssign(name *Ident, value Expr, span lexer.Span) *VarAssign {
	return &VarAssign{Name: name, Value: value, span: span}
}

func (*VarAssign) stmtNode() {}

// ElseIf is one `else if <cond> { <body> }` clause.
type ElseIf struct {
	Cond Expr
	Body Block
	span lexer.Span
}

// Span returns the clause span.
func (c *ElseIf) Span() lexer.Span { return c.span }

// NewElseIf constructs an else-if clause.
func NewElseIf(cond Expr, body Block, span lexer.Span) *ElseIf {
	return &ElseIf{Cond: cond, Body: body, span: span}
}

// Else is the trailing `else { <body> }` of a conditional.
type Else struct {
	Body Block
	span lexer.Span
}

// Span returns the clause span.
func (c *Else) Span() lexer.Span { return c.span }

// NewElse constructs an else clause.
func NewElse(body Block, span lexer.Span) *Else {
	return &Else{Body: body, span: span}
}

// If represents a conditional chain. ElseIfs keeps source order; Else is nil
// when absent.
type If struct {
	Cond    Expr
	Then    Block
	ElseIfs []*ElseIf
	Else    *Else
	span    lexer.Span
}

// Span returns the statement span.
func (s *If) Span() lexer.Span { return s.span }

// NewIf constructs a conditional.
func NewIf(cond Expr, then Block, elseIfs []*ElseIf, els *Else, span lexer.Span) *If {
	return &If{Cond: cond, Then: then, ElseIfs: elseIfs, Else: els, span: span}
}

func (*If) stmtNode() {}

// Loop represents `loop { <body> }`.
type Loop struct {
	Body Block
	span lexer.Span
}

// Span returns the statement span.
func (s *Loop) Span() lexer.Span { return s.span }

// NewLoop constructs a loop.
func NewLoop(body Block, span lexer.Span) *Loop {
	return &Loop{Body: body, span: span}
}

func (*Loop) stmtNode() {}

// Break represents `break;`.
type Break struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *Break) Span() lexer.Span { return s.span }

// NewBreak constructs a break statement.
func NewBreak(span lexer.Span) *Break { return &Break{span: span} }

func (*Break) stmtNode() {}

// Continue represents `continue;`.
type Continue struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *Continue) Span() lexer.Span { return s.span }

// NewContinue constructs a continue statement.
func NewContinue(span lexer.Span) *Continue { return &Continue{span: span} }

func (*Continue) stmtNode() {}

// CallStmt is a call evaluated for its effect: `<name>(<args>);`.
type CallStmt struct {
	Call *Call
	span lexer.Span
}

// Span returns the statement span.
func (s *CallStmt) Span() lexer.Span { return s.span }

// NewCallStmt constructs a call statement.
func NewCallStmt(call *Call, span lexer.Span) *CallStmt {
	return &CallStmt{Call: call, span: span}
}

func (*CallStmt) stmtNode() {}
