package ast

import "github.com/Hex5DA/sdw/internal/lexer"

// BinaryOperator is an arithmetic operator.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}

// CompareOperator is a relational or equality operator.
type CompareOperator int

const (
	Equal CompareOperator = iota
	NotEqual
	LessThan
	GreaterThan
	LessEqual
	GreaterEqual
)

func (op CompareOperator) String() string {
	switch op {
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	}
	return "?"
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	span  lexer.Span
}

// Span returns the literal span.
func (e *IntLit) Span() lexer.Span { return e.span }

// NewIntLit constructs an integer literal.
func NewIntLit(value int64, span lexer.Span) *IntLit {
	return &IntLit{Value: value, span: span}
}

func (*IntLit) exprNode() {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (e *BoolLit) Span() lexer.Span { return e.span }

// NewBoolLit constructs a boolean literal.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

func (*BoolLit) exprNode() {}

// Variable is a read of a named variable or parameter.
type Variable struct {
	Name string
	span lexer.Span
}

// Span returns the expression span.
func (e *Variable) Span() lexer.Span { return e.span }

// NewVariable constructs a variable reference.
func NewVariable(name string, span lexer.Span) *Variable {
	return &Variable{Name: name, span: span}
}

func (*Variable) exprNode() {}

// BinaryOp is an arithmetic operation.
type BinaryOp struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryOp) Span() lexer.Span { return e.span }

// NewBinaryOp constructs an arithmetic operation.
func NewBinaryOp(left Expr, op BinaryOperator, right Expr, span lexer.Span) *BinaryOp {
	return &BinaryOp{Left: left, Op: op, Right: right, span: span}
}

func (*BinaryOp) exprNode() {}

// Comparison is a relational or equality test.
type Comparison struct {
	Left  Expr
	Op    CompareOperator
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *Comparison) Span() lexer.Span { return e.span }

// NewComparison constructs a comparison.
func NewComparison(left Expr, op CompareOperator, right Expr, span lexer.Span) *Comparison {
	return &Comparison{Left: left, Op: op, Right: right, span: span}
}

func (*Comparison) exprNode() {}

// Call is a function call by name.
type Call struct {
	Name *Ident
	Args []Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *Call) Span() lexer.Span { return e.span }

// NewCall constructs a call expression.
func NewCall(name *Ident, args []Expr, span lexer.Span) *Call {
	return &Call{Name: name, Args: args, span: span}
}

func (*Call) exprNode() {}

// Group is a parenthesised expression, kept so spans stay exact.
type Group struct {
	Inner Expr
	span  lexer.Span
}

// Span returns the expression span including the parentheses.
func (e *Group) Span() lexer.Span { return e.span }

// NewGroup constructs a grouped expression.
func NewGroup(inner Expr, span lexer.Span) *Group {
	return &Group{Inner: inner, span: span}
}

func (*Group) exprNode() {}
