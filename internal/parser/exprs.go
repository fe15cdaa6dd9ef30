package parser

import (
	"strconv"

	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/lexer"
)

var binaryOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.PLUS:     ast.Add,
	lexer.MINUS:    ast.Sub,
	lexer.ASTERISK: ast.Mul,
	lexer.SLASH:    ast.Div,
}

var compareOperators = map[lexer.TokenType]ast.CompareOperator{
	lexer.EQ:     ast.Equal,
	lexer.NOT_EQ: ast.NotEqual,
	lexer.LT:     ast.LessThan,
	lexer.GT:     ast.GreaterThan,
	lexer.LE:     ast.LessEqual,
	lexer.GE:     ast.GreaterEqual,
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseExprPrecedence(precedenceLowest)
}

// parseExprPrecedence is the precedence-climbing loop: parse a prefix, then
// fold infix operators that bind tighter than precedence.
func (p *Parser) parseExprPrecedence(precedence int) (ast.Expr, error) {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		return nil, p.fail(InvalidExpressionStart, p.curTok, "expression")
	}

	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return nil, p.fail(UnknownInfixOperator, p.peekTok, "operator")
		}

		p.nextToken()

		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parseIntegerLiteral() (ast.Expr, error) {
	value, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		// The lexer range-checks literals; a hand-built stream may not.
		return nil, p.fail(InvalidExpressionStart, p.curTok, "64-bit integer")
	}
	return ast.NewIntLit(value, p.curTok.Span), nil
}

func (p *Parser) parseBoolLiteral() (ast.Expr, error) {
	return ast.NewBoolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span), nil
}

// parseIdentifier parses a variable read, or a call when `(` follows.
func (p *Parser) parseIdentifier() (ast.Expr, error) {
	if p.peekTok.Type == lexer.LPAREN {
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		return call, nil
	}
	return ast.NewVariable(p.curTok.Literal, p.curTok.Span), nil
}

func (p *Parser) parseGroupedExpr() (ast.Expr, error) {
	start := p.curTok.Span

	p.nextToken()
	inner, err := p.parseExprPrecedence(precedenceLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN, "`)`"); err != nil {
		return nil, err
	}

	return ast.NewGroup(inner, mergeSpan(start, p.curTok.Span)), nil
}

func (p *Parser) parseBinaryExpr(left ast.Expr) (ast.Expr, error) {
	op := binaryOperators[p.curTok.Type]
	precedence := precedences[p.curTok.Type]

	p.nextToken()
	right, err := p.parseExprPrecedence(precedence)
	if err != nil {
		return nil, err
	}

	return ast.NewBinaryOp(left, op, right, mergeSpan(left.Span(), right.Span())), nil
}

func (p *Parser) parseComparisonExpr(left ast.Expr) (ast.Expr, error) {
	op := compareOperators[p.curTok.Type]
	precedence := precedences[p.curTok.Type]

	p.nextToken()
	right, err := p.parseExprPrecedence(precedence)
	if err != nil {
		return nil, err
	}

	return ast.NewComparison(left, op, right, mergeSpan(left.Span(), right.Span())), nil
}

// parseCall parses `name(args)` with curTok on the name.
func (p *Parser) parseCall() (*ast.Call, error) {
	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if err := p.expect(lexer.LPAREN, "`(`"); err != nil {
		return nil, err
	}

	args := []ast.Expr{}
	if p.peekTok.Type == lexer.RPAREN {
		p.nextToken()
		return ast.NewCall(name, args, mergeSpan(name.Span(), p.curTok.Span)), nil
	}

	for {
		p.nextToken()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch p.peekTok.Type {
		case lexer.COMMA:
			p.nextToken()
		case lexer.RPAREN:
			p.nextToken()
			return ast.NewCall(name, args, mergeSpan(name.Span(), p.curTok.Span)), nil
		default:
			return nil, p.fail(UnexpectedToken, p.peekTok, "`,` or `)`")
		}
	}
}
