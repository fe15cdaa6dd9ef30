package parser

import (
	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/lexer"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.curTok.Type {
	case lexer.FN:
		return p.parseFunctionDef()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.LOOP:
		return p.parseLoopStmt()
	case lexer.BREAK:
		start := p.curTok.Span
		if err := p.expect(lexer.SEMICOLON, "`;`"); err != nil {
			return nil, err
		}
		return ast.NewBreak(mergeSpan(start, p.curTok.Span)), nil
	case lexer.CONTINUE:
		start := p.curTok.Span
		if err := p.expect(lexer.SEMICOLON, "`;`"); err != nil {
			return nil, err
		}
		return ast.NewContinue(mergeSpan(start, p.curTok.Span)), nil
	case lexer.IDENT:
		if p.peekTok.Type == lexer.LPAREN {
			return p.parseCallStmt()
		}
		return p.parseAssignStmt()
	default:
		return nil, p.fail(UnexpectedToken, p.curTok, "statement")
	}
}

// parseBlock parses `{ stmt* }` with curTok on the opening brace.
func (p *Parser) parseBlock() (ast.Block, lexer.Span, error) {
	if err := p.expectCur(lexer.LBRACE, "`{`"); err != nil {
		return nil, lexer.Span{}, err
	}
	start := p.curTok.Span
	block := ast.Block{}

	p.nextToken()
	for p.curTok.Type != lexer.RBRACE {
		if p.curTok.Type == lexer.EOF {
			return nil, lexer.Span{}, p.fail(TokenStreamExhausted, p.curTok, "`}`")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, lexer.Span{}, err
		}
		block = append(block, stmt)
		p.nextToken()
	}

	return block, mergeSpan(start, p.curTok.Span), nil
}

// parseFunctionDef parses `fn <type> <name>(<type> <name>, ...) { ... }`.
func (p *Parser) parseFunctionDef() (ast.Stmt, error) {
	start := p.curTok.Span

	ret, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.IDENT, "function name"); err != nil {
		return nil, err
	}
	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if err := p.expect(lexer.LPAREN, "`(`"); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.LBRACE, "`{`"); err != nil {
		return nil, err
	}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewFunctionDef(ret, name, params, body, mergeSpan(start, end)), nil
}

// parseParams parses a parameter list with curTok on `(` and leaves it on `)`.
// A trailing comma is rejected.
func (p *Parser) parseParams() ([]*ast.Param, error) {
	params := []*ast.Param{}
	if p.peekTok.Type == lexer.RPAREN {
		p.nextToken()
		return params, nil
	}

	for {
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.IDENT, "parameter name"); err != nil {
			return nil, err
		}
		name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)
		params = append(params, ast.NewParam(typ, name, mergeSpan(typ.Span(), name.Span())))

		switch p.peekTok.Type {
		case lexer.COMMA:
			p.nextToken()
		case lexer.RPAREN:
			p.nextToken()
			return params, nil
		default:
			return nil, p.fail(UnexpectedToken, p.peekTok, "`,` or `)`")
		}
	}
}

// parseTypeName consumes the identifier after curTok as a type name.
func (p *Parser) parseTypeName() (*ast.TypeName, error) {
	if err := p.expect(lexer.IDENT, "type name"); err != nil {
		return nil, err
	}
	return ast.NewTypeName(p.curTok.Literal, p.curTok.Span), nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
		return ast.NewReturn(nil, mergeSpan(start, p.curTok.Span)), nil
	}

	p.nextToken()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON, "`;`"); err != nil {
		return nil, err
	}
	return ast.NewReturn(value, mergeSpan(start, p.curTok.Span)), nil
}

func (p *Parser) parseLetStmt() (ast.Stmt, error) {
	start := p.curTok.Span

	if err := p.expect(lexer.IDENT, "variable name"); err != nil {
		return nil, err
	}
	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	value, err := p.parseInitializer()
	if err != nil {
		return nil, err
	}
	return ast.NewVarDecl(name, value, mergeSpan(start, p.curTok.Span)), nil
}

func (p *Parser) parseAssignStmt() (ast.Stmt, error) {
	start := p.curTok.Span
	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	value, err := p.parseInitializer()
	if err != nil {
		return nil, err
	}
	return ast.NewVarAssign(name, value, mergeSpan(start, p.curTok.Span)), nil
}

// parseInitializer parses `= <expr> ;` following the name in curTok.
func (p *Parser) parseInitializer() (ast.Expr, error) {
	if err := p.expect(lexer.ASSIGN, "`=`"); err != nil {
		return nil, err
	}
	p.nextToken()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON, "`;`"); err != nil {
		return nil, err
	}
	return value, nil
}

func (p *Parser) parseCallStmt() (ast.Stmt, error) {
	start := p.curTok.Span

	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON, "`;`"); err != nil {
		return nil, err
	}
	return ast.NewCallStmt(call, mergeSpan(start, p.curTok.Span)), nil
}

// parseIfStmt parses `if c { } (else if c { })* (else { })?`.
func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	start := p.curTok.Span

	cond, then, end, err := p.parseCondClause()
	if err != nil {
		return nil, err
	}

	var (
		elseIfs []*ast.ElseIf
		els     *ast.Else
	)
	for els == nil && p.peekTok.Type == lexer.ELSE {
		p.nextToken()
		elseStart := p.curTok.Span

		if p.peekTok.Type == lexer.IF {
			p.nextToken()
			c, body, clauseEnd, err := p.parseCondClause()
			if err != nil {
				return nil, err
			}
			elseIfs = append(elseIfs, ast.NewElseIf(c, body, mergeSpan(elseStart, clauseEnd)))
			end = clauseEnd
			continue
		}

		if err := p.expect(lexer.LBRACE, "`{` or `if`"); err != nil {
			return nil, err
		}
		body, clauseEnd, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		els = ast.NewElse(body, mergeSpan(elseStart, clauseEnd))
		end = clauseEnd
	}

	return ast.NewIf(cond, then, elseIfs, els, mergeSpan(start, end)), nil
}

// parseCondClause parses `<expr> { ... }` after the `if` in curTok.
func (p *Parser) parseCondClause() (ast.Expr, ast.Block, lexer.Span, error) {
	p.nextToken()
	if p.curTok.Type == lexer.EOF {
		return nil, nil, lexer.Span{}, p.fail(TokenStreamExhausted, p.curTok, "condition")
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, nil, lexer.Span{}, err
	}
	if err := p.expect(lexer.LBRACE, "`{`"); err != nil {
		return nil, nil, lexer.Span{}, err
	}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, nil, lexer.Span{}, err
	}
	return cond, body, end, nil
}

func (p *Parser) parseLoopStmt() (ast.Stmt, error) {
	start := p.curTok.Span

	if err := p.expect(lexer.LBRACE, "`{`"); err != nil {
		return nil, err
	}
	body, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewLoop(body, mergeSpan(start, end)), nil
}
