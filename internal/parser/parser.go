package parser

import (
	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/lexer"
)

type (
	prefixParseFn func() (ast.Expr, error)
	infixParseFn  func(ast.Expr) (ast.Expr, error)
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename attributes spans that the token stream cannot provide (such as
// end of input on an empty stream) to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Binding powers. An infix operator is consumed only while its power is
// strictly greater than the current minimum, so equal powers associate left.
const (
	precedenceLowest  = 0
	precedenceInvalid = 1 // operator-like tokens with no infix meaning
	precedenceCompare = 5 // below arithmetic: a + b < c is (a + b) < c
	precedenceSum     = 10
	precedenceProduct = 20
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   precedenceInvalid,
	lexer.PLUS:     precedenceSum,
	lexer.MINUS:    precedenceSum,
	lexer.ASTERISK: precedenceProduct,
	lexer.SLASH:    precedenceProduct,
	lexer.EQ:       precedenceCompare,
	lexer.NOT_EQ:   precedenceCompare,
	lexer.LT:       precedenceCompare,
	lexer.GT:       precedenceCompare,
	lexer.LE:       precedenceCompare,
	lexer.GE:       precedenceCompare,
}

// Parser is a recursive-descent statement parser with a Pratt expression
// parser. It stops at the first error.
//
// curTok is the token under examination and peekTok the single lookahead;
// both only move through nextToken. Every parse function starts with curTok on
// the first token of its construct and returns with curTok on the last one.
type Parser struct {
	tokens []lexer.Token
	pos    int

	curTok  lexer.Token
	peekTok lexer.Token

	// eofSpan is where the stream ran out: the span of the final token.
	eofSpan  lexer.Span
	filename string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser over tokens. The slice must not contain an EOF token;
// its end marks the end of input.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		tokens:    tokens,
		filename:  cfg.filename,
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
	}
	if n := len(tokens); n > 0 {
		last := tokens[n-1].Span
		p.eofSpan = lexer.Span{
			Filename:  last.Filename,
			StartLine: last.EndLine,
			StartCol:  last.EndCol,
			EndLine:   last.EndLine,
			EndCol:    last.EndCol + 1,
		}
	}

	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)

	p.registerInfix(lexer.PLUS, p.parseBinaryExpr)
	p.registerInfix(lexer.MINUS, p.parseBinaryExpr)
	p.registerInfix(lexer.ASTERISK, p.parseBinaryExpr)
	p.registerInfix(lexer.SLASH, p.parseBinaryExpr)
	p.registerInfix(lexer.EQ, p.parseComparisonExpr)
	p.registerInfix(lexer.NOT_EQ, p.parseComparisonExpr)
	p.registerInfix(lexer.LT, p.parseComparisonExpr)
	p.registerInfix(lexer.GT, p.parseComparisonExpr)
	p.registerInfix(lexer.LE, p.parseComparisonExpr)
	p.registerInfix(lexer.GE, p.parseComparisonExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a whole token stream as a program.
func Parse(tokens []lexer.Token, opts ...Option) (ast.Block, error) {
	return New(tokens, opts...).Parse()
}

// ParseExpr parses tokens as a single expression that must span the whole stream.
func ParseExpr(tokens []lexer.Token, opts ...Option) (ast.Expr, error) {
	p := New(tokens, opts...)
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peekTok.Type != lexer.EOF {
		return nil, p.fail(UnexpectedToken, p.peekTok, "end of expression")
	}
	return expr, nil
}

// Parse parses the program: statements until the end of input.
func (p *Parser) Parse() (ast.Block, error) {
	block := ast.Block{}
	for p.curTok.Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)
		p.nextToken()
	}
	return block, nil
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

// nextToken advances the token window. Past the end of the slice both slots
// hold an EOF token located at eofSpan.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.pos < len(p.tokens) {
		p.peekTok = p.tokens[p.pos]
		p.pos++
		return
	}
	p.peekTok = lexer.Token{Type: lexer.EOF, Span: p.eofSpan}
}

// expect promotes peekTok into curTok if it has type tt.
func (p *Parser) expect(tt lexer.TokenType, expected string) error {
	if p.peekTok.Type != tt {
		return p.fail(UnexpectedToken, p.peekTok, expected)
	}
	p.nextToken()
	return nil
}

// expectCur checks curTok without advancing.
func (p *Parser) expectCur(tt lexer.TokenType, expected string) error {
	if p.curTok.Type != tt {
		return p.fail(UnexpectedToken, p.curTok, expected)
	}
	return nil
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Type]; ok {
		return prec
	}
	return precedenceLowest
}

func mergeSpan(start, end lexer.Span) lexer.Span {
	return lexer.MergeSpans(start, end)
}
