package parser

import (
	"fmt"

	"github.com/Hex5DA/sdw/internal/diag"
	"github.com/Hex5DA/sdw/internal/lexer"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// UnexpectedToken: a token other than the expected one was found.
	UnexpectedToken ErrorKind = iota
	// TokenStreamExhausted: input ended while a construct was incomplete.
	TokenStreamExhausted
	// InvalidExpressionStart: the token cannot begin an expression.
	InvalidExpressionStart
	// UnknownInfixOperator: an operator-like token that has no infix meaning.
	UnknownInfixOperator
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case TokenStreamExhausted:
		return "TokenStreamExhausted"
	case InvalidExpressionStart:
		return "InvalidExpressionStart"
	case UnknownInfixOperator:
		return "UnknownInfixOperator"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case UnexpectedToken:
		return diag.CodeParseUnexpectedToken
	case TokenStreamExhausted:
		return diag.CodeParseTokenStreamExhausted
	case InvalidExpressionStart:
		return diag.CodeParseInvalidExpressionStart
	case UnknownInfixOperator:
		return diag.CodeParseUnknownInfixOperator
	}
	return diag.Code("PARSE_UNKNOWN_ERROR")
}

// Error is the first structural violation found in the token stream.
type Error struct {
	Kind     ErrorKind
	Found    lexer.Token // zero for TokenStreamExhausted
	Expected string      // human description, e.g. "`;`" or "type name"
	Span     lexer.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.message())
}

func (e *Error) message() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("expected %s, found %s", e.Expected, describe(e.Found))
	case TokenStreamExhausted:
		if e.Expected != "" {
			return fmt.Sprintf("unexpected end of input, expected %s", e.Expected)
		}
		return "unexpected end of input"
	case InvalidExpressionStart:
		return fmt.Sprintf("expected expression, found %s", describe(e.Found))
	case UnknownInfixOperator:
		return fmt.Sprintf("%s is not an infix operator", describe(e.Found))
	}
	return "parse error"
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.message(),
		Span:     e.Span.Diag(),
	}
	switch e.Kind {
	case TokenStreamExhausted:
		d = d.WithHelp("the file ends in the middle of a statement; check for a missing `}` or `;`")
	case UnexpectedToken:
		d = d.WithLabel("expected " + e.Expected)
	}
	return d
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENT:
		return fmt.Sprintf("identifier `%s`", tok.Literal)
	case lexer.INT:
		return fmt.Sprintf("integer `%s`", tok.Literal)
	}
	return fmt.Sprintf("`%s`", tok.Literal)
}

func (p *Parser) spanWithFilename(span lexer.Span) lexer.Span {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}
	return span
}

func (p *Parser) fail(kind ErrorKind, found lexer.Token, expected string) error {
	if found.Type == lexer.EOF {
		kind = TokenStreamExhausted
		found = lexer.Token{}
	}
	span := found.Span
	if kind == TokenStreamExhausted {
		span = p.eofSpan
	}
	return &Error{
		Kind:     kind,
		Found:    found,
		Expected: expected,
		Span:     p.spanWithFilename(span),
	}
}
