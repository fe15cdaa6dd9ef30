package lexer

import (
	"fmt"

	"github.com/Hex5DA/sdw/internal/diag"
)

// TokenType represents the type of a token
type TokenType string

// Span is a half-open source range. Lines and columns are 1-based; EndCol
// points one past the last character.
type Span struct {
	Filename  string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// MergeSpans combines the start of a with the end of b.
func MergeSpans(a, b Span) Span {
	filename := a.Filename
	if filename == "" {
		filename = b.Filename
	}
	return Span{
		Filename:  filename,
		StartLine: a.StartLine,
		StartCol:  a.StartCol,
		EndLine:   b.EndLine,
		EndCol:    b.EndCol,
	}
}

// IsZero reports whether the span carries no position.
func (s Span) IsZero() bool {
	return s.StartLine == 0 && s.StartCol == 0 && s.EndLine == 0 && s.EndCol == 0
}

func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.StartLine, s.StartCol)
	}
	return fmt.Sprintf("%d:%d", s.StartLine, s.StartCol)
}

// Diag converts the span into the diagnostics representation.
func (s Span) Diag() diag.Span {
	return diag.Span{
		Filename:  s.Filename,
		Line:      s.StartLine,
		Column:    s.StartCol,
		EndLine:   s.EndLine,
		EndColumn: s.EndCol,
	}
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string // exact source text
	Span    Span
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, INT:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	default:
		return string(t.Type)
	}
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT TokenType = "IDENT" // add, x, int
	INT   TokenType = "INT"   // 1343456

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"

	// Keywords
	FN       TokenType = "FN"
	RETURN   TokenType = "RETURN"
	LET      TokenType = "LET"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	LOOP     TokenType = "LOOP"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
)

// Type names (int, bool, void) are plain identifiers; the analyzer resolves them.
var keywords = map[string]TokenType{
	"fn":       FN,
	"return":   RETURN,
	"let":      LET,
	"if":       IF,
	"else":     ELSE,
	"loop":     LOOP,
	"break":    BREAK,
	"continue": CONTINUE,
	"true":     TRUE,
	"false":    FALSE,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
