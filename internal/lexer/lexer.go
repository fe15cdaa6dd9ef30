package lexer

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/Hex5DA/sdw/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
	ErrIntegerOverflow
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrIntegerOverflow:
		return diag.CodeLexerIntegerOverflow
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e *LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     e.Span.Diag(),
	}
}

// Lexer represents the lexer state
type Lexer struct {
	filename string
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // line of ch, 1-based
	column   int  // column of ch, 1-based
}

// New creates a lexer over input. filename only decorates spans.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []rune(input),
		pos:      -1,
		line:     1,
	}
	l.read()
	return l
}

// read advances to the next rune, keeping line/column on the new rune.
func (l *Lexer) read() {
	prev := l.ch
	l.pos++
	switch {
	case l.pos == 0:
		l.column = 1
	case prev == '\n':
		l.line++
		l.column = 1
	default:
		l.column++
	}
	if l.pos >= len(l.input) {
		l.pos = len(l.input)
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) span(startLine, startCol int) Span {
	return Span{
		Filename:  l.filename,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   l.line,
		EndCol:    l.column,
	}
}

func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.read()
		case l.ch == '/' && l.peek() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.read()
			}
		default:
			return
		}
	}
}

// NextToken scans one token. At end of input it returns an EOF token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipTrivia()

	line, col, start := l.line, l.column, l.pos
	if l.atEOF() {
		return Token{Type: EOF, Span: l.span(line, col)}, nil
	}

	single := func(tt TokenType) (Token, error) {
		l.read()
		return Token{Type: tt, Literal: string(l.input[start:l.pos]), Span: l.span(line, col)}, nil
	}
	double := func(next rune, two, one TokenType) (Token, error) {
		if l.peek() == next {
			l.read()
			return single(two)
		}
		return single(one)
	}

	switch l.ch {
	case '+':
		return single(PLUS)
	case '-':
		return single(MINUS)
	case '*':
		return single(ASTERISK)
	case '/':
		return single(SLASH)
	case ',':
		return single(COMMA)
	case ';':
		return single(SEMICOLON)
	case '(':
		return single(LPAREN)
	case ')':
		return single(RPAREN)
	case '{':
		return single(LBRACE)
	case '}':
		return single(RBRACE)
	case '=':
		return double('=', EQ, ASSIGN)
	case '<':
		return double('=', LE, LT)
	case '>':
		return double('=', GE, GT)
	case '!':
		if l.peek() == '=' {
			l.read()
			return single(NOT_EQ)
		}
	}

	switch {
	case isIdentStart(l.ch):
		for isIdentPart(l.ch) {
			l.read()
		}
		lit := string(l.input[start:l.pos])
		return Token{Type: LookupIdent(lit), Literal: lit, Span: l.span(line, col)}, nil
	case isDigit(l.ch):
		for isDigit(l.ch) {
			l.read()
		}
		lit := string(l.input[start:l.pos])
		if _, err := strconv.ParseInt(lit, 10, 64); err != nil {
			return Token{}, &LexerError{
				Kind:    ErrIntegerOverflow,
				Message: fmt.Sprintf("integer literal %s does not fit in 64 bits", lit),
				Span:    l.span(line, col),
			}
		}
		return Token{Type: INT, Literal: lit, Span: l.span(line, col)}, nil
	}

	ch := l.ch
	l.read()
	return Token{}, &LexerError{
		Kind:    ErrIllegalRune,
		Message: fmt.Sprintf("unrecognised character %q", ch),
		Span:    l.span(line, col),
	}
}

// Tokenize scans the whole input. The returned slice does not include the
// trailing EOF token; the parser treats the end of the slice as exhaustion.
func Tokenize(filename, input string) ([]Token, error) {
	l := New(filename, input)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch < unicode.MaxASCII && unicode.IsLetter(ch))
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
