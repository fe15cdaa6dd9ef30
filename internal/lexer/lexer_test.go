package lexer

import (
	"errors"
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `let x = 10;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New("", input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `= + - * / == != < > <= >= , ; ( ) { }`

	expected := []TokenType{
		ASSIGN, PLUS, MINUS, ASTERISK, SLASH,
		EQ, NOT_EQ, LT, GT, LE, GE,
		COMMA, SEMICOLON, LPAREN, RPAREN, LBRACE, RBRACE,
	}

	toks, err := Tokenize("", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, toks[i].Type)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `fn return let if else loop break continue true false int bool void _x1`

	expected := []TokenType{
		FN, RETURN, LET, IF, ELSE, LOOP, BREAK, CONTINUE, TRUE, FALSE,
		IDENT, IDENT, IDENT, IDENT,
	}

	toks, err := Tokenize("", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, toks[i].Type)
		}
	}
}

func TestSpansAreHalfOpen(t *testing.T) {
	input := "fn int main() {\n  return 42;\n}"

	toks, err := Tokenize("main.sdw", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ret, lit Token
	for _, tok := range toks {
		switch tok.Type {
		case RETURN:
			ret = tok
		case INT:
			lit = tok
		}
	}

	want := Span{Filename: "main.sdw", StartLine: 2, StartCol: 3, EndLine: 2, EndCol: 9}
	if ret.Span != want {
		t.Fatalf("expected return span %+v, got %+v", want, ret.Span)
	}
	want = Span{Filename: "main.sdw", StartLine: 2, StartCol: 10, EndLine: 2, EndCol: 12}
	if lit.Span != want {
		t.Fatalf("expected literal span %+v, got %+v", want, lit.Span)
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	toks, err := Tokenize("", "let x = 1; // trailing\n// whole line\nx = 2;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 9 {
		t.Fatalf("expected 9 tokens, got %d: %v", len(toks), toks)
	}
	if toks[5].Span.StartLine != 3 {
		t.Fatalf("expected x on line 3, got %d", toks[5].Span.StartLine)
	}
}

func TestMergeSpans(t *testing.T) {
	a := Span{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 4}
	b := Span{StartLine: 3, StartCol: 1, EndLine: 3, EndCol: 9}

	got := MergeSpans(a, b)
	want := Span{StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 9}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  LexerErrorKind
		col   int
	}{
		{"illegal rune", "let x = 1 @ 2;", ErrIllegalRune, 11},
		{"lone bang", "x ! y", ErrIllegalRune, 3},
		{"overflow", "let x = 99999999999999999999;", ErrIntegerOverflow, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize("", tt.input)
			var lexErr *LexerError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexerError, got %v", err)
			}
			if lexErr.Kind != tt.kind {
				t.Fatalf("expected kind %v, got %v", tt.kind, lexErr.Kind)
			}
			if lexErr.Span.StartCol != tt.col {
				t.Fatalf("expected column %d, got %d", tt.col, lexErr.Span.StartCol)
			}
		})
	}
}
