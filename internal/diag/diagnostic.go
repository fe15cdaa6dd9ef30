package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageSema    Stage = "sema"
	StageCodegen Stage = "codegen"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerIllegalRune     Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerIntegerOverflow Code = "LEXER_INTEGER_OVERFLOW"

	// Parser errors
	CodeParseUnexpectedToken        Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseTokenStreamExhausted   Code = "PARSE_TOKEN_STREAM_EXHAUSTED"
	CodeParseInvalidExpressionStart Code = "PARSE_INVALID_EXPRESSION_START"
	CodeParseUnknownInfixOperator   Code = "PARSE_UNKNOWN_INFIX_OPERATOR"

	// Semantic errors
	CodeSemaVariableNotFound           Code = "SEMA_VARIABLE_NOT_FOUND"
	CodeSemaFunctionNotFound           Code = "SEMA_FUNCTION_NOT_FOUND"
	CodeSemaMismatchedTypes            Code = "SEMA_MISMATCHED_TYPES"
	CodeSemaMismatchedFnRetTy          Code = "SEMA_MISMATCHED_FN_RET_TY"
	CodeSemaMismatchedNumArgs          Code = "SEMA_MISMATCHED_NUM_ARGS"
	CodeSemaArgTyMismatch              Code = "SEMA_ARG_TY_MISMATCH"
	CodeSemaCondNotBool                Code = "SEMA_COND_NOT_BOOL"
	CodeSemaReturnOutsideFn            Code = "SEMA_RETURN_OUTSIDE_FN"
	CodeSemaCannotReassignVariableType Code = "SEMA_CANNOT_REASSIGN_VARIABLE_TYPE"
	CodeSemaCompilerNotInAScope        Code = "SEMA_COMPILER_NOT_IN_A_SCOPE"
	CodeSemaBreakOutsideLoop           Code = "SEMA_BREAK_OR_CONTINUE_OUTSIDE_LOOP"
	CodeSemaFunctionRedefined          Code = "SEMA_FUNCTION_REDEFINED"
	CodeSemaUnknownType                Code = "SEMA_UNKNOWN_TYPE"
	CodeSemaVoidValue                  Code = "SEMA_VOID_VALUE"

	// Codegen errors
	CodeGenUndefinedVariable Code = "CODEGEN_UNDEFINED_VARIABLE"
	CodeGenControlFlowError  Code = "CODEGEN_CONTROL_FLOW_ERROR"
	CodeGenInternal          Code = "CODEGEN_INTERNAL"
)

// Span represents a location in source code. EndColumn is exclusive.
type Span struct {
	Filename  string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Label    string // printed next to the underline
	Notes    []string
	Help     string
}

func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s", d.Span, d.Message)
	}
	return d.Message
}

// WithLabel returns a new diagnostic with the given underline label.
func (d Diagnostic) WithLabel(label string) Diagnostic {
	d.Label = label
	return d
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
