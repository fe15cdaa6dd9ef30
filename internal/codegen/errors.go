package codegen

import (
	"fmt"

	"github.com/Hex5DA/sdw/internal/diag"
	"github.com/Hex5DA/sdw/internal/lexer"
)

// ErrorKind classifies a code generation failure. All of them indicate a typed
// tree that semantic analysis should have rejected.
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	ControlFlow
	Internal
)

// Error reports a lowering failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    lexer.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: internal compiler error: %s", e.Span, e.Message)
}

// ToDiagnostic converts a codegen error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	code := diag.CodeGenInternal
	switch e.Kind {
	case UndefinedVariable:
		code = diag.CodeGenUndefinedVariable
	case ControlFlow:
		code = diag.CodeGenControlFlowError
	}
	return diag.Diagnostic{
		Stage:    diag.StageCodegen,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  "internal compiler error: " + e.Message,
		Span:     e.Span.Diag(),
	}.WithNote("the program passed semantic analysis, so this is a compiler bug")
}
