package sema

import (
	"fmt"

	"github.com/Hex5DA/sdw/internal/diag"
	"github.com/Hex5DA/sdw/internal/lexer"
	"github.com/Hex5DA/sdw/internal/types"
)

// ErrorKind classifies a semantic error.
type ErrorKind int

const (
	VariableNotFound ErrorKind = iota
	FunctionNotFound
	MismatchedTypes
	MismatchedFnRetTy
	MismatchedNumArgs
	ArgTyMismatch
	CondNotBool
	ReturnOutsideFn
	CannotReassignVariableType
	// CompilerNotInAScope is an internal invariant violation: a variable
	// operation ran with no scope on the stack.
	CompilerNotInAScope
	BreakOrContinueOutsideLoop
	FunctionRedefined
	UnknownType
	VoidValue
)

var kindNames = map[ErrorKind]string{
	VariableNotFound:           "VariableNotFound",
	FunctionNotFound:           "FunctionNotFound",
	MismatchedTypes:            "MismatchedTypes",
	MismatchedFnRetTy:          "MismatchedFnRetTy",
	MismatchedNumArgs:          "MismatchedNumArgs",
	ArgTyMismatch:              "ArgTyMismatch",
	CondNotBool:                "CondNotBool",
	ReturnOutsideFn:            "ReturnOutsideFn",
	CannotReassignVariableType: "CannotReassignVariableType",
	CompilerNotInAScope:        "CompilerNotInAScope",
	BreakOrContinueOutsideLoop: "BreakOrContinueOutsideLoop",
	FunctionRedefined:          "FunctionRedefined",
	UnknownType:                "UnknownType",
	VoidValue:                  "VoidValue",
}

var kindCodes = map[ErrorKind]diag.Code{
	VariableNotFound:           diag.CodeSemaVariableNotFound,
	FunctionNotFound:           diag.CodeSemaFunctionNotFound,
	MismatchedTypes:            diag.CodeSemaMismatchedTypes,
	MismatchedFnRetTy:          diag.CodeSemaMismatchedFnRetTy,
	MismatchedNumArgs:          diag.CodeSemaMismatchedNumArgs,
	ArgTyMismatch:              diag.CodeSemaArgTyMismatch,
	CondNotBool:                diag.CodeSemaCondNotBool,
	ReturnOutsideFn:            diag.CodeSemaReturnOutsideFn,
	CannotReassignVariableType: diag.CodeSemaCannotReassignVariableType,
	CompilerNotInAScope:        diag.CodeSemaCompilerNotInAScope,
	BreakOrContinueOutsideLoop: diag.CodeSemaBreakOutsideLoop,
	FunctionRedefined:          diag.CodeSemaFunctionRedefined,
	UnknownType:                diag.CodeSemaUnknownType,
	VoidValue:                  diag.CodeSemaVoidValue,
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the first semantic violation found. Which of the detail fields are
// meaningful depends on Kind:
//
//	MismatchedTypes             Expected=lhs, Found=rhs
//	MismatchedFnRetTy           Expected=declared, Found=returned
//	CannotReassignVariableType  Expected=declared, Found=assigned
//	ArgTyMismatch               Expected=parameter, Found=argument, Arg
//	MismatchedNumArgs           WantArgs, GotArgs
//	CondNotBool, VoidValue      Found
type Error struct {
	Kind     ErrorKind
	Name     string // variable, function or type name involved
	Expected types.Type
	Found    types.Type
	WantArgs int
	GotArgs  int
	Arg      int // 0-based argument index
	Span     lexer.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message())
}

// Message is the human-readable description without location.
func (e *Error) Message() string {
	switch e.Kind {
	case VariableNotFound:
		return fmt.Sprintf("variable `%s` not found in this scope", e.Name)
	case FunctionNotFound:
		return fmt.Sprintf("function `%s` is not defined", e.Name)
	case MismatchedTypes:
		return fmt.Sprintf("mismatched operand types: `%s` and `%s`", e.Expected, e.Found)
	case MismatchedFnRetTy:
		return fmt.Sprintf("function `%s` returns `%s`, but `%s` was returned", e.Name, e.Expected, e.Found)
	case MismatchedNumArgs:
		return fmt.Sprintf("function `%s` takes %d argument(s) but %d were supplied", e.Name, e.WantArgs, e.GotArgs)
	case ArgTyMismatch:
		return fmt.Sprintf("argument %d of `%s` must be `%s`, found `%s`", e.Arg+1, e.Name, e.Expected, e.Found)
	case CondNotBool:
		return fmt.Sprintf("condition must be `bool`, found `%s`", e.Found)
	case ReturnOutsideFn:
		return "`return` outside of a function"
	case CannotReassignVariableType:
		return fmt.Sprintf("cannot assign `%s` to variable `%s` of type `%s`", e.Found, e.Name, e.Expected)
	case CompilerNotInAScope:
		return "internal error: no scope is active"
	case BreakOrContinueOutsideLoop:
		return fmt.Sprintf("`%s` outside of a loop", e.Name)
	case FunctionRedefined:
		return fmt.Sprintf("function `%s` is defined more than once", e.Name)
	case UnknownType:
		return fmt.Sprintf("unknown type `%s`", e.Name)
	case VoidValue:
		return "a `void` value cannot be used here"
	}
	return "semantic error"
}

// ToDiagnostic converts a semantic error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	code, ok := kindCodes[e.Kind]
	if !ok {
		code = diag.Code("SEMA_UNKNOWN_ERROR")
	}
	d := diag.Diagnostic{
		Stage:    diag.StageSema,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  e.Message(),
		Span:     e.Span.Diag(),
	}
	switch e.Kind {
	case VariableNotFound:
		d = d.WithLabel("not found in this scope").WithHelp(fmt.Sprintf("declare it first with `let %s = ...;`", e.Name))
	case MismatchedFnRetTy, CannotReassignVariableType, ArgTyMismatch:
		d = d.WithLabel(fmt.Sprintf("expected `%s`, found `%s`", e.Expected, e.Found))
	case UnknownType:
		d = d.WithHelp("the available types are `int`, `bool` and `void`")
	case CompilerNotInAScope:
		d = d.WithNote("this is a compiler bug")
	}
	return d
}
