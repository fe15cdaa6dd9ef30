// Package driver runs the compiler stages in order and reports the first
// failure as a diagnostic.
package driver

import (
	"errors"
	"fmt"

	"github.com/Hex5DA/sdw/internal/ast"
	"github.com/Hex5DA/sdw/internal/codegen"
	"github.com/Hex5DA/sdw/internal/diag"
	"github.com/Hex5DA/sdw/internal/ir"
	"github.com/Hex5DA/sdw/internal/lexer"
	"github.com/Hex5DA/sdw/internal/parser"
	"github.com/Hex5DA/sdw/internal/sema"
	"github.com/Hex5DA/sdw/internal/typed"
)

// Options control a compilation.
type Options struct {
	// Verify reads the emitted IR back and checks its block structure.
	Verify bool
	// ModuleHeader prefixes the IR with the module name.
	ModuleHeader bool
	// Logf, when set, receives one line per completed stage.
	Logf func(format string, args ...any)
}

// Result holds the output of every stage.
type Result struct {
	Tokens []lexer.Token
	Syntax ast.Block
	Typed  typed.Block
	IR     string
}

// StageError is returned when a stage rejects the program.
type StageError struct {
	Diagnostic diag.Diagnostic
	Err        error
}

func (e *StageError) Error() string {
	return e.Diagnostic.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type diagnosable interface {
	error
	ToDiagnostic() diag.Diagnostic
}

func stageError(err error) error {
	var d diagnosable
	if errors.As(err, &d) {
		return &StageError{Diagnostic: d.ToDiagnostic(), Err: err}
	}
	return err
}

// Compile runs lexing, parsing, analysis and code generation over src.
// name is used for spans and the module header.
func Compile(name, src string, opts Options) (*Result, error) {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	res := &Result{}

	toks, err := lexer.Tokenize(name, src)
	if err != nil {
		return res, stageError(err)
	}
	res.Tokens = toks
	logf("lexed %s: %d tokens", name, len(toks))

	syntax, err := parser.Parse(toks, parser.WithFilename(name))
	if err != nil {
		return res, stageError(err)
	}
	res.Syntax = syntax
	logf("parsed %s: %d top-level statements", name, len(syntax))

	checked, err := sema.Check(syntax)
	if err != nil {
		return res, stageError(err)
	}
	res.Typed = checked
	logf("checked %s", name)

	var genOpts []codegen.Option
	if opts.ModuleHeader {
		genOpts = append(genOpts, codegen.WithModuleName(name))
	}
	out, err := codegen.Emit(checked, genOpts...)
	if err != nil {
		return res, stageError(err)
	}
	res.IR = out
	logf("generated %s: %d bytes of IR", name, len(out))

	if opts.Verify {
		if err := verify(out); err != nil {
			return res, err
		}
		logf("verified %s", name)
	}
	return res, nil
}

func verify(text string) error {
	m, err := ir.Parse(text)
	if err == nil {
		err = ir.Verify(m)
	}
	if err == nil {
		return nil
	}
	return &StageError{
		Diagnostic: diag.Diagnostic{
			Stage:    diag.StageCodegen,
			Severity: diag.SeverityError,
			Code:     diag.CodeGenInternal,
			Message:  fmt.Sprintf("generated IR is malformed: %v", err),
		}.WithNote("the program passed semantic analysis, so this is a compiler bug"),
		Err: err,
	}
}
