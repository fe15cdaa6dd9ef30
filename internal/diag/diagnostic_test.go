package diag_test

import (
	"bytes"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/google/go-cmp/cmp"

	"github.com/Hex5DA/sdw/internal/diag"
)

func TestFormatUnderlinesSpan(t *testing.T) {
	src := heredoc.Doc(`
		fn int main() {
		    return y;
		}
	`)

	d := diag.Diagnostic{
		Stage:    diag.StageSema,
		Severity: diag.SeverityError,
		Code:     diag.CodeSemaVariableNotFound,
		Message:  "variable `y` not found",
		Span:     diag.Span{Filename: "main.sdw", Line: 2, Column: 12, EndLine: 2, EndColumn: 13},
	}.WithLabel("not found in this scope").WithHelp("declare it with `let` first")

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf, diag.WithColor(false))
	f.AddSource("main.sdw", src)
	f.Format(d)

	want := heredoc.Doc(`
		error[SEMA_VARIABLE_NOT_FOUND]: variable ` + "`y`" + ` not found
		  --> main.sdw:2:12
		   |
		 1 | fn int main() {
		 2 |     return y;
		   |            ^ not found in this scope
		   |
		help: declare it with ` + "`let`" + ` first
	`)
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("formatted output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatMultiLineSpan(t *testing.T) {
	src := "let x = 1 +\n  2;\n"

	d := diag.Diagnostic{
		Code:    diag.CodeSemaMismatchedTypes,
		Message: "mismatched types",
		Span:    diag.Span{Filename: "a.sdw", Line: 1, Column: 9, EndLine: 2, EndColumn: 4},
	}

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf, diag.WithColor(false), diag.WithContext(0))
	f.AddSource("a.sdw", src)
	f.Format(d)

	want := heredoc.Doc(`
		error[SEMA_MISMATCHED_TYPES]: mismatched types
		  --> a.sdw:1:9
		   |
		 1 | let x = 1 +
		   |         ^^^
		 2 |   2;
		   | ^^^
		   |
	`)
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("formatted output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatWithoutSpan(t *testing.T) {
	d := diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  "nothing to compile",
	}.WithNote("the input file is empty")

	var buf bytes.Buffer
	diag.NewFormatter(&buf, diag.WithColor(false)).Format(d)

	want := "warning: nothing to compile\n  = note: the input file is empty\n"
	if got := buf.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDiagnosticError(t *testing.T) {
	d := diag.Diagnostic{
		Message: "bad",
		Span:    diag.Span{Filename: "f.sdw", Line: 3, Column: 4},
	}
	if got, want := d.Error(), "f.sdw:3:4: bad"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
