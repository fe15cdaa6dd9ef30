package codegen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/google/go-cmp/cmp"

	"github.com/Hex5DA/sdw/internal/codegen"
	"github.com/Hex5DA/sdw/internal/ir"
	"github.com/Hex5DA/sdw/internal/lexer"
	"github.com/Hex5DA/sdw/internal/parser"
	"github.com/Hex5DA/sdw/internal/sema"
	"github.com/Hex5DA/sdw/internal/typed"
	"github.com/Hex5DA/sdw/internal/types"
)

func emitSource(t *testing.T, src string, opts ...codegen.Option) string {
	t.Helper()

	toks, err := lexer.Tokenize("test.sdw", src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	block, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	checked, err := sema.Check(block)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	out, err := codegen.Emit(checked, opts...)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return out
}

// emitModule emits src, reads the IR back and verifies its structure.
func emitModule(t *testing.T, src string) *ir.Module {
	t.Helper()

	out := emitSource(t, src)
	m, err := ir.Parse(out)
	if err != nil {
		t.Fatalf("read back IR: %v\n%s", err, out)
	}
	if err := ir.Verify(m); err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	return m
}

func blockWithPrefix(t *testing.T, fn *ir.Function, prefix string) *ir.Block {
	t.Helper()

	for _, b := range fn.Blocks {
		if strings.HasPrefix(b.Label, prefix) {
			return b
		}
	}
	t.Fatalf("no block labelled %s* in @%s", prefix, fn.Name)
	return nil
}

func assertIR(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(strings.TrimSpace(want), strings.TrimSpace(got)); diff != "" {
		t.Fatalf("IR mismatch (-want +got):\n%s", diff)
	}
}

func TestFunctionWithParameters(t *testing.T) {
	got := emitSource(t, "fn int add(int a, int b) { return a + b; }")

	want := heredoc.Doc(`
		define i64 @add(i64 %arg.a, i64 %arg.b) {
		entry:
		  %a.1 = alloca i64
		  %b.2 = alloca i64
		  store i64 %arg.a, ptr %a.1
		  store i64 %arg.b, ptr %b.2
		  %t.3 = load i64, ptr %a.1
		  %t.4 = load i64, ptr %b.2
		  %t.5 = add i64 %t.3, %t.4
		  ret i64 %t.5
		}
	`)
	assertIR(t, want, got)
}

func TestShadowedVariableGetsItsOwnSlot(t *testing.T) {
	got := emitSource(t, heredoc.Doc(`
		let x = 1;
		if true {
		    let x = false;
		    x = true;
		}
		x = 2;
	`))

	want := heredoc.Doc(`
		define void @sdw.toplevel() {
		entry:
		  %x.1 = alloca i64
		  %x.5 = alloca i1
		  store i64 1, ptr %x.1
		  br i1 1, label %if.then.3, label %if.else.4
		if.then.3:
		  store i1 0, ptr %x.5
		  store i1 1, ptr %x.5
		  br label %if.end.2
		if.else.4:
		  br label %if.end.2
		if.end.2:
		  store i64 2, ptr %x.1
		  ret void
		}
	`)
	assertIR(t, want, got)
}

func TestElseIfChainSharesOneExit(t *testing.T) {
	m := emitModule(t, heredoc.Doc(`
		fn int pick(bool a, bool b) {
		    let r = 0;
		    if a { r = 1; } else if b { r = 2; } else { r = 3; }
		    return r;
		}
	`))

	fn := m.Function("pick")
	if fn == nil {
		t.Fatal("expected @pick")
	}
	if got := fn.CondBranches(); got != 2 {
		t.Fatalf("expected 2 conditional branches, got %d", got)
	}

	exit := blockWithPrefix(t, fn, "if.end.")
	if len(exit.Preds) != 3 {
		t.Fatalf("expected 3 bodies to reach the exit, got %v", exit.Preds)
	}
	for _, label := range exit.Preds {
		body := fn.Block(label)
		if diff := cmp.Diff([]string{exit.Label}, body.Succs); diff != "" {
			t.Fatalf("body %s must only branch to the exit (-want +got):\n%s", label, diff)
		}
		if fn.Dominates(label, exit.Label) {
			t.Fatalf("body %s must not dominate the shared exit", label)
		}
	}
	if !fn.Dominates("entry", exit.Label) {
		t.Fatal("entry must dominate the exit")
	}
}

func TestLoopBreakAndContinue(t *testing.T) {
	m := emitModule(t, heredoc.Doc(`
		fn int count(int n) {
		    let i = 0;
		    loop {
		        if i == n { break; }
		        i = i + 1;
		        continue;
		    }
		    return i;
		}
	`))
	fn := m.Function("count")

	start := blockWithPrefix(t, fn, "loop.start.")
	end := blockWithPrefix(t, fn, "loop.end.")
	if len(start.Preds) != 2 || start.Preds[0] != "entry" {
		t.Fatalf("expected entry and the continue to reach the loop head, got %v", start.Preds)
	}
	if len(end.Preds) != 1 || !strings.HasPrefix(end.Preds[0], "if.then.") {
		t.Fatalf("expected only the break to reach the loop exit, got %v", end.Preds)
	}
	for _, b := range fn.Blocks {
		if strings.HasPrefix(b.Label, "dead.") {
			t.Fatalf("unexpected dead block %s", b.Label)
		}
	}
	if !fn.Dominates(start.Label, end.Label) {
		t.Fatalf("loop head %s must dominate the exit %s", start.Label, end.Label)
	}
	if op := end.Terminator().Opcode(); op != "ret" {
		t.Fatalf("expected the loop exit to return, got %s", op)
	}
}

func TestCodeAfterReturnIsIsolated(t *testing.T) {
	m := emitModule(t, "fn int f() { return 1; let x = 2; }")
	fn := m.Function("f")

	dead := blockWithPrefix(t, fn, "dead.")
	if len(dead.Preds) != 0 || fn.Reachable()[dead.Label] {
		t.Fatalf("dead block must be unreachable, got preds %v", dead.Preds)
	}
	if op := dead.Terminator().Opcode(); op != "unreachable" {
		t.Fatalf("expected value function to end in unreachable, got %s", op)
	}
}

func TestVoidFunctionsAndCalls(t *testing.T) {
	m := emitModule(t, "fn void p(int a) { } p(1); fn void q() { return p(2); }")

	p := m.Function("p")
	if op := p.Blocks[len(p.Blocks)-1].Terminator().Text; op != "ret void" {
		t.Fatalf("expected void fall-through to return, got %q", op)
	}

	top := m.Function(codegen.ToplevelFunction)
	if top == nil {
		t.Fatal("expected a toplevel wrapper")
	}
	var calls []string
	for _, instr := range top.Blocks[0].Instrs {
		if instr.Opcode() == "call" {
			calls = append(calls, instr.Text)
		}
	}
	if diff := cmp.Diff([]string{"call void @p(i64 1)"}, calls); diff != "" {
		t.Fatalf("toplevel calls mismatch (-want +got):\n%s", diff)
	}

	q := m.Function("q").Blocks[0].Instrs
	if got := q[len(q)-1].Text; got != "ret void" {
		t.Fatalf("expected forwarded void call to return void, got %q", got)
	}
}

func TestToplevelWrapperCannotBeShadowed(t *testing.T) {
	m := emitModule(t, "fn void __sdw_toplevel() { } fn void sdw() { } __sdw_toplevel(); sdw();")

	var names []string
	for _, fn := range m.Functions {
		names = append(names, fn.Name)
	}
	want := []string{"__sdw_toplevel", "sdw", codegen.ToplevelFunction}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("function names mismatch (-want +got):\n%s", diff)
	}
}

func TestFunctionOrder(t *testing.T) {
	m := emitModule(t, heredoc.Doc(`
		let x = outer();
		fn int outer() {
		    fn int inner() { return 1; }
		    return inner();
		}
		fn bool last() { return outer() == 1; }
	`))

	var names []string
	for _, fn := range m.Functions {
		names = append(names, fn.Name)
	}
	want := []string{"outer", "inner", "last", codegen.ToplevelFunction}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("function order mismatch (-want +got):\n%s", diff)
	}
}

func TestComparisonsAndArithmetic(t *testing.T) {
	out := emitSource(t, "fn bool f(int a, bool b) { let c = a / 2 - 1 >= a * 3; return c != b; }")

	for _, want := range []string{
		"sdiv i64",
		"sub i64",
		"mul i64",
		"icmp sge i64",
		"icmp ne i1",
		"ret i1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestComparisonPredicates(t *testing.T) {
	tests := []struct {
		op   string
		ty   string
		want string
	}{
		{op: "<", ty: "int", want: "icmp slt i64"},
		{op: ">", ty: "int", want: "icmp sgt i64"},
		{op: "<=", ty: "int", want: "icmp sle i64"},
		{op: ">=", ty: "int", want: "icmp sge i64"},
		{op: "<", ty: "bool", want: "icmp ult i1"},
		{op: ">", ty: "bool", want: "icmp ugt i1"},
		{op: "<=", ty: "bool", want: "icmp ule i1"},
		{op: ">=", ty: "bool", want: "icmp uge i1"},
		{op: "==", ty: "bool", want: "icmp eq i1"},
		{op: "!=", ty: "int", want: "icmp ne i64"},
	}

	for _, tt := range tests {
		t.Run(tt.ty+" "+tt.op, func(t *testing.T) {
			m := emitModule(t, "fn bool f("+tt.ty+" a, "+tt.ty+" b) { return a "+tt.op+" b; }")

			var got []string
			for _, instr := range m.Function("f").Blocks[0].Instrs {
				if instr.Opcode() == "icmp" {
					got = append(got, instr.Text)
				}
			}
			if len(got) != 1 || !strings.Contains(got[0], "= "+tt.want+" ") {
				t.Fatalf("expected one %q, got %v", tt.want, got)
			}
		})
	}
}

func TestBoolOrderingIsUnsigned(t *testing.T) {
	out := emitSource(t, "fn int main() { let lt = false < true; if lt { return 1; } return 0; }")

	if !strings.Contains(out, "icmp ult i1 0, 1") {
		t.Fatalf("expected false < true to compare unsigned, got:\n%s", out)
	}
}

func TestModuleHeader(t *testing.T) {
	out := emitSource(t, "fn void main() { }", codegen.WithModuleName("main.sdw"))

	m, err := ir.Parse(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Name != "main.sdw" {
		t.Fatalf("expected module name main.sdw, got %q", m.Name)
	}
}

func TestGenerateIsRepeatable(t *testing.T) {
	block := typed.Block{
		&typed.VarDecl{Name: "x", Value: &typed.IntLit{Value: 4}},
		&typed.Loop{Body: typed.Block{&typed.Break{}}},
	}

	first, err := codegen.Emit(block)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	var sb strings.Builder
	g := codegen.NewGenerator(&sb)
	for i := 0; i < 2; i++ {
		sb.Reset()
		if err := g.Generate(block); err != nil {
			t.Fatalf("generate: %v", err)
		}
		if diff := cmp.Diff(first, sb.String()); diff != "" {
			t.Fatalf("run %d differs (-want +got):\n%s", i, diff)
		}
	}
}

func TestInternalErrors(t *testing.T) {
	tests := []struct {
		name  string
		block typed.Block
		kind  codegen.ErrorKind
	}{
		{
			name:  "break without loop",
			block: typed.Block{&typed.Break{}},
			kind:  codegen.ControlFlow,
		},
		{
			name:  "continue without loop",
			block: typed.Block{&typed.Continue{}},
			kind:  codegen.ControlFlow,
		},
		{
			name:  "unbound variable",
			block: typed.Block{&typed.VarAssign{Name: "ghost", Value: &typed.IntLit{Value: 1}}},
			kind:  codegen.UndefinedVariable,
		},
		{
			name: "unbound read",
			block: typed.Block{&typed.FunctionDef{
				Name:   "f",
				Return: types.Int,
				Body:   typed.Block{&typed.Return{Value: &typed.Variable{Name: "ghost", Ty: types.Int}, FnReturn: types.Int}},
			}},
			kind: codegen.UndefinedVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codegen.Emit(tt.block)
			var cerr *codegen.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *codegen.Error, got %v", err)
			}
			if cerr.Kind != tt.kind {
				t.Fatalf("expected kind %d, got %d", tt.kind, cerr.Kind)
			}
			if d := cerr.ToDiagnostic(); !strings.HasPrefix(string(d.Code), "CODEGEN_") {
				t.Fatalf("unexpected diagnostic code %s", d.Code)
			}
		})
	}
}
