package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.sdw")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const addSource = "fn int add(int a, int b) { return a + b; }\n"

func TestBuildToStdout(t *testing.T) {
	path := writeSource(t, addSource)

	code, stdout, stderr := runCLI(t, "build", "-verify", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "define i64 @add(i64 %arg.a, i64 %arg.b) {") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestBuildToFile(t *testing.T) {
	path := writeSource(t, addSource)
	out := filepath.Join(t.TempDir(), "out", "add.ll")

	code, _, stderr := runCLI(t, "-v", "build", "-o", out, path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "; ModuleID = ") {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
	if !strings.Contains(stderr, "sdw: wrote "+out) {
		t.Fatalf("expected verbose log of the written file, got:\n%s", stderr)
	}
}

func TestBuildEmitTree(t *testing.T) {
	path := writeSource(t, addSource)

	code, stdout, stderr := runCLI(t, "build", "-emit", "tree", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "├ function 'add' returning 'int'") {
		t.Fatalf("unexpected tree:\n%s", stdout)
	}
}

func TestCheckReportsDiagnostic(t *testing.T) {
	path := writeSource(t, "let y = x;\n")

	code, _, stderr := runCLI(t, "check", path)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	for _, want := range []string{"error[SEMA_VARIABLE_NOT_FOUND]", "--> " + path + ":1:9", "^ not found in this scope"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected %q in:\n%s", want, stderr)
		}
	}
}

func TestCheckAndTreeSucceed(t *testing.T) {
	path := writeSource(t, addSource)

	code, stdout, _ := runCLI(t, "check", path)
	if code != 0 || stdout != path+": ok\n" {
		t.Fatalf("check: exit %d, output %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "tree", path)
	if code != 0 || !strings.Contains(stdout, "parameter 1: 'b' of type 'int'") {
		t.Fatalf("tree: exit %d, output:\n%s", code, stdout)
	}
}

func TestGoldenCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "test", filepath.Join("..", "..", "internal", "driver", "testdata"))
	if code != 0 {
		t.Fatalf("exit %d:\n%s%s", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "✓ add") || !strings.Contains(stdout, "0 failed") {
		t.Fatalf("unexpected summary:\n%s", stdout)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "sdw.toml")
	outDir := filepath.Join(dir, "build")
	if err := os.WriteFile(cfg, []byte("output_dir = '"+outDir+"'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, addSource)

	code, stdout, stderr := runCLI(t, "-config", cfg, "build", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != "" {
		t.Fatalf("expected output to go to output_dir, got:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(outDir, "main.ll")); err != nil {
		t.Fatalf("expected main.ll in output_dir: %v", err)
	}
}

func TestConfigFileTreeOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "sdw.toml")
	outDir := filepath.Join(dir, "build")
	if err := os.WriteFile(cfg, []byte("output_dir = '"+outDir+"'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, addSource)

	code, _, stderr := runCLI(t, "-config", cfg, "build", "-emit", "tree", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(outDir, "main.tree")); err != nil {
		t.Fatalf("expected main.tree in output_dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "main.ll")); err == nil {
		t.Fatal("tree output must not be written as main.ll")
	}
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{{}, {"frobnicate"}, {"build"}, {"check"}, {"tree", "a", "b"}} {
		if code, _, _ := runCLI(t, args...); code != 2 {
			t.Errorf("%v: expected exit 2, got %d", args, code)
		}
	}
}
