package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	settings, source, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
	if source.Path != "" {
		t.Fatalf("expected no source path, got %q", source.Path)
	}
}

func TestLoadPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sdw.toml", heredoc.Doc(`
		emit = "tree"
		verify = true

		[test]
		dir = "golden"
	`))
	writeFile(t, dir, "sdw.json", `{"emit": "ir"}`)

	settings, source, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if source.Format != FormatTOML {
		t.Fatalf("expected toml source, got %s", source.Format)
	}

	want := Default()
	want.Emit = EmitTree
	want.Verify = true
	want.Test.Dir = "golden"
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFallsBackToJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sdw.json", `{"output_dir": "out", "color": false, "test": {"update": true}}`)

	settings, source, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if source.Format != FormatJSON {
		t.Fatalf("expected json source, got %s", source.Format)
	}
	if settings.OutputDir != "out" || settings.Color || !settings.Test.Update {
		t.Fatalf("unexpected settings %+v", settings)
	}
	if settings.Emit != EmitIR || settings.Test.Dir != "testdata" {
		t.Fatalf("expected defaults for absent keys, got %+v", settings)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{name: "malformed toml", file: "sdw.toml", content: "emit = ", want: "parse settings"},
		{name: "unknown toml key", file: "sdw.toml", content: "colour = true\n", want: "parse settings"},
		{name: "unknown json key", file: "sdw.json", content: `{"colour": true}`, want: "parse settings"},
		{name: "bad emit", file: "sdw.toml", content: "emit = \"asm\"\n", want: "emit must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)
			_, _, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFileAndEncodeRoundTrip(t *testing.T) {
	want := Default()
	want.Emit = EmitTree
	want.OutputDir = "build"

	data, err := Encode(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := writeFile(t, t.TempDir(), "custom.toml", string(data))

	got, source, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if source.Path != path {
		t.Fatalf("expected source %s, got %s", path, source.Path)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}
