package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"

	"github.com/Hex5DA/sdw/internal/diag"
)

// Golden archive sections.
const (
	InputFile       = "input.sdw"
	ExpectedIRFile  = "expected.ll"
	ExpectedErrFile = "expected.err"
)

// CaseResult is the outcome of one golden archive.
type CaseResult struct {
	Name    string
	Path    string
	Passed  bool
	Updated bool
	Diff    string
	Err     error
}

// RunGolden compiles every *.txtar archive under dir and compares the output
// with its expected.ll or expected.err section. With update set, mismatching
// archives are rewritten with the actual output instead of failing.
// Results are sorted by case name.
func RunGolden(ctx context.Context, dir string, update bool) ([]CaseResult, error) {
	paths, err := findArchives(dir)
	if err != nil {
		return nil, err
	}

	results := make([]CaseResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runCase(path, dir, update)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

func findArchives(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && filepath.Ext(path) == ".txtar" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find golden archives in %s: %w", dir, err)
	}
	return paths, nil
}

func runCase(path, root string, update bool) CaseResult {
	name, err := filepath.Rel(root, path)
	if err != nil {
		name = path
	}
	res := CaseResult{Name: strings.TrimSuffix(filepath.ToSlash(name), ".txtar"), Path: path}

	archive, err := txtar.ParseFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	input, ok := section(archive, InputFile)
	if !ok {
		res.Err = fmt.Errorf("%s: missing %s section", path, InputFile)
		return res
	}

	gotFile, got := render(string(input))
	want, ok := section(archive, gotFile)
	if ok && string(want) == got {
		res.Passed = true
		return res
	}

	if update {
		rewrite(archive, gotFile, got)
		if err := os.WriteFile(path, txtar.Format(archive), 0o644); err != nil {
			res.Err = err
			return res
		}
		res.Passed = true
		res.Updated = true
		return res
	}

	if !ok {
		// The archive expects the other kind of outcome.
		other := ExpectedIRFile
		if gotFile == ExpectedIRFile {
			other = ExpectedErrFile
		}
		want, _ = section(archive, other)
		res.Diff = udiff.Unified(other, gotFile+" (actual)", string(want), got)
		return res
	}
	res.Diff = udiff.Unified(gotFile, gotFile+" (actual)", string(want), got)
	return res
}

// render compiles src and returns the expected-section name its outcome
// belongs to together with the text to compare.
func render(src string) (string, string) {
	res, err := Compile(InputFile, src, Options{Verify: true})
	if err == nil {
		return ExpectedIRFile, res.IR
	}

	var buf bytes.Buffer
	var serr *StageError
	if !errors.As(err, &serr) {
		return ExpectedErrFile, err.Error() + "\n"
	}
	f := diag.NewFormatter(&buf, diag.WithColor(false))
	f.AddSource(InputFile, src)
	f.Format(serr.Diagnostic)
	return ExpectedErrFile, buf.String()
}

func section(a *txtar.Archive, name string) ([]byte, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

// rewrite replaces the expected sections of a with a single file.
func rewrite(a *txtar.Archive, name, content string) {
	files := a.Files[:0]
	for _, f := range a.Files {
		if f.Name == ExpectedIRFile || f.Name == ExpectedErrFile {
			continue
		}
		files = append(files, f)
	}
	a.Files = append(files, txtar.File{Name: name, Data: []byte(content)})
}
