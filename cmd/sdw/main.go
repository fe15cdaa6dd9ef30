package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Hex5DA/sdw/internal/config"
	"github.com/Hex5DA/sdw/internal/diag"
	"github.com/Hex5DA/sdw/internal/driver"
	"github.com/Hex5DA/sdw/internal/typed"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	settings config.Settings
	stdout   io.Writer
	stderr   io.Writer
	logger   *log.Logger
	verbose  bool
}

func usage(w io.Writer, fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(w, "Usage: sdw [options] <command> [arguments]\n")
		fmt.Fprintf(w, "\nCommands:\n")
		fmt.Fprintf(w, "  build [-o out.ll] [-verify] [-emit ir|tree] <file>   Compile a source file to IR\n")
		fmt.Fprintf(w, "  check <file>                                         Report the first diagnostic, if any\n")
		fmt.Fprintf(w, "  tree <file>                                          Print the typed tree\n")
		fmt.Fprintf(w, "  test [-update] [dir]                                 Run golden archives\n")
		fmt.Fprintf(w, "\nOptions:\n")
		fs.PrintDefaults()
	}
}

// run executes the command line and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sdw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(stderr, fs)
	configPath := fs.String("config", "", "settings file (default: sdw.toml or sdw.json in the working directory)")
	noColor := fs.Bool("no-color", false, "disable coloured output")
	verbose := fs.Bool("v", false, "log each compiler stage")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New(stderr, "sdw: ", 0)
	settings, err := loadSettings(*configPath)
	if err != nil {
		logger.Print(err)
		return 1
	}
	if *noColor {
		settings.Color = false
	}
	if !settings.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	a := &app{settings: settings, stdout: stdout, stderr: stderr, logger: logger, verbose: *verbose}
	command, rest := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "build":
		return a.runBuild(rest)
	case "check":
		return a.runCheck(rest)
	case "tree":
		return a.runTree(rest)
	case "test":
		return a.runTest(rest)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		fs.Usage()
		return 2
	}
}

func loadSettings(path string) (config.Settings, error) {
	if path != "" {
		settings, _, err := config.LoadFile(path)
		return settings, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Settings{}, err
	}
	settings, _, err := config.Load(wd)
	return settings, err
}

func (a *app) logf(format string, args ...any) {
	if a.verbose {
		a.logger.Printf(format, args...)
	}
}

// compile reads and compiles path, printing any diagnostic. The result is
// nil when compilation failed.
func (a *app) compile(path string, verify bool) *driver.Result {
	src, err := os.ReadFile(path)
	if err != nil {
		a.logger.Print(err)
		return nil
	}

	res, err := driver.Compile(path, string(src), driver.Options{
		Verify:       verify,
		ModuleHeader: true,
		Logf:         a.logf,
	})
	if err == nil {
		return res
	}

	var serr *driver.StageError
	if !errors.As(err, &serr) {
		a.logger.Print(err)
		return nil
	}
	f := diag.NewFormatter(a.stderr, diag.WithColor(a.settings.Color))
	f.AddSource(path, string(src))
	f.Format(serr.Diagnostic)
	return nil
}

func (a *app) runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("o", "", "output file (default: stdout, or output_dir from settings)")
	verify := fs.Bool("verify", a.settings.Verify, "check the structure of the emitted IR")
	emit := fs.String("emit", string(a.settings.Emit), "what to write: ir or tree")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(a.stderr, "Usage: sdw build [-o out.ll] [-verify] [-emit ir|tree] <file>\n")
		return 2
	}
	path := fs.Arg(0)

	res := a.compile(path, *verify)
	if res == nil {
		return 1
	}

	var text, ext string
	switch config.Emit(*emit) {
	case config.EmitIR:
		text, ext = res.IR, ".ll"
	case config.EmitTree:
		text, ext = typed.Sprint(res.Typed), ".tree"
	default:
		a.logger.Printf("unknown emit kind %q", *emit)
		return 2
	}

	target := *out
	if target == "" && a.settings.OutputDir != "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		target = filepath.Join(a.settings.OutputDir, base+ext)
	}
	if target == "" {
		fmt.Fprint(a.stdout, text)
		return 0
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		a.logger.Print(err)
		return 1
	}
	if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
		a.logger.Print(err)
		return 1
	}
	a.logf("wrote %s", target)
	return 0
}

func (a *app) runCheck(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(a.stderr, "Usage: sdw check <file>\n")
		return 2
	}
	if a.compile(args[0], false) == nil {
		return 1
	}
	fmt.Fprintf(a.stdout, "%s: ok\n", args[0])
	return 0
}

func (a *app) runTree(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(a.stderr, "Usage: sdw tree <file>\n")
		return 2
	}
	res := a.compile(args[0], false)
	if res == nil {
		return 1
	}
	if err := typed.Fprint(a.stdout, res.Typed); err != nil {
		a.logger.Print(err)
		return 1
	}
	return 0
}
