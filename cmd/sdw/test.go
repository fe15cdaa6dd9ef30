package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Hex5DA/sdw/internal/driver"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// runTest runs the golden archives under a directory and prints one line
// per case followed by a summary.
func (a *app) runTest(args []string) int {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	update := fs.Bool("update", a.settings.Test.Update, "rewrite expected sections with the actual output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	dir := a.settings.Test.Dir
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	a.logf("running golden archives in %s", dir)
	results, err := driver.RunGolden(context.Background(), dir, *update)
	if err != nil {
		a.logger.Print(err)
		return 1
	}
	if len(results) == 0 {
		fmt.Fprintf(a.stdout, "No golden archives found in %s\n", dir)
		return 0
	}

	fmt.Fprintf(a.stdout, "Running tests in %s...\n\n", dir)
	var passed, failed, updated int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(a.stdout, "  %s %s\n", failStyle.Render("✗"), r.Name)
			fmt.Fprintf(a.stdout, "    Error: %v\n", r.Err)
		case !r.Passed:
			failed++
			fmt.Fprintf(a.stdout, "  %s %s\n", failStyle.Render("✗"), r.Name)
			fmt.Fprintf(a.stdout, "%s\n", indent(r.Diff, "    "))
		case r.Updated:
			updated++
			passed++
			fmt.Fprintf(a.stdout, "  %s %s %s\n", passStyle.Render("✓"), r.Name, dimStyle.Render("(updated)"))
		default:
			passed++
			fmt.Fprintf(a.stdout, "  %s %s\n", passStyle.Render("✓"), r.Name)
		}
	}

	fmt.Fprintf(a.stdout, "\nTest Results: %d total, %d passed, %d failed", len(results), passed, failed)
	if updated > 0 {
		fmt.Fprintf(a.stdout, ", %d updated", updated)
	}
	fmt.Fprintln(a.stdout)

	if failed > 0 {
		return 1
	}
	return 0
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
