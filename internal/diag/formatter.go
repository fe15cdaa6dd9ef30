package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	w           io.Writer
	sourceCache map[string]string // Cache of source files by filename
	context     int               // lines shown before the span

	errorStyle  lipgloss.Style
	warnStyle   lipgloss.Style
	noteStyle   lipgloss.Style
	gutterStyle lipgloss.Style
	markStyle   lipgloss.Style
	boldStyle   lipgloss.Style
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithColor forces colored output on or off. By default the color profile is
// detected from the writer.
func WithColor(enabled bool) FormatterOption {
	return func(f *Formatter) {
		if !enabled {
			f.setStyles(termenv.Ascii)
		}
	}
}

// WithContext sets how many source lines are printed before the offending line.
func WithContext(lines int) FormatterOption {
	return func(f *Formatter) {
		if lines >= 0 {
			f.context = lines
		}
	}
}

// NewFormatter creates a new diagnostic formatter writing to w.
func NewFormatter(w io.Writer, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		w:           w,
		sourceCache: make(map[string]string),
		context:     1,
	}
	f.setStyles(lipgloss.NewRenderer(w).ColorProfile())
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) setStyles(profile termenv.Profile) {
	r := lipgloss.NewRenderer(f.w)
	r.SetColorProfile(profile)
	f.errorStyle = r.NewStyle().Foreground(lipgloss.Color("#F25F5C")).Bold(true)
	f.warnStyle = r.NewStyle().Foreground(lipgloss.Color("#F2C14E")).Bold(true)
	f.noteStyle = r.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	f.gutterStyle = r.NewStyle().Foreground(lipgloss.Color("#5FA8D3")).Bold(true)
	f.markStyle = r.NewStyle().Foreground(lipgloss.Color("#F25F5C")).Bold(true)
	f.boldStyle = r.NewStyle().Bold(true)
}

// AddSource registers in-memory source text for filename.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	if filename == "" {
		return "", fmt.Errorf("no source registered for unnamed input")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format formats and prints a diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)
	if !d.Span.IsValid() {
		f.printHelp(d)
		return
	}

	fmt.Fprintf(f.w, "  %s %s\n", f.gutterStyle.Render("-->"), d.Span)

	src, err := f.LoadSource(d.Span.Filename)
	if err != nil {
		f.printHelp(d)
		return
	}
	f.printSnippet(src, d)
	f.printHelp(d)
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := d.Severity
	if severity == "" {
		severity = SeverityError
	}

	style := f.errorStyle
	switch severity {
	case SeverityWarning:
		style = f.warnStyle
	case SeverityNote:
		style = f.noteStyle
	}

	head := string(severity)
	if d.Code != "" {
		head = fmt.Sprintf("%s[%s]", severity, d.Code)
	}
	fmt.Fprintf(f.w, "%s%s\n", style.Render(head), f.boldStyle.Render(": "+d.Message))
}

func (f *Formatter) printSnippet(src string, d Diagnostic) {
	lines := strings.Split(src, "\n")
	first := d.Span.Line
	last := max(d.Span.EndLine, first)
	if first > len(lines) {
		return
	}
	last = min(last, len(lines))

	from := max(1, first-f.context)
	width := len(fmt.Sprintf("%d", last))
	pad := strings.Repeat(" ", width)
	bar := f.gutterStyle.Render("|")

	fmt.Fprintf(f.w, " %s %s\n", pad, bar)
	for n := from; n <= last; n++ {
		content := strings.TrimRight(lines[n-1], "\r")
		num := f.gutterStyle.Render(fmt.Sprintf("%*d", width, n))
		fmt.Fprintf(f.w, " %s %s %s\n", num, bar, content)

		if n < first {
			continue
		}
		start, end := underlineRange(d.Span, n, len(content))
		marks := strings.Repeat(" ", start) + f.markStyle.Render(strings.Repeat("^", end-start))
		if n == last && d.Label != "" {
			marks += " " + f.markStyle.Render(d.Label)
		}
		fmt.Fprintf(f.w, " %s %s %s\n", pad, bar, marks)
	}
	fmt.Fprintf(f.w, " %s %s\n", pad, bar)
}

// underlineRange returns the 0-based [start, end) columns to mark on line n.
func underlineRange(s Span, n, lineLen int) (int, int) {
	start := 0
	if n == s.Line {
		start = s.Column - 1
	}
	end := lineLen
	if n == s.EndLine || s.EndLine == 0 {
		end = s.EndColumn - 1
	}
	start = min(max(start, 0), lineLen)
	if end <= start {
		end = start + 1
	}
	return start, end
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  %s %s\n", f.gutterStyle.Render("="), f.boldStyle.Render("note: ")+note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "%s %s\n", f.noteStyle.Render("help:"), d.Help)
	}
}
