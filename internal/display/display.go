// Package display formats command output and error messages.
//
// Results go to the Out writer and errors to Err. Color is only ever
// applied to the "Error" label and the ls type column, and only when the
// target writer is a terminal (or color is forced).
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/quocvuong92/fs-cli/internal/constants"
	"github.com/quocvuong92/fs-cli/internal/fsops"
)

// ColorMode selects when ANSI colors are written.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps a config value to a ColorMode. Unknown values mean auto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Printer writes results to Out and errors to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer

	outColor bool
	errColor bool

	errLabel *color.Color
	dirLabel *color.Color
	othLabel *color.Color
}

// NewPrinter builds a Printer. In ColorAuto mode each writer is colored only
// if it is a terminal.
func NewPrinter(out, errw io.Writer, mode ColorMode) *Printer {
	p := &Printer{
		Out:      out,
		Err:      errw,
		outColor: useColor(out, mode),
		errColor: useColor(errw, mode),
		errLabel: color.New(color.FgRed, color.Bold),
		dirLabel: color.New(color.FgBlue, color.Bold),
		othLabel: color.New(color.FgCyan),
	}
	if p.errColor {
		p.errLabel.EnableColor()
	} else {
		p.errLabel.DisableColor()
	}
	for _, c := range []*color.Color{p.dirLabel, p.othLabel} {
		if p.outColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Line writes s and a newline to Out.
func (p *Printer) Line(s string) {
	fmt.Fprintln(p.Out, s)
}

// Text writes s to Out unchanged.
func (p *Printer) Text(s string) {
	fmt.Fprint(p.Out, s)
}

// Error writes "Error: <err>" to Err.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.Err, "%s: %v\n", p.errLabel.Sprint("Error"), err)
}

// ErrorReading writes "Error reading <what>: <err>" to Err.
func (p *Printer) ErrorReading(what string, err error) {
	fmt.Fprintf(p.Err, "%s %s: %v\n", p.errLabel.Sprint("Error reading"), what, err)
}

// Entry writes one ls line: type and size left-aligned in fixed columns.
func (p *Printer) Entry(e fsops.DirEntryInfo) {
	kind := fmt.Sprintf("%-*s", constants.KindColumnWidth, e.Kind.String())
	switch e.Kind {
	case fsops.KindDirectory:
		kind = p.dirLabel.Sprint(kind)
	case fsops.KindOther:
		kind = p.othLabel.Sprint(kind)
	}
	fmt.Fprintf(p.Out, "%s %-*d %s\n", kind, constants.SizeColumnWidth, e.Size, e.Name)
}

// Match writes one grep hit as "<n>: <text>".
func (p *Printer) Match(l fsops.Line) {
	fmt.Fprintf(p.Out, "%d: %s\n", l.Number, l.Text)
}

// NoMatch reports a find that emitted nothing.
func (p *Printer) NoMatch(name string) {
	fmt.Fprintf(p.Out, "No file found matching '%s'\n", name)
}

// RenderMarkdown renders src for Out. Without color it uses the plain
// notty style so no escape codes are produced.
func (p *Printer) RenderMarkdown(src string, wordWrap int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wordWrap)}
	if p.outColor {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(styles.NoTTYStyle))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
