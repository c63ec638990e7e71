package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/relink/pkg/types"
	"github.com/arthur-debert/relink/pkg/ui/styles"
)

// Phase is the pass a progress line reports
type Phase string

const (
	PhaseUnlink Phase = "Unlinking"
	PhaseLink   Phase = "Linking"
)

// Printer writes user-facing output
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter creates a printer. FormatAuto styles the output only when out
// is a color terminal.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	return &Printer{out: out, styled: format == FormatTerminal}
}

// Styled reports whether output is styled
func (p *Printer) Styled() bool {
	return p.styled
}

func (p *Printer) render(style, text string) string {
	if !p.styled {
		return text
	}
	return styles.Render(style, text)
}

// Banner prints the startup line
func (p *Printer) Banner(text string) {
	fmt.Fprintln(p.out, p.render("Banner", text))
}

// Progress prints one line for an extension, e.g.
// "Linking module mod_menu (site)"
func (p *Printer) Progress(phase Phase, ext types.Extension) {
	line := fmt.Sprintf("%s %s %s",
		p.render(string(phase), string(phase)),
		p.render("Kind", ext.Kind.String()),
		p.render("Name", ext.Name))
	if q := ext.Qualifier(); q != "" {
		line += " " + p.render("Detail", "("+q+")")
	}
	fmt.Fprintln(p.out, line)
}

// Warning prints a warning line
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.render("Warning", "Warning:")+" "+fmt.Sprintf(format, args...))
}

// Success prints a closing line for a run without failures
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.render("Success", fmt.Sprintf(format, args...)))
}

// Failures lists failed link operations. Nothing is printed when there are none.
func (p *Printer) Failures(results types.LinkResults) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.render("Error", fmt.Sprintf("%d link operation(s) failed:", len(results))))
	for _, r := range results {
		fmt.Fprintf(p.out, "  %s %s: %v\n", r.Action, p.render("FilePath", r.Destination), r.Err)
	}
}
