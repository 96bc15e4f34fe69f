package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Printer writes status lines, colored when the profile allows it.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a printer on w. With color false everything is written as plain ASCII.
func NewPrinter(w io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.EnvColorProfile()
	}
	return &Printer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// Banner prints the program name and version.
func (p *Printer) Banner(version string) {
	name := p.out.String("seqline").Foreground(p.out.Color("#818cf8")).Bold()
	ver := p.out.String(version).Foreground(p.out.Color("#c084fc"))
	fmt.Fprintf(p.out, "%s %s\n", name, ver)
}

// Success prints a green check line.
func (p *Printer) Success(format string, args ...any) {
	mark := p.out.String("✓").Foreground(p.out.Color("#22c55e"))
	fmt.Fprintf(p.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Failure prints a red cross line.
func (p *Printer) Failure(format string, args ...any) {
	mark := p.out.String("✗").Foreground(p.out.Color("#ef4444"))
	fmt.Fprintf(p.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}
