// Package diagfmt renders diagnostics and token dumps for the CLI: a pretty
// text form with source context and caret underlines, and a JSON form for
// tooling.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mview/internal/diag"
	"mview/internal/source"
)

// Pretty renders bag.Items() in order (callers sort first):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	  <source line>
//	  ^~~~~
//
// followed by notes in the same shape, indented.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	posColor  = color.New(color.Bold)
	noteColor = color.New(color.FgBlue)
)

func (p *prettyPrinter) sevColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	p.header(d.Severity, d.Code, d.Primary, d.Message)
	p.context(d.Primary)

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			pos := p.position(n.Span)
			fmt.Fprintf(p.w, "  %s: %s: %s\n", pos, p.paint(noteColor, "note"), n.Msg)
			p.contextIndented(n.Span, "  ")
		}
	}
	if p.opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(p.w, "  %s: %s\n", p.paint(noteColor, "fix"), f.Title)
		}
	}
}

func (p *prettyPrinter) header(sev diag.Severity, code diag.Code, sp source.Span, msg string) {
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.paint(posColor, p.position(sp)),
		p.paint(p.sevColor(sev), sev.String()),
		code.String(),
		msg)
}

func (p *prettyPrinter) position(sp source.Span) string {
	start, _ := p.fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", p.path(sp.File), start.Line, start.Col)
}

func (p *prettyPrinter) path(id source.FileID) string {
	f := p.fs.Get(id)
	switch p.opts.PathMode {
	case PathModeFull:
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.DisplayPath()
}

func (p *prettyPrinter) context(sp source.Span) {
	p.contextIndented(sp, "")
}

// contextIndented prints the source line of the span start and a caret
// underline covering the span's width on that line. Width is measured in
// display cells so wide runes underline correctly.
func (p *prettyPrinter) contextIndented(sp source.Span, indent string) {
	f := p.fs.Get(sp.File)
	start, end := p.fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && start.Line == 0 {
		return
	}

	fmt.Fprintf(p.w, "%s  %s\n", indent, line)

	startCol := int(start.Col)
	endCol := int(end.Col)
	if end.Line != start.Line || endCol < startCol {
		endCol = len(line) + 1
	}

	lead := displayWidth(line, startCol-1)
	span := displayWidth(line[min(startCol-1, len(line)):], endCol-startCol)
	if span < 1 {
		span = 1
	}

	marker := strings.Repeat(" ", lead) + "^" + strings.Repeat("~", span-1)
	fmt.Fprintf(p.w, "%s  %s\n", indent, p.paint(errColor, marker))
}

// displayWidth returns the terminal cell width of the first n bytes of s.
func displayWidth(s string, n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(s) {
		n = len(s)
	}
	return runewidth.StringWidth(s[:n])
}
