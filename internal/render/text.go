package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mpyw/hookdeps/internal/report"
	"github.com/mpyw/hookdeps/internal/runner"
)

// palette holds the colors of one text rendering.
type palette struct {
	location *color.Color
	severity *color.Color
	rule     *color.Color
	gutter   *color.Color
	marker   *color.Color
	note     *color.Color
	err      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		severity: color.New(color.FgYellow, color.Bold),
		rule:     color.New(color.FgCyan),
		gutter:   color.New(color.FgBlue),
		marker:   color.New(color.FgYellow),
		note:     color.New(color.FgGreen),
		err:      color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.location, p.severity, p.rule, p.gutter, p.marker, p.note, p.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// writeText prints one block per diagnostic:
//
//	src/a.jsx:3:2: warning useExhaustiveDependencies: This hook does not specify all of its dependencies: a
//	   3 | 	useEffect(() => { console.log(a); }, []);
//	     | 	^^^^^^^^^ This hook does not specify all of its dependencies.
//	   3 | 	useEffect(() => { console.log(a); }, []);
//	     | 	                              ^ This dependency is not specified in the hook dependency list.
//	  note: Either include it or remove the dependency array
func writeText(w io.Writer, result *runner.Result, useColor bool) error {
	p := newPalette(useColor)
	bw := bufio.NewWriter(w)

	for _, f := range result.Files {
		if f.Err != nil {
			p.err.Fprint(bw, "error")
			fmt.Fprintf(bw, ": %v\n", f.Err)
			continue
		}
		lines := splitLines(f.Src)
		for _, d := range f.Diagnostics {
			writeDiagnostic(bw, p, f.Path, lines, d)
		}
	}

	if n := result.DiagnosticCount(); n > 0 {
		fmt.Fprintf(bw, "%d %s\n", n, plural(n, "problem", "problems"))
	}
	return bw.Flush()
}

func writeDiagnostic(w io.Writer, p palette, path string, lines []string, d report.Diagnostic) {
	p.location.Fprintf(w, "%s:%s", path, d.Primary.StartPos)
	fmt.Fprint(w, ": ")
	p.severity.Fprint(w, string(d.Severity))
	fmt.Fprint(w, " ")
	p.rule.Fprint(w, d.Rule)
	fmt.Fprintf(w, ": %s\n", d.Message)

	width := gutterWidth(d.Labels)
	for _, l := range d.Labels {
		writeLabel(w, p, lines, width, l)
	}

	if d.Note != "" {
		fmt.Fprint(w, "  ")
		p.note.Fprint(w, "note")
		fmt.Fprintf(w, ": %s\n", d.Note)
	}
}

func writeLabel(w io.Writer, p palette, lines []string, width int, l report.Label) {
	line := l.Span.StartPos.Line
	if line < 1 || line > len(lines) {
		return
	}
	text := lines[line-1]

	p.gutter.Fprintf(w, "%*d | ", width, line)
	fmt.Fprintln(w, text)

	start := min(max(l.Span.StartPos.Column-1, 0), len(text))
	end := len(text)
	if l.Span.EndPos.Line == line {
		end = min(max(l.Span.EndPos.Column-1, start), len(text))
	}
	n := max(end-start, 1)

	p.gutter.Fprintf(w, "%*s | ", width, "")
	fmt.Fprint(w, indent(text[:start]))
	p.marker.Fprint(w, strings.Repeat("^", n))
	fmt.Fprintf(w, " %s\n", l.Message)
}

// indent keeps tabs so the marker lines up with the source above it.
func indent(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func gutterWidth(labels []report.Label) int {
	width := 1
	for _, l := range labels {
		width = max(width, len(strconv.Itoa(l.Span.StartPos.Line)))
	}
	return width + 2
}

func splitLines(src []byte) []string {
	return strings.Split(string(bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))), "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
