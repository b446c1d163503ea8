package render

import (
	"encoding/json"
	"io"

	"github.com/mpyw/hookdeps/internal/runner"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Location is a source range in JSON output.
type Location struct {
	File      string `json:"file"`
	StartByte int    `json:"start_byte"`
	EndByte   int    `json:"end_byte"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// LabelJSON is a labeled range.
type LabelJSON struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// DiagnosticJSON is one diagnostic.
type DiagnosticJSON struct {
	Rule     string      `json:"rule"`
	Kind     string      `json:"kind"`
	Severity string      `json:"severity"`
	Message  string      `json:"message"`
	Hook     string      `json:"hook,omitempty"`
	Binding  string      `json:"binding,omitempty"`
	Location Location    `json:"location"`
	Labels   []LabelJSON `json:"labels,omitempty"`
	Note     string      `json:"note,omitempty"`
}

// ErrorJSON is a file that could not be checked.
type ErrorJSON struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// Output is the root of JSON output.
type Output struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Errors      []ErrorJSON      `json:"errors,omitempty"`
	Count       int              `json:"count"`
}

func writeJSON(w io.Writer, result *runner.Result) error {
	out := Output{Diagnostics: []DiagnosticJSON{}}

	for _, f := range result.Files {
		if f.Err != nil {
			out.Errors = append(out.Errors, ErrorJSON{File: f.Path, Message: f.Err.Error()})
			continue
		}
		for _, d := range f.Diagnostics {
			dj := DiagnosticJSON{
				Rule:     d.Rule,
				Kind:     d.Kind.String(),
				Severity: string(d.Severity),
				Message:  d.Message,
				Hook:     d.Hook,
				Binding:  d.Binding,
				Location: locationOf(f.Path, d.Primary),
				Note:     d.Note,
			}
			for _, l := range d.Labels {
				dj.Labels = append(dj.Labels, LabelJSON{Message: l.Message, Location: locationOf(f.Path, l.Span)})
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	out.Count = len(out.Diagnostics)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func locationOf(path string, s syntax.Span) Location {
	return Location{
		File:      path,
		StartByte: s.Start,
		EndByte:   s.End,
		StartLine: s.StartPos.Line,
		StartCol:  s.StartPos.Column,
		EndLine:   s.EndPos.Line,
		EndCol:    s.EndPos.Column,
	}
}
