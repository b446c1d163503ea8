// Package render writes diagnostics for humans and machines.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/mpyw/hookdeps/internal/runner"
)

// Format selects an output syntax.
type Format string

// Supported formats.
const (
	Text Format = "text"
	JSON Format = "json"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, JSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options configures rendering.
type Options struct {
	Format Format
	// Color enables ANSI colors in text output.
	Color bool
}

// Write renders result to w.
func Write(w io.Writer, result *runner.Result, opts Options) error {
	switch opts.Format {
	case JSON:
		return writeJSON(w, result)
	case Text, "":
		return writeText(w, result, opts.Color)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}
