package report

import (
	"github.com/mpyw/hookdeps/internal/capture"
	"github.com/mpyw/hookdeps/internal/depsarray"
	"github.com/mpyw/hookdeps/internal/semantic"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Input is everything the builder needs for one hook call.
type Input struct {
	Hook   string
	Callee syntax.Span
	// Reactive holds the captured reactive bindings ordered by first reference.
	Reactive []capture.Group
	// Deps holds the entries of a literal dependency array.
	Deps []depsarray.Entry
}

// Options tunes which directions are reported.
type Options struct {
	ReportUnnecessary bool
}

// DefaultOptions reports both directions.
func DefaultOptions() Options {
	return Options{ReportUnnecessary: true}
}

// Build diffs captured reactive bindings against declared ones.
//
// Missing dependencies come first, ordered by first reference; unnecessary
// ones follow, ordered by their position in the array. An exact match yields
// no diagnostics.
func Build(in Input, opts Options) []Diagnostic {
	declared := make(map[semantic.BindingID]struct{}, len(in.Deps))
	for _, e := range in.Deps {
		if e.Root != nil {
			declared[e.Root.ID] = struct{}{}
		}
	}
	used := make(map[semantic.BindingID]struct{}, len(in.Reactive))
	for _, g := range in.Reactive {
		used[g.Binding.ID] = struct{}{}
	}

	var diags []Diagnostic
	for _, g := range in.Reactive {
		if _, ok := declared[g.Binding.ID]; ok {
			continue
		}
		diags = append(diags, missing(in, g))
	}

	if !opts.ReportUnnecessary {
		return diags
	}

	reported := make(map[semantic.BindingID]struct{})
	for _, e := range in.Deps {
		if e.Root == nil {
			continue
		}
		if _, ok := used[e.Root.ID]; ok {
			continue
		}
		if _, ok := reported[e.Root.ID]; ok {
			continue
		}
		reported[e.Root.ID] = struct{}{}
		diags = append(diags, unnecessary(in, e))
	}
	return diags
}

func missing(in Input, g capture.Group) Diagnostic {
	labels := make([]Label, 0, len(g.References)+1)
	labels = append(labels, Label{Span: in.Callee, Message: MissingHookLabel})
	for _, ref := range g.References {
		labels = append(labels, Label{Span: ref.Span, Message: MissingRefLabel})
	}
	return Diagnostic{
		Rule:     Rule,
		Kind:     MissingDependency,
		Severity: SeverityWarning,
		Message:  MissingMessage + g.Binding.Name,
		Binding:  g.Binding.Name,
		Hook:     in.Hook,
		Primary:  in.Callee,
		Labels:   labels,
		Note:     MissingNote,
	}
}

func unnecessary(in Input, e depsarray.Entry) Diagnostic {
	return Diagnostic{
		Rule:     Rule,
		Kind:     UnnecessaryDependency,
		Severity: SeverityWarning,
		Message:  UnnecessaryMessage + e.Root.Name,
		Binding:  e.Root.Name,
		Hook:     in.Hook,
		Primary:  e.Span,
		Labels:   []Label{{Span: e.Span, Message: UnnecessaryLabel}},
		Note:     UnnecessaryNote,
	}
}

// References returns the spans of every captured occurrence named by d,
// excluding the hook callee label.
func (d Diagnostic) References() []syntax.Span {
	if d.Kind != MissingDependency {
		return nil
	}
	var spans []syntax.Span
	for _, l := range d.Labels[1:] {
		spans = append(spans, l.Span)
	}
	return spans
}
