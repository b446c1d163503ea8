// Package checker runs the hook dependency pipeline over one file.
package checker

import (
	"context"
	"io"
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/capture"
	"github.com/mpyw/hookdeps/internal/depsarray"
	"github.com/mpyw/hookdeps/internal/directives/hook"
	"github.com/mpyw/hookdeps/internal/directives/ignore"
	"github.com/mpyw/hookdeps/internal/hookcall"
	"github.com/mpyw/hookdeps/internal/registry"
	"github.com/mpyw/hookdeps/internal/report"
	"github.com/mpyw/hookdeps/internal/semantic"
	"github.com/mpyw/hookdeps/internal/stability"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Checker checks hook calls against a registry. It holds no per-file state
// and is safe for concurrent use.
type Checker struct {
	registry   *registry.Registry
	options    report.Options
	predicates []stability.Predicate
	logger     *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithReportUnnecessary toggles unnecessary dependency diagnostics.
func WithReportUnnecessary(enabled bool) Option {
	return func(c *Checker) {
		c.options.ReportUnnecessary = enabled
	}
}

// WithPredicates appends stability predicates after the built-in ones.
func WithPredicates(predicates ...stability.Predicate) Option {
	return func(c *Checker) {
		c.predicates = append(c.predicates, predicates...)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a checker.
func New(reg *registry.Registry, opts ...Option) *Checker {
	c := &Checker{
		registry: reg,
		options:  report.DefaultOptions(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckSource parses src and checks it. The language is chosen by the
// extension of path.
func (c *Checker) CheckSource(ctx context.Context, path string, src []byte) ([]report.Diagnostic, error) {
	file, err := syntax.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return c.Check(file), nil
}

// Check runs the pipeline on every call expression of file, in source order.
//
// Hooks declared in file with hookdeps-hook directives are layered on top of
// the checker's registry for this file only.
func (c *Checker) Check(file *syntax.File) []report.Diagnostic {
	reg, diags := c.fileRegistry(file)

	model := semantic.Build(file)
	recognizer := hookcall.New(reg, model)
	classifier := stability.New(model, recognizer, stability.WithPredicates(c.predicates...))
	ignoreMap := ignore.Build(file.Comments())

	run := &fileRun{
		checker:    c,
		file:       file,
		model:      model,
		recognizer: recognizer,
		classifier: classifier,
		ignoreMap:  ignoreMap,
	}

	syntax.Walk(file.Root, func(n *sitter.Node) bool {
		if n.Type() == "call_expression" {
			diags = append(diags, run.checkCall(n)...)
		}
		return true
	})

	return append(diags, c.unusedIgnores(ignoreMap)...)
}

// fileRegistry applies the hook directives of file. Directives that cannot
// be applied are reported and skipped.
func (c *Checker) fileRegistry(file *syntax.File) (*registry.Registry, []report.Diagnostic) {
	decls, invalid := hook.Build(file)

	reg := c.registry
	var diags []report.Diagnostic
	for _, d := range decls {
		next, err := reg.With([]registry.Override{d.Option.Override()})
		if err != nil {
			invalid = append(invalid, hook.Invalid{Span: d.Span, Err: err})
			continue
		}
		c.logger.Debug("registered file-local hook",
			slog.String("file", file.Path),
			slog.String("hook", d.Option.Name),
		)
		reg = next
	}

	for _, inv := range invalid {
		msg := report.InvalidDirectiveMsg + inv.Err.Error()
		diags = append(diags, report.Diagnostic{
			Rule:     report.Rule,
			Kind:     report.InvalidDirective,
			Severity: report.SeverityWarning,
			Message:  msg,
			Primary:  inv.Span,
			Labels:   []report.Label{{Span: inv.Span, Message: msg}},
		})
	}
	return reg, diags
}

// fileRun bundles the per-file services of one Check.
type fileRun struct {
	checker    *Checker
	file       *syntax.File
	model      *semantic.Model
	recognizer *hookcall.Recognizer
	classifier *stability.Classifier
	ignoreMap  ignore.Map
}

// checkCall runs the pipeline on a single call expression.
func (r *fileRun) checkCall(call *sitter.Node) []report.Diagnostic {
	info, ok := r.recognizer.Recognize(call)
	if !ok {
		return nil
	}

	entries, status := depsarray.Extract(info, r.model)
	if status != depsarray.Literal {
		if status == depsarray.Unanalyzable {
			r.checker.logger.Debug("skipping unanalyzable dependency list",
				slog.String("file", r.file.Path),
				slog.String("hook", info.Name),
				slog.String("pos", syntax.SpanOf(call).StartPos.String()),
			)
		}
		return nil
	}

	groups := capture.GroupByBinding(capture.Collect(info.Closure, r.model))
	diags := report.Build(report.Input{
		Hook:     info.Name,
		Callee:   syntax.SpanOf(info.Callee),
		Reactive: r.classifier.Reactive(groups),
		Deps:     entries,
	}, r.checker.options)

	line := syntax.SpanOf(call).StartPos.Line
	kept := diags[:0]
	for _, d := range diags {
		if r.ignoreMap.ShouldIgnore(line, categoryOf(d.Kind)) {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// categoryOf maps a diagnostic kind to its ignore category.
func categoryOf(kind report.Kind) ignore.Category {
	if kind == report.UnnecessaryDependency {
		return ignore.Unnecessary
	}
	return ignore.Missing
}

// unusedIgnores reports ignore directives that suppressed nothing.
func (c *Checker) unusedIgnores(m ignore.Map) []report.Diagnostic {
	enabled := ignore.EnabledCategories{
		ignore.Missing:     true,
		ignore.Unnecessary: c.options.ReportUnnecessary,
	}

	var diags []report.Diagnostic
	for _, unused := range m.GetUnusedIgnores(enabled) {
		msg := report.UnusedSuppressionMsg
		if len(unused.Categories) > 0 {
			names := make([]string, len(unused.Categories))
			for i, category := range unused.Categories {
				names[i] = string(category)
			}
			msg += " for category(ies): " + strings.Join(names, ", ")
		}
		diags = append(diags, report.Diagnostic{
			Rule:     report.Rule,
			Kind:     report.UnusedSuppression,
			Severity: report.SeverityWarning,
			Message:  msg,
			Primary:  unused.Span,
			Labels:   []report.Label{{Span: unused.Span, Message: msg}},
		})
	}
	return diags
}
