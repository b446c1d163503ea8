// Package hookdeps checks that the dependency arrays of React-style hook
// calls list exactly what their closures capture.
//
// A hook call such as
//
//	useEffect(() => { subscribe(id) }, [id])
//
// passes a closure and a literal array of the values it depends on. The
// analyzer reports reactive bindings the closure captures but the array
// omits, and array entries the closure never uses.
package hookdeps

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/mpyw/hookdeps/internal/checker"
	"github.com/mpyw/hookdeps/internal/config"
	"github.com/mpyw/hookdeps/internal/registry"
	"github.com/mpyw/hookdeps/internal/report"
	"github.com/mpyw/hookdeps/internal/runner"
	"github.com/mpyw/hookdeps/internal/stability"
)

// Rule is the rule identifier of every diagnostic.
const Rule = report.Rule

type (
	// Config is the decoded configuration file.
	Config = config.Config
	// HookOption describes one user hook.
	HookOption = config.HookOption
	// StableResult marks stable parts of a hook's result.
	StableResult = config.StableResult
	// Diagnostic is one finding.
	Diagnostic = report.Diagnostic
	// Result holds the findings of a run, sorted by file.
	Result = runner.Result
	// Predicate is an extra stability test.
	Predicate = stability.Predicate
)

type options struct {
	hooks             []HookOption
	reportUnnecessary *bool
	predicates        []Predicate
	jobs              int
	logger            *slog.Logger
}

// Option configures an Analyzer.
type Option func(*options)

// WithHooks adds hooks after those of the configuration file. A name used
// twice is an error.
func WithHooks(hooks ...HookOption) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// WithReportUnnecessary overrides reportUnnecessaryDependencies.
func WithReportUnnecessary(enabled bool) Option {
	return func(o *options) {
		o.reportUnnecessary = &enabled
	}
}

// WithPredicates appends stability predicates after the built-in ones.
func WithPredicates(predicates ...Predicate) Option {
	return func(o *options) {
		o.predicates = append(o.predicates, predicates...)
	}
}

// WithJobs limits how many files are analyzed at once.
func WithJobs(n int) Option {
	return func(o *options) {
		o.jobs = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Analyzer checks files. It is safe for concurrent use.
type Analyzer struct {
	registry *registry.Registry
	checker  *checker.Checker
	jobs     int
	logger   *slog.Logger
}

// New builds an analyzer from cfg, which may be nil.
// Configuration faults are returned as *config.ValidationError or
// *registry.ConfigError.
func New(cfg *Config, opts ...Option) (*Analyzer, error) {
	o := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(o)
	}

	merged := &Config{}
	if cfg != nil {
		merged.Hooks = append(merged.Hooks, cfg.Hooks...)
		merged.ReportUnnecessaryDependencies = cfg.ReportUnnecessaryDependencies
	}
	merged.Hooks = append(merged.Hooks, o.hooks...)
	if o.reportUnnecessary != nil {
		merged.ReportUnnecessaryDependencies = o.reportUnnecessary
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	reg, err := registry.Build(merged.Overrides())
	if err != nil {
		return nil, err
	}
	o.logger.Debug("built hook registry", slog.Int("hooks", reg.Len()), slog.Any("names", reg.Names()))

	return &Analyzer{
		registry: reg,
		checker: checker.New(reg,
			checker.WithReportUnnecessary(merged.ReportUnnecessary()),
			checker.WithPredicates(o.predicates...),
			checker.WithLogger(o.logger),
		),
		jobs:   o.jobs,
		logger: o.logger,
	}, nil
}

// Hooks returns the names of every governed hook, sorted.
func (a *Analyzer) Hooks() []string {
	return a.registry.Names()
}

// CheckSource analyzes one file held in memory. The language follows the
// extension of path.
func (a *Analyzer) CheckSource(ctx context.Context, path string, src []byte) ([]Diagnostic, error) {
	return a.checker.CheckSource(ctx, path, src)
}

// AnalyzeFS analyzes every supported file under paths of fs.
func (a *Analyzer) AnalyzeFS(ctx context.Context, fs billy.Filesystem, paths ...string) (*Result, error) {
	r := runner.New(fs, a.checker, runner.WithJobs(a.jobs), runner.WithLogger(a.logger))
	return r.Run(ctx, paths)
}

// AnalyzeFiles analyzes files and directories of the host filesystem.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths ...string) (*Result, error) {
	return a.AnalyzeFS(ctx, osfs.Default, paths...)
}
