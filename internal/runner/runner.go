// Package runner discovers source files and checks them in parallel.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/mpyw/hookdeps/internal/report"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Checker checks one file.
type Checker interface {
	CheckSource(ctx context.Context, path string, src []byte) ([]report.Diagnostic, error)
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	Src         []byte
	Diagnostics []report.Diagnostic
	// Err is set when the file could not be read or parsed.
	Err error
}

// Result holds every file result sorted by path.
type Result struct {
	Files []FileResult
}

// DiagnosticCount returns the number of diagnostics across all files.
func (r *Result) DiagnosticCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Runner walks a filesystem and checks every supported file.
type Runner struct {
	fs      billy.Filesystem
	checker Checker
	jobs    int
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithJobs limits the number of files checked at once. Values below one
// select GOMAXPROCS.
func WithJobs(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.jobs = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a runner over fs.
func New(fs billy.Filesystem, checker Checker, opts ...Option) *Runner {
	r := &Runner{
		fs:      fs,
		checker: checker,
		jobs:    runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// skipDir reports whether a directory is never descended into.
func skipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// Discover expands paths into the sorted, de-duplicated list of files to
// check. Directories are walked recursively; files named explicitly are
// kept even when their extension is unsupported so the caller sees an
// error for them.
func (r *Runner) Discover(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := r.fs.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = util.Walk(r.fs, root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if p != root && skipDir(info.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if syntax.IsSupported(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Run discovers files under paths and checks them. A file that fails to
// read or parse is recorded in its FileResult and does not stop the run;
// only discovery errors and cancellation are returned.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	files, err := r.Discover(paths)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("discovered files", slog.Int("count", len(files)), slog.Int("jobs", r.jobs))

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.checkFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{Files: results}, nil
}

func (r *Runner) checkFile(ctx context.Context, path string) FileResult {
	src, err := util.ReadFile(r.fs, path)
	if err != nil {
		r.logger.Warn("failed to read file", slog.String("file", path), slog.Any("error", err))
		return FileResult{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	diags, err := r.checker.CheckSource(ctx, path, src)
	if err != nil {
		r.logger.Warn("failed to check file", slog.String("file", path), slog.Any("error", err))
		return FileResult{Path: path, Src: src, Err: err}
	}

	r.logger.Debug("checked file", slog.String("file", path), slog.Int("diagnostics", len(diags)))
	return FileResult{Path: path, Src: src, Diagnostics: diags}
}
