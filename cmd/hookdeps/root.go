package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mpyw/hookdeps"
	"github.com/mpyw/hookdeps/internal/config"
	"github.com/mpyw/hookdeps/internal/funcspec"
	"github.com/mpyw/hookdeps/internal/render"
)

// Exit codes.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitError       = 2
)

var errInvalidColor = errors.New("invalid --color value")

type flags struct {
	config        string
	hooks         []string
	format        string
	color         string
	jobs          int
	noUnnecessary bool
	verbose       bool
}

func execute(args []string, stdout, stderr io.Writer) int {
	code := exitOK
	cmd := newRootCommand(stdout, stderr, &code)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "hookdeps: %v\n", err)
		return exitError
	}
	return code
}

func newRootCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "hookdeps [flags] [path...]",
		Short: "Check that hook dependency arrays match what their closures capture",
		Long: `hookdeps reports closure captures missing from the dependency array of
hook calls such as useEffect, useCallback and useMemo, and array entries the
closure never uses.

Directories are walked recursively, skipping node_modules and dot-directories.
A .hookdeps.yaml, .hookdeps.yml, .hookdeps.toml or .hookdeps.json file in the
working directory is loaded unless --config is given.`,
		Example: `  hookdeps ./src
  hookdeps --hook useCustomEffect=0:1 --hook useStore=::1 .
  hookdeps --format json --no-unnecessary app/`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			c, err := run(cmd, f, args, stdout, stderr)
			*code = c
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "configuration file (default: discovered in the working directory)")
	fl.StringArrayVar(&f.hooks, "hook", nil, "extra hook as name=closure[:deps[:stable]] (repeatable)")
	fl.StringVar(&f.format, "format", string(render.Text), "output format: text or json")
	fl.StringVar(&f.color, "color", "auto", "colorize text output: auto, always or never")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "files analyzed at once (default: GOMAXPROCS)")
	fl.BoolVar(&f.noUnnecessary, "no-unnecessary", false, "do not report unnecessary dependencies")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log debug output to stderr")

	return cmd
}

func run(cmd *cobra.Command, f *flags, paths []string, stdout, stderr io.Writer) (int, error) {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	format, err := render.ParseFormat(f.format)
	if err != nil {
		return exitError, err
	}
	useColor, err := colorEnabled(f.color, stdout)
	if err != nil {
		return exitError, err
	}

	cfg, err := loadConfig(f.config, logger)
	if err != nil {
		return exitError, err
	}
	hooks, err := funcspec.ParseAll(f.hooks)
	if err != nil {
		return exitError, err
	}

	opts := []hookdeps.Option{
		hookdeps.WithHooks(hooks...),
		hookdeps.WithJobs(f.jobs),
		hookdeps.WithLogger(logger),
	}
	if f.noUnnecessary {
		opts = append(opts, hookdeps.WithReportUnnecessary(false))
	}

	analyzer, err := hookdeps.New(cfg, opts...)
	if err != nil {
		return exitError, err
	}

	result, err := analyzer.AnalyzeFiles(cmd.Context(), paths...)
	if err != nil {
		return exitError, err
	}

	if err := render.Write(stdout, result, render.Options{Format: format, Color: useColor}); err != nil {
		return exitError, fmt.Errorf("write output: %w", err)
	}

	switch {
	case len(result.Errors()) > 0:
		return exitError, nil
	case result.DiagnosticCount() > 0:
		return exitDiagnostics, nil
	}
	return exitOK, nil
}

func loadConfig(path string, logger *slog.Logger) (*hookdeps.Config, error) {
	fs := osfs.Default

	if path == "" {
		found, err := config.Discover(fs, ".")
		if errors.Is(err, config.ErrNotFound) {
			logger.Debug("no configuration file found")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}

	logger.Debug("loading configuration", slog.String("file", path))
	return config.Load(fs, path)
}

func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		file, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()), nil
	}
	return false, fmt.Errorf("%w: %q", errInvalidColor, mode)
}
