// Package funcspec parses hook specifications given on the command line.
package funcspec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mpyw/hookdeps/internal/config"
)

// ErrInvalidSpec is returned for malformed specifications.
var ErrInvalidSpec = errors.New("invalid hook specification")

// Parse parses a single hook specification string into a hook option.
// Format: "name=closure[:deps[:stable]]". Empty closure or deps fields mean
// the hook has no such argument; stable is "true" or a comma-separated
// list of result slots.
func Parse(s string) (config.HookOption, error) {
	name, rest, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return config.HookOption{}, fmt.Errorf("%w %q: want name=closure[:deps[:stable]]", ErrInvalidSpec, s)
	}

	fields := strings.Split(rest, ":")
	if len(fields) > 3 {
		return config.HookOption{}, fmt.Errorf("%w %q: too many fields", ErrInvalidSpec, s)
	}

	opt := config.HookOption{Name: name}

	var err error
	if opt.ClosureIndex, err = parseIndex(fields[0]); err != nil {
		return config.HookOption{}, fmt.Errorf("%w %q: closure: %w", ErrInvalidSpec, s, err)
	}
	if len(fields) > 1 {
		if opt.DependenciesIndex, err = parseIndex(fields[1]); err != nil {
			return config.HookOption{}, fmt.Errorf("%w %q: deps: %w", ErrInvalidSpec, s, err)
		}
	}
	if len(fields) > 2 {
		if opt.StableResult, err = parseStable(fields[2]); err != nil {
			return config.HookOption{}, fmt.Errorf("%w %q: stable: %w", ErrInvalidSpec, s, err)
		}
	}

	return opt, nil
}

// ParseAll parses every specification in order.
func ParseAll(specs []string) ([]config.HookOption, error) {
	opts := make([]config.HookOption, 0, len(specs))
	for _, s := range specs {
		opt, err := Parse(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func parseIndex(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseStable(s string) (*config.StableResult, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return nil, nil
	case "true":
		return &config.StableResult{Whole: true}, nil
	}

	parts := strings.Split(s, ",")
	slots := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		slots = append(slots, n)
	}
	return &config.StableResult{Slots: slots}, nil
}
